// Package xmlutil holds the small XML document model the content loaders and
// map generation steps read their attributes from.
package xmlutil

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMissingAttribute is returned when a required attribute is absent
var ErrMissingAttribute = errors.New("missing required attribute")

// Attr is a single name/value pair, kept in document order
type Attr struct {
	Name  string
	Value string
}

// Element is one XML node with its attributes and child elements
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// NewElement creates an empty element with the given tag name
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attr returns the raw value of an attribute
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr replaces an attribute value or appends it
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// RequireAttr returns the attribute value or an ErrMissingAttribute error
func (e *Element) RequireAttr(name string) (string, error) {
	value, ok := e.Attr(name)
	if !ok || value == "" {
		return "", fmt.Errorf("<%s>: %w %q", e.Name, ErrMissingAttribute, name)
	}
	return value, nil
}

// AddChild appends a child element
func (e *Element) AddChild(child *Element) {
	e.Children = append(e.Children, child)
}

// Child returns the first child with the given tag name, or nil
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all children with the given tag name
func (e *Element) ChildrenNamed(name string) []*Element {
	var result []*Element
	for _, c := range e.Children {
		if c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

// Clone deep copies the element tree
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{
		Name:  e.Name,
		Attrs: append([]Attr(nil), e.Attrs...),
		Text:  e.Text,
	}
	for _, child := range e.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// Parse reads a document and returns its root element
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)
	var stack []*Element
	var root *Element

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			elem := &Element{Name: t.Name.Local}
			for _, a := range t.Attr {
				elem.Attrs = append(elem.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				stack[len(stack)-1].AddChild(elem)
			} else if root == nil {
				root = elem
			}
			stack = append(stack, elem)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				text := strings.TrimSpace(string(t))
				if text != "" {
					stack[len(stack)-1].Text += text
				}
			}
		}
	}

	if root == nil {
		return nil, errors.New("failed to parse XML: document has no root element")
	}
	return root, nil
}

// ParseDocument parses a document held in memory
func ParseDocument(doc string) (*Element, error) {
	return Parse(strings.NewReader(doc))
}

// ParseFile parses the document at path
func ParseFile(path string) (*Element, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	root, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Write serializes the element tree with two-space indentation
func Write(w io.Writer, e *Element) error {
	return write(w, e, 0)
}

func write(w io.Writer, e *Element, depth int) error {
	indent := strings.Repeat("  ", depth)
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString("=\"")
		if err := xml.EscapeText(&b, []byte(a.Value)); err != nil {
			return err
		}
		b.WriteString("\"")
	}

	if len(e.Children) == 0 && e.Text == "" {
		b.WriteString("/>\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(">")
	if e.Text != "" {
		if err := xml.EscapeText(&b, []byte(e.Text)); err != nil {
			return err
		}
	}
	if len(e.Children) > 0 {
		b.WriteString("\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	for _, child := range e.Children {
		if err := write(w, child, depth+1); err != nil {
			return err
		}
	}

	closing := "</" + e.Name + ">\n"
	if len(e.Children) > 0 {
		closing = indent + closing
	}
	_, err := io.WriteString(w, closing)
	return err
}

// String renders the element tree as XML text
func (e *Element) String() string {
	var b strings.Builder
	if err := Write(&b, e); err != nil {
		return ""
	}
	return b.String()
}
