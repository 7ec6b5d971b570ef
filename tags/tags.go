// Package tags implements the case-insensitive label sets used as a trait
// system by tiles and generation conditions.
package tags

import "strings"

// Tags is an ordered set of case-insensitive labels. A label written as
// "!name" inverts the operation it is passed to.
type Tags struct {
	list []string
}

// New creates a tag set from a comma separated list
func New(csv string) *Tags {
	t := &Tags{}
	t.SetTags(csv)
	return t
}

// SetTags adds every label in csv. "!label" removes it instead.
func (t *Tags) SetTags(csv string) {
	t.SetTagList(split(csv))
}

// SetTagList is SetTags for an already split list
func (t *Tags) SetTagList(labels []string) {
	for _, label := range labels {
		if strings.HasPrefix(label, "!") {
			t.ClearTags(label[1:])
			continue
		}
		if t.indexOf(label) < 0 {
			t.list = append(t.list, label)
		}
	}
}

// ClearTags removes every label in csv. "!label" adds it instead.
func (t *Tags) ClearTags(csv string) {
	t.ClearTagList(split(csv))
}

// ClearTagList is ClearTags for an already split list
func (t *Tags) ClearTagList(labels []string) {
	for _, label := range labels {
		if strings.HasPrefix(label, "!") {
			t.SetTags(label[1:])
			continue
		}
		if i := t.indexOf(label); i >= 0 {
			t.list = append(t.list[:i], t.list[i+1:]...)
		}
	}
}

// HasTags reports whether every label in csv is satisfied. "!label" is
// satisfied when the label is absent.
func (t *Tags) HasTags(csv string) bool {
	for _, label := range split(csv) {
		if !t.satisfies(label) {
			return false
		}
	}
	return true
}

// HasAllTags is HasTags over another set's labels
func (t *Tags) HasAllTags(other *Tags) bool {
	if other == nil {
		return true
	}
	for _, label := range other.list {
		if !t.satisfies(label) {
			return false
		}
	}
	return true
}

// HasAtLeastOneTag reports whether any of other's labels is satisfied
func (t *Tags) HasAtLeastOneTag(other *Tags) bool {
	if other == nil {
		return false
	}
	for _, label := range other.list {
		if t.satisfies(label) {
			return true
		}
	}
	return false
}

// HasTag checks a single label, honoring the "!" prefix
func (t *Tags) HasTag(label string) bool {
	return t.satisfies(strings.TrimSpace(label))
}

// List returns a copy of the labels
func (t *Tags) List() []string {
	return append([]string(nil), t.list...)
}

// Len returns the number of labels
func (t *Tags) Len() int {
	return len(t.list)
}

// Clone returns an independent copy
func (t *Tags) Clone() *Tags {
	return &Tags{list: t.List()}
}

// String returns the labels as a comma separated list
func (t *Tags) String() string {
	return strings.Join(t.list, ",")
}

func (t *Tags) satisfies(label string) bool {
	if strings.HasPrefix(label, "!") {
		return t.indexOf(label[1:]) < 0
	}
	return t.indexOf(label) >= 0
}

func (t *Tags) indexOf(label string) int {
	for i, l := range t.list {
		if strings.EqualFold(l, label) {
			return i
		}
	}
	return -1
}

func split(csv string) []string {
	var labels []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part != "" && part != "!" {
			labels = append(labels, part)
		}
	}
	return labels
}
