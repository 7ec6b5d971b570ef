// Package console is the developer console sink. Recoverable content errors
// are reported here and execution continues with a fallback.
package console

import (
	"fmt"
	"image/color"
	"log"
)

// MessageType defines the severity of a console message
type MessageType int

const (
	// MessageTypeInfo is for progress messages (light gray)
	MessageTypeInfo MessageType = iota
	// MessageTypeWarning is for recoverable content problems (gold)
	MessageTypeWarning
	// MessageTypeError is for failed operations that fell back to a default (red)
	MessageTypeError
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeWarning:
		return "WARNING"
	case MessageTypeError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Message stores a console line with its severity
type Message struct {
	Text string
	Type MessageType
}

// GetColor returns the color for the message based on its type
func (m Message) GetColor() color.RGBA {
	switch m.Type {
	case MessageTypeWarning:
		return color.RGBA{218, 165, 32, 255} // Gold
	case MessageTypeError:
		return color.RGBA{255, 100, 100, 255} // Red
	default:
		return color.RGBA{200, 200, 200, 255} // Light Gray
	}
}

// Console stores the most recent messages
type Console struct {
	Messages    []Message
	MaxMessages int
	// Echo mirrors every message to the standard logger
	Echo bool
}

// New creates a console keeping the last 200 messages
func New() *Console {
	return &Console{
		MaxMessages: 200,
		Echo:        true,
	}
}

// Add adds a message to the console
func (c *Console) Add(messageType MessageType, text string) {
	c.Messages = append(c.Messages, Message{Text: text, Type: messageType})
	if len(c.Messages) > c.MaxMessages {
		c.Messages = c.Messages[len(c.Messages)-c.MaxMessages:]
	}
	if c.Echo {
		log.Printf("%s: %s", messageType, text)
	}
}

// Infof adds a formatted info message
func (c *Console) Infof(format string, args ...any) {
	c.Add(MessageTypeInfo, fmt.Sprintf(format, args...))
}

// Warnf adds a formatted warning
func (c *Console) Warnf(format string, args ...any) {
	c.Add(MessageTypeWarning, fmt.Sprintf(format, args...))
}

// Errorf adds a formatted recoverable error
func (c *Console) Errorf(format string, args ...any) {
	c.Add(MessageTypeError, fmt.Sprintf(format, args...))
}

// RecentMessages gets the n most recent messages, newest first
func (c *Console) RecentMessages(n int) []Message {
	if n > len(c.Messages) {
		n = len(c.Messages)
	}

	result := make([]Message, n)
	for i := 0; i < n; i++ {
		result[i] = c.Messages[len(c.Messages)-1-i]
	}
	return result
}

// Count returns how many stored messages have the given type
func (c *Console) Count(messageType MessageType) int {
	count := 0
	for _, m := range c.Messages {
		if m.Type == messageType {
			count++
		}
	}
	return count
}

// Clear clears all messages
func (c *Console) Clear() {
	c.Messages = nil
}
