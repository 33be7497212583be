package a2a

import "strings"

// Role identifies the sender of a message.
type Role string

const (
	// RoleUser marks messages originating from the calling side.
	RoleUser Role = "user"
	// RoleAgent marks messages produced by an agent.
	RoleAgent Role = "agent"
)

// Part is a single content segment of a message. Text parts carry Text;
// structured parts carry Data. A part may also attach its own metadata.
type Part struct {
	Text     string         `json:"text,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TextPart builds a plain text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// Message is a unit of communication between agents. ContextID groups
// related messages into a conversation; TaskID links the message to a task
// once one exists.
type Message struct {
	MessageID string         `json:"messageId,omitempty"`
	ContextID string         `json:"contextId,omitempty"`
	TaskID    string         `json:"taskId,omitempty"`
	Role      Role           `json:"role"`
	Parts     []Part         `json:"parts"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Text joins the text of all text parts with newlines, skipping non-text
// parts.
func (m Message) Text() string {
	texts := make([]string, 0, len(m.Parts))
	for _, p := range m.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
