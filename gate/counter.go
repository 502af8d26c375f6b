package gate

import (
	"strconv"
	"strings"
)

// Label is a text element the gate writes status into.
type Label interface {
	SetText(text string)
}

const (
	DefaultRequired          = 4
	DefaultInProgressMessage = "Conversations: {current}/{total}"
	DefaultCompletedMessage  = "All conversations finished. You can enter the final room."
)

// ConversationCounter counts distinct conversations and latches once enough
// have happened. The count only grows.
type ConversationCounter struct {
	Label             Label
	InProgressMessage string
	CompletedMessage  string
	OnCompleted       func()

	required  int
	seen      map[string]struct{}
	count     int
	completed bool

	override    string
	hasOverride bool
}

func NewConversationCounter(required int) *ConversationCounter {
	if required <= 0 {
		required = DefaultRequired
	}
	return &ConversationCounter{
		InProgressMessage: DefaultInProgressMessage,
		CompletedMessage:  DefaultCompletedMessage,
		required:          required,
		seen:              make(map[string]struct{}),
	}
}

// RegisterConversation records a conversation. Repeated ids count once; a
// blank id always counts.
func (c *ConversationCounter) RegisterConversation(id string) {
	if c == nil || c.completed {
		return
	}
	if id = strings.TrimSpace(id); id != "" {
		if _, ok := c.seen[id]; ok {
			return
		}
		if c.seen == nil {
			c.seen = make(map[string]struct{})
		}
		c.seen[id] = struct{}{}
	}
	c.count++

	if c.count >= c.required {
		c.completed = true
		c.UpdateLabel()
		if c.OnCompleted != nil {
			c.OnCompleted()
		}
		return
	}
	c.UpdateLabel()
}

func (c *ConversationCounter) IsCompleted() bool {
	return c != nil && c.completed
}

func (c *ConversationCounter) Count() int {
	return c.count
}

func (c *ConversationCounter) Required() int {
	return c.required
}

// Status is the computed label text, ignoring any override.
func (c *ConversationCounter) Status() string {
	if c.completed {
		return c.CompletedMessage
	}
	msg := c.InProgressMessage
	if strings.TrimSpace(msg) == "" {
		msg = "{current}/{total}"
	}
	return strings.NewReplacer(
		"{current}", strconv.Itoa(c.count),
		"{total}", strconv.Itoa(c.required),
	).Replace(msg)
}

// SetOverride pins msg on the label until ClearOverride.
func (c *ConversationCounter) SetOverride(msg string) {
	c.override = msg
	c.hasOverride = true
	c.UpdateLabel()
}

// ClearOverride blanks the label. The computed status comes back on the next
// registration.
func (c *ConversationCounter) ClearOverride() {
	c.override = ""
	c.hasOverride = false
	if c.Label != nil {
		c.Label.SetText("")
	}
}

func (c *ConversationCounter) UpdateLabel() {
	if c.Label == nil {
		return
	}
	if c.hasOverride {
		c.Label.SetText(c.override)
		return
	}
	c.Label.SetText(c.Status())
}
