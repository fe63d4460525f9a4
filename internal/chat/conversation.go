package chat

import "github.com/diogo/bharatgpt/internal/models"

// Conversation is an append-only, ordered message log. It is not safe for
// concurrent use; the Controller that owns it serializes access.
type Conversation struct {
	messages []models.Message
}

// NewConversation returns a log seeded with the given messages
func NewConversation(seed ...models.Message) *Conversation {
	c := &Conversation{}
	c.messages = append(c.messages, seed...)
	return c
}

// Append adds msg at the end of the log
func (c *Conversation) Append(msg models.Message) {
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the log
func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	return len(c.messages)
}

// LastAssistant returns the newest assistant message
func (c *Conversation) LastAssistant() (models.Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == models.RoleAssistant {
			return c.messages[i], true
		}
	}
	return models.Message{}, false
}
