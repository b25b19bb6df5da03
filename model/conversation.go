package model

import (
	"time"
)

// Message is a single transcript entry. Messages are never mutated once appended.
type Message struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"` // user, assistant
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Message author constants
const (
	AuthorUser      = "user"
	AuthorAssistant = "assistant"
)

// Conversation is an append-only transcript owned by a tenant
type Conversation struct {
	ID             string    `json:"id"`
	Tenant         string    `json:"tenant"`
	Messages       []Message `json:"messages"`
	PendingReplies int       `json:"pending_replies"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *Conversation) GetID() string     { return c.ID }
func (c *Conversation) GetTenant() string { return c.Tenant }

func (c *Conversation) Clone() *Conversation {
	cp := *c
	cp.Messages = append([]Message(nil), c.Messages...)
	return &cp
}
