// Package state holds the conversation state the chat backend persists
// between requests.
package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/footagents/pkg/chat"
	"github.com/jwebster45206/footagents/pkg/legend"
)

// MaxStoredHistory caps how many messages a conversation keeps.
const MaxStoredHistory = 100

// conversationNamespace seeds the default conversation id of each character.
var conversationNamespace = uuid.MustParse("5b0f3a8e-6c2d-4f7a-9e41-2d6c8a1b7f03")

// Conversation is one fan's running chat with one character.
type Conversation struct {
	ID            uuid.UUID          `json:"id"`
	CharacterID   string             `json:"character_id"`
	CharacterName string             `json:"character_name"`
	ChatHistory   []chat.ChatMessage `json:"chat_history"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func NewConversation(id uuid.UUID, characterID, characterName string) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:            id,
		CharacterID:   legend.Canonical(characterID),
		CharacterName: characterName,
		ChatHistory:   make([]chat.ChatMessage, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// DefaultConversationID is the stable id used when a request names a
// character but no conversation. Aliased sprite ids share one conversation.
func DefaultConversationID(characterID string) uuid.UUID {
	return uuid.NewSHA1(conversationNamespace, []byte(legend.Canonical(characterID)))
}

// AddTurn records a user message and the character's reply, dropping the
// oldest messages past MaxStoredHistory.
func (c *Conversation) AddTurn(message, reply string) {
	c.ChatHistory = append(c.ChatHistory,
		chat.ChatMessage{Role: chat.ChatRoleUser, Content: message},
		chat.ChatMessage{Role: chat.ChatRoleAgent, Content: reply},
	)
	if over := len(c.ChatHistory) - MaxStoredHistory; over > 0 {
		c.ChatHistory = append([]chat.ChatMessage(nil), c.ChatHistory[over:]...)
	}
	c.UpdatedAt = time.Now()
}
