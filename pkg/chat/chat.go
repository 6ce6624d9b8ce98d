package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChatRequest is a message from the player to one character.
type ChatRequest struct {
	Message        string    `json:"message"`
	CharacterID    string    `json:"character_id"`
	ConversationID uuid.UUID `json:"conversation_id,omitempty"` // zero starts or continues the character's default conversation
}

// ChatResponse is the character's reply.
type ChatResponse struct {
	Response       string    `json:"response,omitempty"`
	CharacterID    string    `json:"character_id,omitempty"`
	ConversationID uuid.UUID `json:"conversation_id,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// ResetResponse acknowledges a memory reset.
type ResetResponse struct {
	Status  string `json:"status"`
	Cleared int    `json:"cleared"`
}

const (
	ChatRoleUser   = "user"      // Player
	ChatRoleAgent  = "assistant" // NPC
	ChatRoleSystem = "system"    // Character card
)

// ChatMessage is a single turn in a conversation, in the shape LLM chat
// completion APIs expect.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

func (cr *ChatRequest) Validate() error {
	if strings.TrimSpace(cr.Message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if strings.TrimSpace(cr.CharacterID) == "" {
		return fmt.Errorf("character_id cannot be empty")
	}
	return nil
}
