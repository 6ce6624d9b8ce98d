package services

import (
	"context"

	"github.com/jwebster45206/footagents/pkg/chat"
)

// LLMService defines the interface for interacting with the LLM API
type LLMService interface {
	// InitModel prepares the model on startup
	InitModel(ctx context.Context, modelName string) error

	// Chat returns the model's reply to messages
	Chat(ctx context.Context, messages []chat.ChatMessage) (string, error)
}
