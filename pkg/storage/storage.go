package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/footagents/pkg/legend"
	"github.com/jwebster45206/footagents/pkg/state"
)

// Storage defines a unified interface for all storage operations.
// Conversations live in Redis; legend cards come from the filesystem with
// the built-in roster as fallback.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Conversation operations (Redis-backed)
	SaveConversation(ctx context.Context, c *state.Conversation) error
	// LoadConversation returns nil, nil when the conversation does not exist
	LoadConversation(ctx context.Context, id uuid.UUID) (*state.Conversation, error)
	DeleteConversation(ctx context.Context, id uuid.UUID) error
	// ResetConversations deletes every stored conversation and returns how many were removed
	ResetConversations(ctx context.Context) (int, error)

	// Legend operations (filesystem-backed)
	GetLegend(ctx context.Context, id string) (*legend.Legend, error)
	ListLegends(ctx context.Context) ([]string, error)
}
