package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/footagents/pkg/state"
)

const (
	conversationPrefix = "conversation:"
	scanBatch          = 100
)

func conversationKey(id uuid.UUID) string {
	return conversationPrefix + id.String()
}

// Conversation operations (Redis-backed)

func (r *RedisStorage) SaveConversation(ctx context.Context, c *state.Conversation) error {
	if c == nil {
		return errors.New("conversation cannot be nil")
	}
	c.UpdatedAt = time.Now()

	data, err := json.Marshal(c)
	if err != nil {
		r.logger.Error("Failed to marshal conversation", "uuid", c.ID, "error", err)
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	if err := r.client.Set(ctx, conversationKey(c.ID), string(data), r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save conversation", "uuid", c.ID, "error", err)
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	r.logger.Debug("Conversation saved", "uuid", c.ID, "character_id", c.CharacterID, "messages", len(c.ChatHistory))
	return nil
}

func (r *RedisStorage) LoadConversation(ctx context.Context, id uuid.UUID) (*state.Conversation, error) {
	data, err := r.client.Get(ctx, conversationKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Conversation not found", "uuid", id)
			return nil, nil
		}
		r.logger.Error("Failed to load conversation", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	var c state.Conversation
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		r.logger.Error("Failed to unmarshal conversation", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}
	return &c, nil
}

func (r *RedisStorage) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, conversationKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete conversation", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// ResetConversations walks the keyspace with SCAN so a large memory does
// not block Redis.
func (r *RedisStorage) ResetConversations(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		cleared int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, conversationPrefix+"*", scanBatch).Result()
		if err != nil {
			r.logger.Error("Failed to scan conversations", "error", err)
			return cleared, fmt.Errorf("failed to scan conversations: %w", err)
		}
		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				r.logger.Error("Failed to delete conversations", "error", err)
				return cleared, fmt.Errorf("failed to delete conversations: %w", err)
			}
			cleared += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	r.logger.Info("Conversation memory reset", "cleared", cleared)
	return cleared, nil
}
