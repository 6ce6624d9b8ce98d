package storage

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/footagents/pkg/legend"
	"github.com/jwebster45206/footagents/pkg/state"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu            sync.RWMutex
	conversations map[uuid.UUID]*state.Conversation
	legends       map[string]*legend.Legend
	pingError     error
	saveError     error
	resetError    error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		conversations: make(map[uuid.UUID]*state.Conversation),
		legends:       make(map[string]*legend.Legend),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) SetResetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetError = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveConversation(ctx context.Context, c *state.Conversation) error {
	if c == nil {
		return errors.New("conversation cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.conversations[c.ID] = c
	return nil
}

func (m *MockStorage) LoadConversation(ctx context.Context, id uuid.UUID) (*state.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, exists := m.conversations[id]
	if !exists {
		return nil, nil
	}
	return c, nil
}

func (m *MockStorage) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conversations, id)
	return nil
}

func (m *MockStorage) ResetConversations(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resetError != nil {
		return 0, m.resetError
	}
	n := len(m.conversations)
	clear(m.conversations)
	return n, nil
}

// ConversationCount reports how many conversations are stored (for testing)
func (m *MockStorage) ConversationCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conversations)
}

// GetLegend returns an added legend, falling back to the built-in roster
func (m *MockStorage) GetLegend(ctx context.Context, id string) (*legend.Legend, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.legends[legend.Canonical(id)]; ok {
		return l, nil
	}
	return legend.Get(id)
}

func (m *MockStorage) ListLegends(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := legend.IDs()
	for id := range m.legends {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// AddLegend adds a legend to the mock storage (for testing)
func (m *MockStorage) AddLegend(l *legend.Legend) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.legends[legend.Canonical(l.ID)] = l
}
