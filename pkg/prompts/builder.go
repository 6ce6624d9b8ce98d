package prompts

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/footagents/pkg/chat"
	"github.com/jwebster45206/footagents/pkg/legend"
)

const DefaultHistoryLimit = 20

// Builder constructs chat messages for LLM interaction using a fluent interface.
type Builder struct {
	legend       *legend.Legend
	history      []chat.ChatMessage
	summary      string
	userMessage  string
	historyLimit int
	messages     []chat.ChatMessage
}

// New creates a new prompt builder with default settings.
func New() *Builder {
	return &Builder{
		historyLimit: DefaultHistoryLimit,
		messages:     make([]chat.ChatMessage, 0),
	}
}

// WithLegend sets the character the model plays.
func (b *Builder) WithLegend(l *legend.Legend) *Builder {
	b.legend = l
	return b
}

// WithHistory sets the earlier turns of the conversation, oldest first.
func (b *Builder) WithHistory(history []chat.ChatMessage) *Builder {
	b.history = history
	return b
}

// WithSummary sets a summary of turns that fell out of the history window.
func (b *Builder) WithSummary(summary string) *Builder {
	b.summary = summary
	return b
}

func (b *Builder) WithUserMessage(message string) *Builder {
	b.userMessage = message
	return b
}

// WithHistoryLimit sets the chat history window size.
func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// Build constructs and returns the final message array for LLM consumption.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.legend == nil {
		return nil, fmt.Errorf("legend is required")
	}
	if strings.TrimSpace(b.userMessage) == "" {
		return nil, fmt.Errorf("user message is required")
	}

	b.messages = make([]chat.ChatMessage, 0, len(b.history)+3)

	b.addSystemPrompt()
	b.addHistory()
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleUser,
		Content: b.userMessage,
	})
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: UserPostPrompt,
	})

	return b.messages, nil
}

func (b *Builder) addSystemPrompt() {
	content := BuildSystemPrompt(b.legend)
	if b.summary != "" {
		content += "\n\n### Earlier in this conversation\n" + b.summary
	}
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: content,
	})
}

// addHistory adds the last historyLimit turns. A limit of zero or less
// drops history entirely.
func (b *Builder) addHistory() {
	if len(b.history) == 0 || b.historyLimit <= 0 {
		return
	}
	if len(b.history) <= b.historyLimit {
		b.messages = append(b.messages, b.history...)
		return
	}
	b.messages = append(b.messages, b.history[len(b.history)-b.historyLimit:]...)
}

// BuildMessages is a convenience function for the common case.
func BuildMessages(l *legend.Legend, history []chat.ChatMessage, message string, historyLimit int) ([]chat.ChatMessage, error) {
	return New().
		WithLegend(l).
		WithHistory(history).
		WithUserMessage(message).
		WithHistoryLimit(historyLimit).
		Build()
}
