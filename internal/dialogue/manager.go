// Package dialogue implements the conversation box: paged, typewriter
// style text with replies fetched from the chat backend in the background.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/footagents/pkg/character"
	"github.com/jwebster45206/footagents/pkg/chat"
	"github.com/jwebster45206/footagents/pkg/chatbridge"
)

const (
	DefaultWidth          = 68
	DefaultPageLines      = 5
	DefaultCharsPerSecond = 60.0
	replyTimeout          = 45 * time.Second
)

var ErrNotAwaitingInput = errors.New("dialogue is not waiting for player input")

// Bridge sends a player message to a character and returns the reply.
type Bridge interface {
	SendMessage(ctx context.Context, speaker chatbridge.Speaker, message string) string
}

type reply struct {
	session uint64
	text    string
}

// Options tune layout and reveal speed.
type Options struct {
	Width          int
	PageLines      int
	CharsPerSecond float64
}

// Manager holds the state of the single dialogue box. All methods except
// the background reply fetch run on the tick goroutine.
type Manager struct {
	bridge Bridge
	logger *slog.Logger
	opts   Options

	visible  bool
	speaker  *character.Character
	pages    []string
	page     int
	revealed float64
	awaiting bool
	pending  bool

	session    uint64
	cancel     context.CancelFunc
	replies    chan reply
	transcript []chat.ChatMessage
}

func NewManager(bridge Bridge, opts Options, logger *slog.Logger) *Manager {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.PageLines <= 0 {
		opts.PageLines = DefaultPageLines
	}
	if opts.CharsPerSecond <= 0 {
		opts.CharsPerSecond = DefaultCharsPerSecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		bridge:  bridge,
		logger:  logger,
		opts:    opts,
		replies: make(chan reply, 1),
	}
}

func (m *Manager) IsVisible() bool                { return m.visible }
func (m *Manager) Speaker() *character.Character { return m.speaker }

// AwaitingInput reports whether the last page has been read and the box
// is waiting for the player to type.
func (m *Manager) AwaitingInput() bool { return m.visible && m.awaiting }

// Pending reports whether a reply is being fetched.
func (m *Manager) Pending() bool { return m.pending }

// IsTyping is true while text is still being revealed or a reply is on
// its way.
func (m *Manager) IsTyping() bool {
	if !m.visible {
		return false
	}
	return m.pending || int(m.revealed) < m.pageLen()
}

// Start opens the box with speaker's opening line.
func (m *Manager) Start(speaker *character.Character) {
	m.reset()
	m.visible = true
	m.speaker = speaker
	m.session++

	opening := speaker.DefaultMessage()
	if opening == "" {
		opening = fmt.Sprintf("Hi, I'm %s. What would you like to talk about?", speaker.Name())
	}
	m.transcript = append(m.transcript, chat.ChatMessage{Role: chat.ChatRoleAgent, Content: opening})
	m.show(opening)

	m.logger.Debug("Dialogue opened", "character_id", speaker.ID(), "session", m.session)
}

// Continue turns to the next page, or waits for player input after the last.
func (m *Manager) Continue() {
	if !m.visible || m.pending {
		return
	}
	if m.page < len(m.pages)-1 {
		m.page++
		m.revealed = 0
		return
	}
	m.awaiting = true
}

// Close hides the box and abandons any reply in flight.
func (m *Manager) Close() {
	if !m.visible {
		return
	}
	m.logger.Debug("Dialogue closed", "session", m.session)
	m.reset()
}

// Submit sends the player's message to the current speaker. The reply is
// shown by a later Tick.
func (m *Manager) Submit(message string) error {
	message = strings.TrimSpace(message)
	if !m.AwaitingInput() || m.pending {
		return ErrNotAwaitingInput
	}
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}

	m.transcript = append(m.transcript, chat.ChatMessage{Role: chat.ChatRoleUser, Content: message})
	m.pending = true
	m.awaiting = false

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	m.cancel = cancel
	session := m.session
	speaker := m.speaker

	go func() {
		defer cancel()
		text := m.bridge.SendMessage(ctx, speaker, message)
		select {
		case m.replies <- reply{session: session, text: text}:
		case <-ctx.Done():
		}
	}()
	return nil
}

// Tick delivers a finished reply and advances the typewriter reveal.
func (m *Manager) Tick(dt time.Duration) {
	select {
	case r := <-m.replies:
		if m.visible && r.session == m.session && m.pending {
			m.pending = false
			m.cancel = nil
			m.transcript = append(m.transcript, chat.ChatMessage{Role: chat.ChatRoleAgent, Content: r.text})
			m.show(r.text)
		}
	default:
	}

	if !m.visible {
		return
	}
	m.revealed += dt.Seconds() * m.opts.CharsPerSecond
	if n := float64(m.pageLen()); m.revealed > n {
		m.revealed = n
	}
}

// Text is the revealed part of the current page.
func (m *Manager) Text() string {
	if !m.visible || len(m.pages) == 0 {
		return ""
	}
	runes := []rune(m.pages[m.page])
	return string(runes[:int(m.revealed)])
}

// Page returns the current page index and the page count.
func (m *Manager) Page() (int, int) {
	return m.page, len(m.pages)
}

// Transcript returns the turns of the current conversation.
func (m *Manager) Transcript() []chat.ChatMessage {
	return append([]chat.ChatMessage(nil), m.transcript...)
}

func (m *Manager) show(text string) {
	m.pages = paginate(wordwrap.String(text, m.opts.Width), m.opts.PageLines)
	m.page = 0
	m.revealed = 0
	m.awaiting = false
}

func (m *Manager) pageLen() int {
	if len(m.pages) == 0 {
		return 0
	}
	return len([]rune(m.pages[m.page]))
}

func (m *Manager) reset() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.visible = false
	m.speaker = nil
	m.pages = nil
	m.page = 0
	m.revealed = 0
	m.awaiting = false
	m.pending = false
	m.transcript = nil
}

func paginate(wrapped string, lines int) []string {
	all := strings.Split(strings.TrimRight(wrapped, "\n"), "\n")
	var pages []string
	for len(all) > 0 {
		n := min(lines, len(all))
		pages = append(pages, strings.Join(all[:n], "\n"))
		all = all[n:]
	}
	return pages
}
