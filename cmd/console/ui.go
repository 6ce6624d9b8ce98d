package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwebster45206/footagents/internal/dialogue"
	"github.com/jwebster45206/footagents/pkg/chat"
	"github.com/jwebster45206/footagents/pkg/chatbridge"
	"github.com/jwebster45206/footagents/pkg/scene"
)

const (
	PlaceHolderText = "Ask the legend something..."
	dialogueHeight  = dialogue.DefaultPageLines + 4
	resetTimeout    = 10 * time.Second
)

// GameUI is the BubbleTea model that runs the pitch.
// https://github.com/charmbracelet/bubbletea
type GameUI struct {
	scene    *scene.Scene
	dialogue *dialogue.Manager
	bridge   *chatbridge.Client
	logger   *slog.Logger
	interval time.Duration

	keys       *keyState
	textarea   textarea.Model
	transcript viewport.Model
	turns      int

	ready  bool
	width  int
	height int
	labels bool

	status    string
	statusErr bool

	showQuitModal bool
}

type tickMsg time.Time

type resetMsg struct {
	response *chat.ResetResponse
	err      error
}

type copiedMsg struct {
	turns int
	err   error
}

func NewGameUI(sc *scene.Scene, d *dialogue.Manager, bridge *chatbridge.Client, interval time.Duration, logger *slog.Logger) GameUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.Blur()

	vp := viewport.New(30, 20)
	vp.MouseWheelEnabled = true

	return GameUI{
		scene:      sc,
		dialogue:   d,
		bridge:     bridge,
		logger:     logger,
		interval:   interval,
		keys:       newKeyState(),
		textarea:   ta,
		transcript: vp,
		labels:     true,
	}
}

func (m GameUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tick(m.interval))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fieldSize is the pitch grid size for the current window.
func (m GameUI) fieldSize() (int, int) {
	cols := int(float64(m.width)*0.68) - 2
	rows := m.height - dialogueHeight - 4
	return max(cols, 10), max(rows, 5)
}

func (m GameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		cols, rows := m.fieldSize()
		m.transcript.Width = max(m.width-cols-8, 10)
		m.transcript.Height = rows
		m.textarea.SetWidth(max(m.width-4, 10))
		m.ready = true
		m.refreshTranscript()
		return m, nil

	case tickMsg:
		m.scene.Tick(m.interval, m.keys.next(m.interval))
		focusCmd := m.syncFocus()
		if len(m.dialogue.Transcript()) != m.turns {
			m.refreshTranscript()
		}
		return m, tea.Batch(focusCmd, tick(m.interval))

	case resetMsg:
		if msg.err != nil {
			m.setStatus("Could not reset memory: "+msg.err.Error(), true)
		} else {
			m.logger.Info("Memory reset", "cleared", msg.response.Cleared)
			m.setStatus(fmt.Sprintf("Memory reset, %d conversations cleared.", msg.response.Cleared), false)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setStatus("Copy failed: "+msg.err.Error(), true)
		} else {
			m.setStatus(fmt.Sprintf("Copied %d messages to the clipboard.", msg.turns), false)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.showQuitModal = true
			return m, nil
		}
		if msg.Type == tea.KeyCtrlY {
			return m, m.copyTranscript()
		}
		if m.textarea.Focused() {
			return m.updateTyping(msg)
		}
		return m.updateWalking(msg)
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.transcript, vpCmd = m.transcript.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m GameUI) updateWalking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k, ok := keyFor(msg.String()); ok {
		m.keys.press(k)
		return m, nil
	}

	switch msg.String() {
	case " ", "e", "enter":
		m.keys.pressInteract()
	case "esc":
		if m.dialogue.IsVisible() {
			m.dialogue.Close()
			return m, nil
		}
		m.showQuitModal = true
	case "q":
		m.showQuitModal = true
	case "l":
		m.labels = !m.labels
		m.scene.SetLabelsVisible(m.labels)
	case "ctrl+r":
		m.setStatus("Resetting memory...", false)
		return m, m.resetMemory()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m GameUI) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.dialogue.Close()
		cmd := m.syncFocus()
		return m, cmd
	case tea.KeyEnter:
		input := strings.TrimSpace(m.textarea.Value())
		if input == "" {
			return m, nil
		}
		if err := m.dialogue.Submit(input); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.textarea.Reset()
		m.refreshTranscript()
		cmd := m.syncFocus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// syncFocus gives the text box focus exactly while the dialogue waits for
// the player to type.
func (m *GameUI) syncFocus() tea.Cmd {
	want := m.dialogue.AwaitingInput()
	switch {
	case want && !m.textarea.Focused():
		m.keys.release()
		m.textarea.Focus()
		return textarea.Blink
	case !want && m.textarea.Focused():
		m.textarea.Blur()
		if !m.dialogue.IsVisible() {
			m.textarea.Reset()
		}
	}
	return nil
}

func (m *GameUI) refreshTranscript() {
	turns := m.dialogue.Transcript()
	m.turns = len(turns)
	name := ""
	if s := m.dialogue.Speaker(); s != nil {
		name = s.Name()
	}
	m.transcript.SetContent(formatTranscript(turns, name, m.transcript.Width, true))
	m.transcript.GotoBottom()
}

func (m *GameUI) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m GameUI) resetMemory() tea.Cmd {
	bridge := m.bridge
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
		defer cancel()
		resp, err := bridge.ResetMemory(ctx)
		return resetMsg{response: resp, err: err}
	}
}

func (m GameUI) copyTranscript() tea.Cmd {
	turns := m.dialogue.Transcript()
	name := ""
	if s := m.dialogue.Speaker(); s != nil {
		name = s.Name()
	}
	text := formatTranscript(turns, name, dialogue.DefaultWidth, false)
	return func() tea.Msg {
		if text == "" {
			return copiedMsg{err: fmt.Errorf("nothing to copy")}
		}
		return copiedMsg{turns: len(turns), err: clipboard.WriteAll(text)}
	}
}

func (m GameUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		// paused, but the tick loop must stay alive
		return m, tick(m.interval)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyEsc:
			m.showQuitModal = false
			return m, nil
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				return m, nil
			}
		}
	}
	return m, nil
}

func (m GameUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the pitch?"))
	content.WriteString("\n\n")
	content.WriteString("The legends will remember you until their memory is reset.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to keep playing, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m GameUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	cols, rows := m.fieldSize()
	field := fieldStyle.Render(renderField(m.scene, cols, rows))
	side := panelStyle.Width(m.transcript.Width).Height(rows).Render(m.transcript.View())
	top := lipgloss.JoinHorizontal(lipgloss.Top, field, side)

	box := panelStyle.Width(max(m.width-4, 10)).Render(renderDialogue(m.dialogue, dialogue.DefaultWidth))

	parts := []string{top, box}
	if m.textarea.Focused() {
		parts = append(parts, m.textarea.View())
	}

	help := "arrows/wasd move · space talk · l labels · ctrl+r reset memory · ctrl+y copy · q quit"
	if m.status != "" {
		style := promptStyle
		if m.statusErr {
			style = errorStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, promptStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
