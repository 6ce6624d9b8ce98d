package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/footagents/internal/dialogue"
	"github.com/jwebster45206/footagents/pkg/character"
	"github.com/jwebster45206/footagents/pkg/chat"
	"github.com/jwebster45206/footagents/pkg/scene"
	"github.com/jwebster45206/footagents/pkg/sim"
)

const (
	playerMark = "@"
	grassMark  = "·"
)

// cell maps a world position onto a cols x rows grid.
func cell(p sim.Vec, b sim.Bounds, cols, rows int) (int, int) {
	w := b.Max.X - b.Min.X
	h := b.Max.Y - b.Min.Y
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	x := int((p.X - b.Min.X) / w * float64(cols))
	y := int((p.Y - b.Min.Y) / h * float64(rows))
	return min(max(x, 0), cols-1), min(max(y, 0), rows-1)
}

// markFor is the one-letter map glyph for a character.
func markFor(c *character.Character) string {
	name := c.Name()
	if name == "" {
		name = c.ID()
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

// renderField draws the pitch: grass, every character, labels and the
// player. The current interaction candidate is highlighted.
func renderField(sc *scene.Scene, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, cols)
		for x := range grid[y] {
			grid[y][x] = grassStyle.Render(grassMark)
		}
	}
	taken := make(map[[2]int]bool)
	b := sc.Bounds()

	candidate := sc.Candidate()
	for _, c := range sc.Characters() {
		if c.Destroyed() {
			continue
		}
		x, y := cell(c.Position(), b, cols, rows)
		style := npcStyle
		if c == candidate {
			style = candidateStyle
		}
		grid[y][x] = style.Render(markFor(c))
		taken[[2]int{x, y}] = true
	}

	px, py := cell(sc.Player().Position(), b, cols, rows)
	grid[py][px] = playerStyle.Render(playerMark)
	taken[[2]int{px, py}] = true

	for _, c := range sc.Characters() {
		label := c.Label()
		if c.Destroyed() || !label.Visible || label.Text == "" {
			continue
		}
		x, y := cell(label.Pos, b, cols, rows)
		if y > 0 {
			y--
		}
		runes := []rune(label.Text)
		start := max(x-len(runes)/2, 0)
		for i, r := range runes {
			cx := start + i
			if cx >= cols {
				break
			}
			if taken[[2]int{cx, y}] {
				continue
			}
			grid[y][cx] = labelStyle.Render(string(r))
		}
	}

	lines := make([]string, rows)
	for y := range grid {
		lines[y] = strings.Join(grid[y], "")
	}
	return strings.Join(lines, "\n")
}

// renderDialogue draws the conversation box for the current page.
func renderDialogue(d *dialogue.Manager, width int) string {
	if !d.IsVisible() {
		return promptStyle.Render("Walk up to a legend and press space to talk.")
	}
	var sb strings.Builder
	if s := d.Speaker(); s != nil {
		sb.WriteString(speakerStyle.Render(s.Name()))
		sb.WriteString("\n")
	}
	if d.Pending() {
		sb.WriteString(loadingStyle.Render("..."))
		return sb.String()
	}
	sb.WriteString(wordwrap.String(d.Text(), width))

	page, pages := d.Page()
	var hint string
	switch {
	case d.IsTyping():
		hint = ""
	case d.AwaitingInput():
		hint = "type a reply, enter to send, esc to leave"
	case page < pages-1:
		hint = fmt.Sprintf("space: next (%d/%d)", page+1, pages)
	default:
		hint = "space: reply"
	}
	if hint != "" {
		sb.WriteString("\n")
		sb.WriteString(promptStyle.Render(hint))
	}
	return sb.String()
}

// formatTranscript renders the current conversation for the side panel,
// or as plain text when styled is false.
func formatTranscript(turns []chat.ChatMessage, speaker string, width int, styled bool) string {
	if width <= 0 {
		width = dialogue.DefaultWidth
	}
	var sb strings.Builder
	for i, t := range turns {
		who := "You"
		style := userStyle
		if t.Role == chat.ChatRoleAgent {
			who = speaker
			style = speakerStyle
		}
		prefix := who + ": "
		if styled {
			prefix = style.Render(who) + ": "
		}
		sb.WriteString(prefix)
		sb.WriteString(wordwrap.String(t.Content, width))
		if i < len(turns)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

var (
	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("28"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1).
			PaddingRight(1)

	grassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("22")) // dark green

	npcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	candidateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Bold(true)

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)
