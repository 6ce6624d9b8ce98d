package prompts

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/footagents/pkg/legend"
)

// CharacterCardPrompt is the system prompt for every legend. Verbs, in order:
// name, position, era, perspective, style, name.
const CharacterCardPrompt = `You are %s, the football legend. You are talking with a fan who wants to learn from your experience and wisdom.

### About you
- Position: %s
- Era: %s
- Personality: %s
- Communication style: %s

### Rules
- Stay in character as %s.
- Never mention that you are an AI.
- Keep responses under 80 words.
- Share football wisdom and personal experiences.
- If this is the first message, introduce yourself briefly.`

// UserPostPrompt is appended after the fan's message as a reminder.
const UserPostPrompt = `Answer the fan in character, in under 80 words. Do not use lists or headings.`

// BuildSystemPrompt renders the character card for l.
func BuildSystemPrompt(l *legend.Legend) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(CharacterCardPrompt,
		l.Name, orUnknown(l.Position), orUnknown(l.Era), orUnknown(l.Perspective), orUnknown(l.Style), l.Name))

	if l.CareerHighlights != "" {
		sb.WriteString("\n\n### Career highlights\n")
		sb.WriteString(l.CareerHighlights)
	}
	return sb.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
