package prompts

import (
	"strings"
	"testing"

	"github.com/jwebster45206/footagents/pkg/legend"
)

func TestBuildSystemPrompt(t *testing.T) {
	l, err := legend.Get("jurgenklopp")
	if err != nil {
		t.Fatalf("Failed to get legend: %v", err)
	}

	got := BuildSystemPrompt(l)

	for _, want := range []string{
		"You are Jürgen Klopp",
		"- Position: Manager",
		"- Era: 2010s-2020s",
		"Heavy metal football",
		"Stay in character as Jürgen Klopp.",
		"### Career highlights",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected system prompt to contain %q", want)
		}
	}
}

func TestBuildSystemPrompt_SparseCard(t *testing.T) {
	got := BuildSystemPrompt(&legend.Legend{ID: "zidane", Name: "Zinedine Zidane"})

	if !strings.Contains(got, "- Position: unknown") {
		t.Error("Expected missing position to render as unknown")
	}
	if strings.Contains(got, "Career highlights") {
		t.Error("Expected no highlights section for a card without highlights")
	}
	if strings.Contains(got, "%!") {
		t.Errorf("Format verbs did not line up: %s", got)
	}
}
