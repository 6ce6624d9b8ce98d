package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jwebster45206/footagents/internal/config"
	"github.com/jwebster45206/footagents/internal/dialogue"
	"github.com/jwebster45206/footagents/internal/logger"
	"github.com/jwebster45206/footagents/pkg/character"
	"github.com/jwebster45206/footagents/pkg/chatbridge"
	"github.com/jwebster45206/footagents/pkg/scene"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.ConsoleLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()
	log := logger.SetupTo(cfg, logFile).With("session_id", uuid.New())

	var roster []character.Config
	if cfg.RosterFile != "" {
		roster, err = scene.LoadRoster(cfg.RosterFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load roster: %v\n", err)
			os.Exit(1)
		}
	}

	client := &http.Client{Timeout: chatbridge.DefaultTimeout}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if testConnection(ctx, client, cfg.APIBaseURL) {
		checkRoster(ctx, client, cfg.APIBaseURL, roster)
	} else {
		fmt.Fprintf(os.Stderr, "Could not reach the chat API at %s. Legends will answer with a fallback message.\n", cfg.APIBaseURL)
		log.Warn("Chat API unreachable", "url", cfg.APIBaseURL)
	}
	cancel()

	bridge := chatbridge.NewClient(cfg.APIBaseURL, client, log)
	manager := dialogue.NewManager(bridge, dialogue.Options{}, log)

	sc, err := scene.New(scene.Config{Roster: roster}, manager, scene.Deps{Logger: log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer sc.Close()

	log.Info("Starting console", "api", cfg.APIBaseURL, "tick", cfg.TickInterval())

	p := tea.NewProgram(NewGameUI(sc, manager, bridge, cfg.TickInterval(), log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// checkRoster warns about roster characters the backend cannot voice.
func checkRoster(ctx context.Context, client *http.Client, baseURL string, roster []character.Config) {
	if roster == nil {
		roster = scene.DefaultRoster()
	}
	known, err := listCharacters(ctx, client, baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not list characters: %v\n", err)
		return
	}
	for _, id := range unknownCharacters(roster, known) {
		fmt.Fprintf(os.Stderr, "Warning: the chat API has no card for %q\n", id)
	}
}
