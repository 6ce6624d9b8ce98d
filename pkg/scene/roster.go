package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jwebster45206/footagents/pkg/character"
	"github.com/jwebster45206/footagents/pkg/direction"
	"github.com/jwebster45206/footagents/pkg/sim"
)

// DefaultMoveSpeed is the roam speed the shipped roster uses.
const DefaultMoveSpeed = 40.0

// DefaultRoster is the football pitch line-up, in interaction priority order.
func DefaultRoster() []character.Config {
	roster := []character.Config{
		{ID: "leomessi", Name: "Leo Messi", DefaultDirection: direction.FacingRight, RoamRadius: 200, SpawnPoint: sim.Vec{X: 200, Y: 150}},
		{ID: "ronaldonazario", Name: "Ronaldo Nazario", DefaultDirection: direction.FacingRight, RoamRadius: 180, SpawnPoint: sim.Vec{X: 400, Y: 200}},
		{ID: "kaka", Name: "KAKA", RoamRadius: 150, SpawnPoint: sim.Vec{X: 600, Y: 150}},
		{ID: "maradona", Name: "Maradona", RoamRadius: 160, SpawnPoint: sim.Vec{X: 800, Y: 300}},
		{ID: "cristianoronaldo", Name: "Cristiano Ronaldo", RoamRadius: 170, SpawnPoint: sim.Vec{X: 300, Y: 400}},
		{ID: "sergioramos", Name: "Sergio Ramos", RoamRadius: 180, SpawnPoint: sim.Vec{X: 150, Y: 350}},
		{ID: "pepguardiola", Name: "Pep Guardiola", RoamRadius: 150, SpawnPoint: sim.Vec{X: 550, Y: 300}},
		{ID: "alexferguson", Name: "Alex Ferguson", RoamRadius: 160, SpawnPoint: sim.Vec{X: 350, Y: 250}},
		{ID: "ancelotti", Name: "Ancelotti", RoamRadius: 170, SpawnPoint: sim.Vec{X: 750, Y: 200}},
		{
			ID: "neymar", Name: "Neymar", RoamRadius: 120, SpawnPoint: sim.Vec{X: 500, Y: 500},
			DefaultMessage: "Hey there! I'm Neymar Jr! Want to know some football tricks? I'm always ready to talk about the beautiful game!",
		},
		{
			ID: "jurgenklopp", Name: "Jurgen Klopp", RoamRadius: 120, SpawnPoint: sim.Vec{X: 650, Y: 500},
			DefaultMessage: "Hello! I'm Jurgen Klopp. Football is about passion, teamwork, and never giving up. Let's talk tactics!",
		},
	}
	for i := range roster {
		roster[i].MoveSpeed = DefaultMoveSpeed
	}
	return roster
}

// LoadRoster reads a JSON array of character configs. Unknown fields are
// rejected.
func LoadRoster(path string) ([]character.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return ParseRoster(data)
}

func ParseRoster(data []byte) ([]character.Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var roster []character.Config
	if err := dec.Decode(&roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	return roster, nil
}

// ValidateRoster checks every entry and rejects duplicate ids.
func ValidateRoster(roster []character.Config) []error {
	var errs []error
	seen := make(map[string]int)
	for i, cfg := range roster {
		if err := cfg.WithDefaults().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		if j, ok := seen[cfg.ID]; ok {
			errs = append(errs, fmt.Errorf("entry %d (%s): duplicate id, first used by entry %d", i, cfg.ID, j))
		}
		seen[cfg.ID] = i
	}
	return errs
}
