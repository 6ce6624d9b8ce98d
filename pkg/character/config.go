package character

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/footagents/pkg/direction"
	"github.com/jwebster45206/footagents/pkg/sim"
)

const (
	DefaultMoveSpeed             = 20.0
	DefaultRoamRadius            = 200.0
	DefaultPauseChance           = 0.2
	DefaultDirectionChangeChance = 0.3
)

var ErrInvalidID = errors.New("invalid character id")

// Config is the fixed per-character setup. It is not modified after the
// character is created.
type Config struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	SpawnPoint       sim.Vec          `json:"spawn_point"`
	AtlasKey         string           `json:"atlas_key,omitempty"`
	DefaultDirection direction.Facing `json:"default_direction"`
	DefaultMessage   string           `json:"default_message,omitempty"`
	CanRoam          *bool            `json:"can_roam,omitempty"` // nil means true
	MoveSpeed        float64          `json:"move_speed,omitempty"`
	RoamRadius       float64          `json:"roam_radius,omitempty"`

	// Accepted for compatibility; the roam decision uses fixed odds.
	PauseChance           float64 `json:"pause_chance,omitempty"`
	DirectionChangeChance float64 `json:"direction_change_chance,omitempty"`
}

// WithDefaults fills zero-valued tunables with their defaults.
func (c Config) WithDefaults() Config {
	if c.AtlasKey == "" {
		c.AtlasKey = c.ID
	}
	if c.MoveSpeed == 0 {
		c.MoveSpeed = DefaultMoveSpeed
	}
	if c.RoamRadius == 0 {
		c.RoamRadius = DefaultRoamRadius
	}
	if c.PauseChance == 0 {
		c.PauseChance = DefaultPauseChance
	}
	if c.DirectionChangeChance == 0 {
		c.DirectionChangeChance = DefaultDirectionChangeChance
	}
	return c
}

// Roams reports whether the character wanders on its own.
func (c Config) Roams() bool {
	return c.CanRoam == nil || *c.CanRoam
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: id must be a non-empty string", ErrInvalidID)
	}
	if c.MoveSpeed < 0 {
		return fmt.Errorf("character %s: move speed must be positive, got %v", c.ID, c.MoveSpeed)
	}
	if c.RoamRadius < 0 {
		return fmt.Errorf("character %s: roam radius must be positive, got %v", c.ID, c.RoamRadius)
	}
	return nil
}

// Bool returns a pointer to b, for CanRoam literals.
func Bool(b bool) *bool {
	return &b
}
