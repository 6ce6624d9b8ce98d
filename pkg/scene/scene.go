// Package scene wires the player, the characters and the interaction
// coordinator into one fixed-step simulation.
package scene

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/footagents/pkg/character"
	"github.com/jwebster45206/footagents/pkg/interaction"
	"github.com/jwebster45206/footagents/pkg/legend"
	"github.com/jwebster45206/footagents/pkg/player"
	"github.com/jwebster45206/footagents/pkg/sim"
)

const PlayerPrefix = "sophia"

var (
	DefaultPlayerSpawn = sim.Vec{X: 512, Y: 350}
	DefaultBounds      = sim.Bounds{Max: sim.Vec{X: 1024, Y: 700}}
)

// Dialogue is the dialogue box the scene drives once per tick.
type Dialogue interface {
	interaction.Dialogue
	Tick(dt time.Duration)
}

// Input is the raw key state for one tick.
type Input struct {
	player.Input
	Interact bool
}

// Config describes a scene at setup time.
type Config struct {
	Roster      []character.Config
	PlayerSpawn sim.Vec
	Bounds      sim.Bounds
}

// Deps are optional collaborators; zero values get defaults.
type Deps struct {
	Rand   sim.Rand
	Assets *character.Assets
	Atlas  func(atlasKey string) character.Atlas
	Logger *slog.Logger
}

// Scene owns the clock, the player and every character for its lifetime.
type Scene struct {
	clock       *sim.Clock
	bounds      sim.Bounds
	player      *player.Controller
	characters  []*character.Character
	dialogue    Dialogue
	coordinator *interaction.Coordinator
	candidate   *character.Character
	logger      *slog.Logger
}

// New builds the scene. Any invalid character aborts construction.
func New(cfg Config, dialogue Dialogue, deps Deps) (*Scene, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Rand == nil {
		deps.Rand = sim.NewRand(time.Now().UnixNano())
	}
	if deps.Assets == nil {
		deps.Assets = character.NewAssets(nil, deps.Logger)
	}
	if cfg.Roster == nil {
		cfg.Roster = DefaultRoster()
	}
	if cfg.PlayerSpawn == (sim.Vec{}) {
		cfg.PlayerSpawn = DefaultPlayerSpawn
	}
	if cfg.Bounds == (sim.Bounds{}) {
		cfg.Bounds = DefaultBounds
	}

	s := &Scene{
		clock:    sim.NewClock(),
		bounds:   cfg.Bounds,
		player:   player.New(PlayerPrefix, cfg.PlayerSpawn),
		dialogue: dialogue,
		logger:   deps.Logger,
	}

	for _, cc := range cfg.Roster {
		if cc.Name == "" {
			cc.Name = legend.DisplayName(cc.ID)
		}
		var atlas character.Atlas
		if deps.Atlas != nil {
			atlas = deps.Atlas(cc.WithDefaults().AtlasKey)
		}
		c, err := character.New(cc, character.Deps{
			Clock:  s.clock,
			Rand:   deps.Rand,
			Assets: deps.Assets,
			Atlas:  atlas,
			Logger: deps.Logger,
		})
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to set up scene: %w", err)
		}
		s.characters = append(s.characters, c)
	}

	s.coordinator = interaction.New(s.characters, dialogue, deps.Logger)
	s.logger.Info("Scene created", "characters", len(s.characters))
	return s, nil
}

func (s *Scene) Clock() *sim.Clock                   { return s.clock }
func (s *Scene) Player() *player.Controller          { return s.player }
func (s *Scene) Characters() []*character.Character { return s.characters }
func (s *Scene) Bounds() sim.Bounds                  { return s.bounds }

// Candidate is the character the player could talk to after the last tick.
func (s *Scene) Candidate() *character.Character { return s.candidate }

// Tick advances the simulation by dt: timers, player, interaction,
// characters, dialogue, then physics.
func (s *Scene) Tick(dt time.Duration, in Input) {
	s.clock.Advance(dt)

	if s.dialogue.IsVisible() {
		s.player.Halt()
	} else {
		s.player.Update(in.Input)
	}

	pos := s.player.Position()
	s.candidate = s.coordinator.Tick(pos, in.Interact)

	visible := s.dialogue.IsVisible()
	speaker := s.dialogue.Speaker()
	for _, c := range s.characters {
		c.Update(pos, visible && speaker == c)
	}

	s.dialogue.Tick(dt)
	s.integrate(dt.Seconds())
}

func (s *Scene) integrate(dt float64) {
	s.step(s.player.Body(), dt)
	for _, c := range s.characters {
		if c.Destroyed() {
			continue
		}
		s.step(c.Body(), dt)
	}
}

func (s *Scene) step(b *sim.Body, dt float64) {
	b.Integrate(dt)
	b.Pos, _ = s.bounds.Clamp(b.Pos)
}

// SetLabelsVisible shows or hides every name label.
func (s *Scene) SetLabelsVisible(v bool) {
	for _, c := range s.characters {
		c.SetLabelVisible(v)
	}
}

// Close destroys every character, cancelling their timers.
func (s *Scene) Close() {
	if s.dialogue != nil {
		s.dialogue.Close()
	}
	for _, c := range s.characters {
		c.Destroy()
	}
	s.logger.Debug("Scene closed", "pending_timers", s.clock.Len())
}
