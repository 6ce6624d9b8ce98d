// Package interaction decides, each tick, which character the player may
// talk to and drives the dialogue open, advance, face and close transitions.
package interaction

import (
	"log/slog"

	"github.com/jwebster45206/footagents/pkg/character"
	"github.com/jwebster45206/footagents/pkg/sim"
)

// Dialogue is the conversation box the coordinator drives. The coordinator
// never creates or frees it.
type Dialogue interface {
	IsVisible() bool
	IsTyping() bool
	Speaker() *character.Character
	Start(speaker *character.Character)
	Continue()
	Close()
}

// Trigger turns a held key into a single press event.
type Trigger struct {
	down bool
}

// Pressed reports true only on the tick the key goes down.
func (t *Trigger) Pressed(down bool) bool {
	pressed := down && !t.down
	t.down = down
	return pressed
}

// Coordinator selects the interaction candidate and applies the dialogue
// transitions for it.
type Coordinator struct {
	characters []*character.Character
	dialogue   Dialogue
	trigger    Trigger
	logger     *slog.Logger
}

// New creates a coordinator over characters, scanned in the given order.
func New(characters []*character.Character, dialogue Dialogue, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		characters: characters,
		dialogue:   dialogue,
		logger:     logger,
	}
}

// Candidate returns the first character, in declaration order, within the
// interaction radius of player. It is deliberately not the nearest one.
func (c *Coordinator) Candidate(player sim.Vec) *character.Character {
	for _, ch := range c.characters {
		if ch.Destroyed() {
			continue
		}
		if ch.IsPlayerNearby(player, character.InteractionRadius) {
			return ch
		}
	}
	return nil
}

// Tick runs one interaction step and returns the candidate, if any.
// interactDown is the raw level of the interact key.
func (c *Coordinator) Tick(player sim.Vec, interactDown bool) *character.Character {
	candidate := c.Candidate(player)
	pressed := c.trigger.Pressed(interactDown)

	if candidate == nil {
		if c.dialogue.IsVisible() {
			c.logger.Debug("Player walked away, closing dialogue")
			c.dialogue.Close()
		}
		return nil
	}

	if pressed {
		if !c.dialogue.IsVisible() {
			c.logger.Info("Starting dialogue", "character_id", candidate.ID())
			c.dialogue.Start(candidate)
		} else if !c.dialogue.IsTyping() {
			c.dialogue.Continue()
		}
	}

	if c.dialogue.IsVisible() {
		candidate.FacePlayer(player)
	}
	return candidate
}
