package main

import (
	"time"

	"github.com/jwebster45206/footagents/pkg/player"
	"github.com/jwebster45206/footagents/pkg/scene"
)

// holdWindow is how long a key counts as held after its last press event.
// Terminals only report presses (and autorepeats), never releases.
const holdWindow = 250 * time.Millisecond

type key int

const (
	keyLeft key = iota
	keyRight
	keyUp
	keyDown
)

// keyState rebuilds held-key input from a stream of press events.
type keyState struct {
	now      time.Duration
	pressed  map[key]time.Duration
	interact bool
}

func newKeyState() *keyState {
	return &keyState{pressed: make(map[key]time.Duration)}
}

func (k *keyState) press(which key) {
	k.pressed[which] = k.now
}

// pressInteract queues a single interact press for the next tick.
func (k *keyState) pressInteract() {
	k.interact = true
}

// release forgets every held key, e.g. when focus moves to the text box.
func (k *keyState) release() {
	clear(k.pressed)
	k.interact = false
}

func (k *keyState) held(which key) bool {
	at, ok := k.pressed[which]
	return ok && k.now-at <= holdWindow
}

// next returns the input for the coming tick and advances the key clock by
// dt. The interact flag is consumed so it reads as one press.
func (k *keyState) next(dt time.Duration) scene.Input {
	in := scene.Input{
		Input: player.Input{
			Left:  k.held(keyLeft),
			Right: k.held(keyRight),
			Up:    k.held(keyUp),
			Down:  k.held(keyDown),
		},
		Interact: k.interact,
	}
	k.interact = false
	k.now += dt
	return in
}

// keyFor maps arrow and WASD keys to directions.
func keyFor(s string) (key, bool) {
	switch s {
	case "left", "a":
		return keyLeft, true
	case "right", "d":
		return keyRight, true
	case "up", "w":
		return keyUp, true
	case "down", "s":
		return keyDown, true
	}
	return 0, false
}
