package character

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/footagents/pkg/direction"
)

const (
	// WalkFrameCount is the number of frames in every walk cycle.
	WalkFrameCount = 9
	// WalkFrameRate is the walk cycle playback rate in frames per second.
	WalkFrameRate = 10
)

// Atlas reports which frames a loaded texture atlas contains.
type Atlas interface {
	Has(frame string) bool
}

// FrameSet is an Atlas backed by a set of frame names.
type FrameSet map[string]struct{}

func NewFrameSet(frames ...string) FrameSet {
	s := make(FrameSet, len(frames))
	for _, f := range frames {
		s[f] = struct{}{}
	}
	return s
}

func (s FrameSet) Has(frame string) bool {
	_, ok := s[frame]
	return ok
}

// FullFrameSet returns every static and walk frame for prefix.
func FullFrameSet(prefix string) FrameSet {
	s := make(FrameSet)
	for _, f := range direction.StaticFacings {
		s[StaticFrame(prefix, f)] = struct{}{}
		for _, name := range WalkFrames(prefix, f) {
			s[name] = struct{}{}
		}
	}
	return s
}

// frame prefixes for ids whose atlas folder differs from the id, plus the
// ids shipped with matching folders.
var framePrefixes = map[string]string{
	"messi":            "leomessi",
	"ronaldo":          "cristianoronaldo",
	"leomessi":         "leomessi",
	"cristianoronaldo": "cristianoronaldo",
	"ronaldonazario":   "ronaldonazario",
	"kaka":             "kaka",
	"maradona":         "maradona",
	"neymar":           "neymar",
	"sergioramos":      "sergioramos",
	"pepguardiola":     "pepguardiola",
	"alexferguson":     "alexferguson",
	"ancelotti":        "ancelotti",
	"jurgenklopp":      "jurgenklopp",
	"sophia":           "sophia",
}

// DefaultPrefixes returns a copy of the built-in id to frame prefix table.
func DefaultPrefixes() map[string]string {
	return maps.Clone(framePrefixes)
}

// Assets resolves character ids to frame prefixes. It is read-only after
// construction and shared by every character in a scene.
type Assets struct {
	prefixes map[string]string
	logger   *slog.Logger
}

func NewAssets(prefixes map[string]string, logger *slog.Logger) *Assets {
	if logger == nil {
		logger = slog.Default()
	}
	if prefixes == nil {
		prefixes = framePrefixes
	}
	return &Assets{
		prefixes: maps.Clone(prefixes),
		logger:   logger,
	}
}

// FramePrefix returns the atlas frame prefix for id. Unmapped ids fall back
// to the normalized id itself.
func (a *Assets) FramePrefix(id string) (string, error) {
	normalized := normalizeID(id)
	if normalized == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	if prefix, ok := a.prefixes[normalized]; ok {
		return prefix, nil
	}

	a.logger.Warn("Frame prefix not mapped, using normalized id",
		"character_id", id,
		"fallback", normalized,
		"known_ids", strings.Join(slices.Sorted(maps.Keys(a.prefixes)), ","))
	return normalized, nil
}

func normalizeID(id string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(id))
}

// StaticFrame is the name of the idle pose frame, e.g. "kaka-front".
func StaticFrame(prefix string, f direction.Facing) string {
	return prefix + "-" + f.String()
}

// WalkFrames lists the walk cycle frames, "<prefix>-<facing>-walk-0000"
// through "-0008".
func WalkFrames(prefix string, f direction.Facing) []string {
	frames := make([]string, WalkFrameCount)
	for i := range frames {
		frames[i] = fmt.Sprintf("%s-%s-walk-%04d", prefix, f, i)
	}
	return frames
}

// WalkAnimKey is the key a walk animation is registered under.
func WalkAnimKey(id string, f direction.Facing) string {
	return id + "-" + f.String() + "-walk"
}
