package character

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/footagents/pkg/direction"
)

func TestAssets_FramePrefix(t *testing.T) {
	var buf bytes.Buffer
	a := NewAssets(nil, testLogger(&buf))

	tests := []struct {
		id   string
		want string
	}{
		{"messi", "leomessi"},
		{"ronaldo", "cristianoronaldo"},
		{"Kaka", "kaka"},
		{"  neymar ", "neymar"},
	}
	for _, tt := range tests {
		got, err := a.FramePrefix(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.id)
	}
	assert.Empty(t, buf.String(), "mapped ids log nothing")

	got, err := a.FramePrefix(" Zidane ")
	require.NoError(t, err)
	assert.Equal(t, "zidane", got)
	assert.Contains(t, buf.String(), "Frame prefix not mapped")

	_, err = a.FramePrefix("")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestAssets_TableIsReadOnly(t *testing.T) {
	table := DefaultPrefixes()
	table["messi"] = "changed"

	a := NewAssets(table, testLogger(nil))
	table["messi"] = "changed again"

	got, err := a.FramePrefix("messi")
	require.NoError(t, err)
	assert.Equal(t, "changed", got)
	assert.Equal(t, "leomessi", DefaultPrefixes()["messi"])
}

func TestFrameNames(t *testing.T) {
	assert.Equal(t, "sophia-left", StaticFrame("sophia", direction.FacingLeft))
	assert.Equal(t, "kaka-front-walk", WalkAnimKey("kaka", direction.FacingFront))

	frames := WalkFrames("kaka", direction.FacingBack)
	require.Len(t, frames, WalkFrameCount)
	assert.Equal(t, "kaka-back-walk-0000", frames[0])
	assert.Equal(t, "kaka-back-walk-0008", frames[8])

	set := FullFrameSet("kaka")
	assert.True(t, set.Has("kaka-right"))
	assert.True(t, set.Has("kaka-right-walk-0004"))
	assert.False(t, set.Has("kaka-right-walk-0009"))
}
