package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerFrame(t *testing.T) {
	tr := NewTracker()
	start := time.Unix(100, 0)

	assert.Zero(t, tr.Frame(start), "first frame")
	assert.InDelta(t, 0.016, tr.Frame(start.Add(16*time.Millisecond)), 1e-6)
	assert.InDelta(t, 0.5, tr.Frame(start.Add(516*time.Millisecond)), 1e-6)
	assert.Zero(t, tr.Frame(start), "clock went backwards")
}

func TestTrackerCursorDelta(t *testing.T) {
	tr := NewTracker()

	dx, dy := tr.CursorDelta(400, 300)
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	dx, dy = tr.CursorDelta(410, 290)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(10), dy, "moving up is positive")

	dx, dy = tr.CursorDelta(405, 295)
	assert.Equal(t, float32(-5), dx)
	assert.Equal(t, float32(-5), dy)

	tr.ResetCursor()
	dx, dy = tr.CursorDelta(0, 0)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestTrackerPressed(t *testing.T) {
	tr := NewTracker()
	const tab, esc = 43, 41

	steps := []struct {
		key  int
		down bool
		want bool
	}{
		{tab, false, false},
		{tab, true, true},
		{tab, true, false},
		{tab, true, false},
		{esc, true, true},
		{tab, false, false},
		{tab, true, true},
	}
	for i, s := range steps {
		assert.Equal(t, s.want, tr.Pressed(s.key, s.down), "step %d", i)
	}
}
