package input

import "time"

// Tracker holds the per-frame input state a render loop carries between
// frames: the last cursor position, the first-mouse flag, the last frame time
// and the previous state of edge-triggered keys.
type Tracker struct {
	lastX, lastY float32
	firstMouse   bool

	lastFrame time.Time
	started   bool

	prev map[int]bool
}

// NewTracker returns a tracker that treats the next cursor sample as the first.
func NewTracker() *Tracker {
	return &Tracker{
		firstMouse: true,
		prev:       make(map[int]bool),
	}
}

// Frame records the start of a frame and returns the seconds since the
// previous one. The first frame, and any frame whose clock went backwards,
// yields 0.
func (t *Tracker) Frame(now time.Time) float32 {
	if !t.started {
		t.started = true
		t.lastFrame = now
		return 0
	}
	dt := now.Sub(t.lastFrame)
	t.lastFrame = now
	if dt < 0 {
		return 0
	}
	return float32(dt.Seconds())
}

// CursorDelta converts an absolute cursor position into a look offset.
// The y offset is reversed since window y grows downward. The first sample
// after construction or ResetCursor only records the position.
func (t *Tracker) CursorDelta(x, y float32) (dx, dy float32) {
	if t.firstMouse {
		t.lastX, t.lastY = x, y
		t.firstMouse = false
		return 0, 0
	}
	dx = x - t.lastX
	dy = t.lastY - y
	t.lastX, t.lastY = x, y
	return dx, dy
}

// ResetCursor makes the next CursorDelta a first sample, e.g. after the
// cursor was warped or recaptured.
func (t *Tracker) ResetCursor() {
	t.firstMouse = true
}

// Pressed reports a rising edge: key is down now and was up on the previous call.
func (t *Tracker) Pressed(key int, down bool) bool {
	was := t.prev[key]
	t.prev[key] = down
	return down && !was
}
