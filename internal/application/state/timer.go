package state

import "time"

// sampleWindow is the length of one frame-rate sampling window
const sampleWindow = time.Second

// FrameTimer derives delta time and the frame-rate sample from
// timestamps taken at the end of each iteration.
type FrameTimer struct {
	previous    time.Time
	current     time.Time
	sampleStart time.Time
	count       uint32
	frameRate   uint32
}

// NewFrameTimer starts timing at now
func NewFrameTimer(now time.Time) *FrameTimer {
	return &FrameTimer{
		previous:    now,
		current:     now,
		sampleStart: now,
	}
}

// Stamp writes the timing of the iteration about to run into gd
func (t *FrameTimer) Stamp(gd *GameData) {
	gd.delta = t.current.Sub(t.previous)
	gd.frameRate = t.frameRate
}

// Advance closes the current iteration at now.
// The frame-rate sample changes at most once per window.
func (t *FrameTimer) Advance(gd *GameData, now time.Time) {
	t.previous = t.current
	t.current = now

	t.count++
	gd.frame++

	if t.current.Sub(t.sampleStart) >= sampleWindow {
		t.frameRate = t.count
		t.count = 0
		t.sampleStart = t.current
	}
}

// FrameRate returns the latest sample
func (t *FrameTimer) FrameRate() uint32 {
	return t.frameRate
}
