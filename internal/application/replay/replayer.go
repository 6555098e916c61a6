package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Replayer is a clock that reproduces the timing of a recorded trace.
//
// The first Now returns the trace start; each later call advances by the
// next recorded delta. A loop driven by it sees the recorded delta times
// and frame-rate samples again. Once the trace is exhausted time stops.
type Replayer struct {
	data  TraceData
	start time.Time
	now   time.Time
	calls int
}

// NewReplayer creates a replay clock for data
func NewReplayer(data TraceData) (*Replayer, error) {
	start, err := time.Parse(time.RFC3339Nano, data.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid trace start time %q: %w", data.StartTime, err)
	}

	return &Replayer{
		data:  data,
		start: start,
		now:   start,
	}, nil
}

// LoadTrace loads trace data from a file
func LoadTrace(filename string) (*TraceData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data TraceData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}

	if data.Version != TraceVersion {
		return nil, fmt.Errorf("unsupported trace version %q", data.Version)
	}

	return &data, nil
}

// Now returns the replayed time and advances to the next frame.
// Frame 0's delta is the loop's first iteration, which is always zero,
// so the n-th call after the first uses frame n.
func (r *Replayer) Now() time.Time {
	if r.calls > 0 && r.calls < len(r.data.Frames) {
		r.now = r.now.Add(time.Duration(r.data.Frames[r.calls].DT))
	}
	r.calls++
	return r.now
}

// Done reports whether every recorded frame has been replayed
func (r *Replayer) Done() bool {
	return r.calls > len(r.data.Frames)
}

// CurrentFrame returns the number of frames replayed so far
func (r *Replayer) CurrentFrame() int {
	if r.calls == 0 {
		return 0
	}
	return min(r.calls-1, len(r.data.Frames))
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Reset rewinds the replayer to the trace start
func (r *Replayer) Reset() {
	r.now = r.start
	r.calls = 0
}
