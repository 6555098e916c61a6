package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/sceneloop/internal/application/state"
)

// Recorder collects per-iteration timing from a running loop
type Recorder struct {
	data      TraceData
	recording bool
}

// NewRecorder creates a recorder whose trace starts at start
func NewRecorder(start time.Time, scene string) *Recorder {
	return &Recorder{
		data: TraceData{
			Version:   TraceVersion,
			Scene:     scene,
			StartTime: start.Format(time.RFC3339Nano),
			Frames:    make([]FrameTiming, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// Observe records the iteration gd just completed.
// Its signature matches game.Observer.
func (r *Recorder) Observe(gd *state.GameData) {
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, FrameTiming{
		F:   gd.Frame(),
		DT:  int64(gd.Delta()),
		FPS: gd.FrameRate(),
	})
}

// Save writes the trace to a JSON file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded trace
func (r *Recorder) Data() TraceData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("trace_%s.json", time.Now().Format("20060102_150405"))
}
