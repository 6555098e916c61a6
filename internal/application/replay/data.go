// Package replay records the frame timing of a loop run and plays it back
// as a clock, so a run can be reproduced without the wall clock.
package replay

// TraceVersion is written into every saved trace
const TraceVersion = "1.0"

// FrameTiming records the timing a single iteration observed
type FrameTiming struct {
	F   uint64 `json:"f"`             // Frame number (1-based)
	DT  int64  `json:"dt"`            // Delta time in nanoseconds
	FPS uint32 `json:"fps,omitempty"` // Frame-rate sample
}

// TraceData contains everything needed to replay a run's timing
type TraceData struct {
	Version   string        `json:"version"`
	Scene     string        `json:"scene,omitempty"`
	StartTime string        `json:"startTime"`
	Frames    []FrameTiming `json:"frames"`
}
