package replay

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/sceneloop/internal/application/game"
	"github.com/younwookim/sceneloop/internal/application/state"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// unevenGame advances a fake clock by a varying step each update and
// stops after a fixed number of frames.
type unevenGame struct {
	game.Base
	clock  *clockwork.FakeClock
	frames int
	seen   []FrameTiming
}

func (g *unevenGame) OnUpdate(gd *state.GameData) bool {
	g.seen = append(g.seen, FrameTiming{F: gd.Frame() + 1, DT: int64(gd.Delta()), FPS: gd.FrameRate()})
	if g.clock != nil {
		step := time.Duration(50+(len(g.seen)%4)*25) * time.Millisecond
		g.clock.Advance(step)
	}
	return len(g.seen) < g.frames
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func recordRun(t *testing.T, frames int) (*Recorder, *unevenGame) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(epoch)
	rec := NewRecorder(epoch, "play")
	g := &unevenGame{clock: clock, frames: frames}

	c := game.NewContainer(
		game.WithClock(clock),
		game.WithLogger(quietLogger()),
		game.WithObserver(rec.Observe),
	)
	c.Run(g)
	return rec, g
}

func TestRecorder_Observe(t *testing.T) {
	rec, g := recordRun(t, 30)

	require.Equal(t, 30, rec.FrameCount())
	data := rec.Data()
	assert.Equal(t, TraceVersion, data.Version)
	assert.Equal(t, "play", data.Scene)
	assert.Equal(t, g.seen, data.Frames, "recorder sees what the hooks saw")
	assert.Equal(t, int64(0), data.Frames[0].DT)
	assert.Equal(t, uint64(1), data.Frames[0].F)
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder(epoch, "")
	gd := state.NewGameData()

	rec.Observe(gd)
	rec.Stop()
	rec.Observe(gd)

	assert.Equal(t, 1, rec.FrameCount(), "frames after Stop are ignored")
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder(epoch, "")
	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.Error(t, err)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec, _ := recordRun(t, 10)
	path := filepath.Join(t.TempDir(), "trace.json")

	require.NoError(t, rec.Save(path))

	loaded, err := LoadTrace(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Data().Frames, loaded.Frames)
	assert.Equal(t, rec.Data().StartTime, loaded.StartTime)
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	assert.Regexp(t, `^trace_\d{8}_\d{6}\.json$`, name)
}

func TestLoadTrace_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTrace(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = LoadTrace(bad)
	assert.Error(t, err)

	old := filepath.Join(dir, "old.json")
	require.NoError(t, os.WriteFile(old, []byte(`{"version":"0.1","startTime":"2024-01-01T00:00:00Z","frames":[]}`), 0o644))
	_, err = LoadTrace(old)
	assert.ErrorContains(t, err, "unsupported trace version")
}

func TestReplayer_ReproducesRecordedRun(t *testing.T) {
	rec, recorded := recordRun(t, 40)

	replayer, err := NewReplayer(rec.Data())
	require.NoError(t, err)

	// Same game, but time now comes only from the trace
	replayed := &unevenGame{frames: replayer.TotalFrames()}
	c := game.NewContainer(game.WithClock(replayer), game.WithLogger(quietLogger()))
	c.Run(replayed)

	assert.Equal(t, recorded.seen, replayed.seen)
	assert.Equal(t, 40, replayer.CurrentFrame())
	assert.True(t, replayer.Done())

	// The run crossed at least one full second, so a sample was replayed
	last := replayed.seen[len(replayed.seen)-1]
	assert.NotZero(t, last.FPS)
}

func TestReplayer_Now(t *testing.T) {
	data := TraceData{
		Version:   TraceVersion,
		StartTime: epoch.Format(time.RFC3339Nano),
		Frames: []FrameTiming{
			{F: 1, DT: 0},
			{F: 2, DT: int64(10 * time.Millisecond)},
			{F: 3, DT: int64(30 * time.Millisecond)},
		},
	}

	r, err := NewReplayer(data)
	require.NoError(t, err)
	assert.Equal(t, 0, r.CurrentFrame())

	assert.Equal(t, epoch, r.Now())
	assert.Equal(t, epoch.Add(10*time.Millisecond), r.Now())
	assert.Equal(t, epoch.Add(40*time.Millisecond), r.Now())
	assert.False(t, r.Done())

	// Exhausted: time stands still
	assert.Equal(t, epoch.Add(40*time.Millisecond), r.Now())
	assert.True(t, r.Done())
	assert.Equal(t, 3, r.CurrentFrame())

	r.Reset()
	assert.Equal(t, epoch, r.Now())
	assert.Equal(t, 0, r.CurrentFrame())
	assert.False(t, r.Done())
}

func TestNewReplayer_BadStartTime(t *testing.T) {
	_, err := NewReplayer(TraceData{Version: TraceVersion, StartTime: "yesterday"})
	assert.Error(t, err)
}
