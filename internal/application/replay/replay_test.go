package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

func TestFrameInput_RoundTripsInput(t *testing.T) {
	in := motion.Input{
		Move:   mgl64.Vec2{-1, 0.5},
		Look:   mgl64.Vec2{3, -2},
		Jump:   true,
		Crouch: true,
	}

	fi := NewFrameInput(7, 0.016, in)

	assert.Equal(t, 7, fi.F)
	assert.Equal(t, 0.016, fi.DT)
	assert.Equal(t, in, fi.Input())
}

func TestReplayer_Next(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Level:   "test",
		Frames: []FrameInput{
			{F: 0, DT: 0.016, MY: 1},
			{F: 1, DT: 0.017, MY: 1, J: true, LX: 4},
			{F: 2, DT: 0.016, C: true},
		},
	}

	replayer := NewReplayer(data)
	assert.Equal(t, motion.Input{}, replayer.Sample(), "nothing before the first frame")

	// Frame 0
	fi, ok := replayer.Next()
	require.True(t, ok)
	assert.Equal(t, 0.016, fi.DT)
	assert.Equal(t, mgl64.Vec2{0, 1}, replayer.Sample().Move)
	assert.False(t, replayer.Sample().Jump)

	// Frame 1
	fi, ok = replayer.Next()
	require.True(t, ok)
	assert.Equal(t, 0.017, fi.DT)
	assert.True(t, replayer.Sample().Jump)
	assert.Equal(t, 4.0, replayer.Sample().Look.X())

	// Frame 2
	_, ok = replayer.Next()
	require.True(t, ok)
	assert.True(t, replayer.Sample().Crouch)
	assert.True(t, replayer.Done())

	// End of frames
	_, ok = replayer.Next()
	assert.False(t, ok)
	assert.Equal(t, motion.Input{}, replayer.Sample())
}

func TestReplayer_CurrentFrame(t *testing.T) {
	data := CreateTestReplayData(5, 0.016, motion.Input{})
	replayer := NewReplayer(data)

	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.Next()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.Next()
	replayer.Next()
	assert.Equal(t, 3, replayer.CurrentFrame())
	assert.Equal(t, 5, replayer.TotalFrames())
	assert.Equal(t, "test", replayer.Level())
}

func TestReplayer_Reset(t *testing.T) {
	data := CreateTestReplayData(3, 0.02, motion.Input{Run: true})
	replayer := NewReplayer(data)

	// Advance to end
	replayer.Next()
	replayer.Next()
	replayer.Next()
	_, ok := replayer.Next()
	assert.False(t, ok)

	// Reset
	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.Equal(t, motion.Input{}, replayer.Sample())

	// Should be able to read again
	_, ok = replayer.Next()
	assert.True(t, ok)
	assert.True(t, replayer.Sample().Run)
}

func TestCreateTestReplayData(t *testing.T) {
	in := motion.Input{Move: mgl64.Vec2{0, 1}}
	data := CreateTestReplayData(60, 1.0/60, in)

	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "test", data.Level)
	assert.Len(t, data.Frames, 60)

	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		assert.Equal(t, in, frame.Input())
	}
}

func TestRecorder_RecordFrame(t *testing.T) {
	r := NewRecorder("demo")

	r.RecordFrame(0.016, motion.Input{Jump: true})
	r.RecordFrame(0.017, motion.Input{Move: mgl64.Vec2{1, 0}})

	data := r.Data()
	require.Len(t, data.Frames, 2)
	assert.Equal(t, "demo", data.Level)
	assert.Equal(t, 1, data.Frames[1].F)
	assert.Equal(t, 0.017, data.Frames[1].DT)
	assert.True(t, data.Frames[0].J)
	assert.Equal(t, 1.0, data.Frames[1].MX)
}

func TestRecorder_StopAndIsRecording(t *testing.T) {
	r := NewRecorder("test")

	assert.True(t, r.IsRecording())

	r.Stop()

	assert.False(t, r.IsRecording())
}

func TestRecorder_DoesNotRecordWhenStopped(t *testing.T) {
	r := NewRecorder("test")
	r.Stop()

	r.RecordFrame(0.016, motion.Input{Jump: true})

	assert.Equal(t, 0, r.FrameCount())
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	r := NewRecorder("demo")
	r.RecordFrame(0.016, motion.Input{Move: mgl64.Vec2{0, 1}, Look: mgl64.Vec2{2, 0}})
	r.RecordFrame(0.016, motion.Input{Jump: true})

	path := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, r.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, r.Data().Frames, data.Frames)
	assert.Equal(t, "demo", data.Level)
	assert.Equal(t, Version, data.Version)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder("test")

	err := r.Save(filepath.Join(t.TempDir(), "empty.json"))

	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRecorder_SaveReportsWriteErrors(t *testing.T) {
	r := NewRecorder("test")
	r.RecordFrame(0.016, motion.Input{})

	err := r.Save(filepath.Join(t.TempDir(), "missing", "replay.json"))
	assert.Error(t, err, "directory does not exist")

	if _, statErr := os.Stat("/dev/full"); statErr != nil {
		t.Skip("/dev/full not available")
	}
	err = r.Save("/dev/full")
	assert.Error(t, err, "write to a full device must not be reported as saved")
}
