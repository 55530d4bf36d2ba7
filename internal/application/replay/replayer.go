package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

// Replayer handles input playback from recorded data. It is a
// motion.InputSource that reports the frame last returned by Next.
type Replayer struct {
	data    ReplayData
	frame   int
	current motion.Input
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Next returns the next recorded frame and advances. Once the recording
// is exhausted it returns false and Sample reports no input.
func (r *Replayer) Next() (FrameInput, bool) {
	if r.frame >= len(r.data.Frames) {
		r.current = motion.Input{}
		return FrameInput{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	r.current = fi.Input()
	return fi, true
}

// Sample implements motion.InputSource.
func (r *Replayer) Sample() motion.Input {
	return r.current
}

// Done reports whether every frame has been played.
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Level returns the level the replay was recorded on
func (r *Replayer) Level() string {
	return r.data.Level
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.current = motion.Input{}
}

// CreateTestReplayData creates replay data holding the same input for
// every frame.
func CreateTestReplayData(frames int, dt float64, in motion.Input) ReplayData {
	data := ReplayData{
		Version:   Version,
		Level:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = NewFrameInput(i, dt, in)
	}

	return data
}
