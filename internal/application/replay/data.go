package replay

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

// Version is written into every saved replay.
const Version = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	DT float64 `json:"dt"`           // Frame delta time
	MX float64 `json:"mx,omitempty"` // Move strafe
	MY float64 `json:"my,omitempty"` // Move forward
	LX float64 `json:"lx,omitempty"` // Look yaw delta
	LY float64 `json:"ly,omitempty"` // Look pitch delta
	J  bool    `json:"j,omitempty"`  // Jump
	R  bool    `json:"r,omitempty"`  // Run
	C  bool    `json:"c,omitempty"`  // Crouch
}

// NewFrameInput packs one sampled input.
func NewFrameInput(frame int, dt float64, in motion.Input) FrameInput {
	return FrameInput{
		F:  frame,
		DT: dt,
		MX: in.Move.X(),
		MY: in.Move.Y(),
		LX: in.Look.X(),
		LY: in.Look.Y(),
		J:  in.Jump,
		R:  in.Run,
		C:  in.Crouch,
	}
}

// Input unpacks the recorded controls.
func (f FrameInput) Input() motion.Input {
	return motion.Input{
		Move:   mgl64.Vec2{f.MX, f.MY},
		Look:   mgl64.Vec2{f.LX, f.LY},
		Jump:   f.J,
		Run:    f.R,
		Crouch: f.C,
	}
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
