package state

import "github.com/younwookim/fpmotion/internal/domain/motion"

// Stance is the player's movement posture after an integration step
type Stance int

const (
	StanceGrounded Stance = iota
	StanceAirborne
	StanceCrouching
	StanceRunning
	StanceSliding
)

// String returns the string representation of the stance
func (s Stance) String() string {
	switch s {
	case StanceGrounded:
		return "Grounded"
	case StanceAirborne:
		return "Airborne"
	case StanceCrouching:
		return "Crouching"
	case StanceRunning:
		return "Running"
	case StanceSliding:
		return "Sliding"
	default:
		return "Unknown"
	}
}

// Classify derives the stance from a finished step. Sliding wins over
// crouching, crouching over running, and any of those over plain ground.
func Classify(ctx *motion.Context) Stance {
	switch {
	case ctx == nil:
		return StanceGrounded
	case ctx.IsSliding:
		return StanceSliding
	case ctx.IsCrouching:
		return StanceCrouching
	case ctx.IsRunning:
		return StanceRunning
	case ctx.IsGrounded:
		return StanceGrounded
	default:
		return StanceAirborne
	}
}

// Mode is the state of the play session
type Mode int

const (
	ModePlaying Mode = iota
	ModePaused
	ModeReplaying
	ModeFinished
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "Playing"
	case ModePaused:
		return "Paused"
	case ModeReplaying:
		return "Replaying"
	case ModeFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}
