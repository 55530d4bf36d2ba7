package modifier

import (
	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// Run sets IsRunning from the run input and speeds up movement while it holds.
type Run struct {
	base
	config *config.RunConfig

	running        bool
	RunningChanged motion.Signal[bool]
}

// NewRun creates a run modifier.
func NewRun(cfg *config.RunConfig) *Run {
	return &Run{config: cfg}
}

// Kind implements motion.Modifier.
func (r *Run) Kind() motion.Kind { return KindRun }

// Priority implements motion.Modifier.
func (r *Run) Priority() int { return PriorityRun }

// Running reports the state of the last processed step.
func (r *Run) Running() bool { return r.running }

// Process implements motion.Modifier.
func (r *Run) Process(ctx *motion.Context) {
	forward := !r.config.RequireForward || ctx.MoveInput.Z() > 0
	running := ctx.Input.Run && !ctx.IsCrouching && forward

	ctx.IsRunning = running
	if running {
		ctx.SpeedMultiplier *= r.config.SpeedMultiplier
	}

	if running != r.running {
		r.running = running
		r.RunningChanged.Emit(running)
	}
}

// Remove implements motion.Modifier.
func (r *Run) Remove() {
	r.RunningChanged.Clear()
}
