package modifier

import (
	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// Landing penalizes horizontal speed after a hard landing.
type Landing struct {
	base
	config *config.LandingConfig

	Landed motion.Signal[float64] // impact speed
}

// NewLanding creates a landing modifier.
func NewLanding(cfg *config.LandingConfig) *Landing {
	return &Landing{config: cfg}
}

// Kind implements motion.Modifier.
func (l *Landing) Kind() motion.Kind { return KindLanding }

// Priority implements motion.Modifier.
func (l *Landing) Priority() int { return PriorityLanding }

// Process implements motion.Modifier.
func (l *Landing) Process(ctx *motion.Context) {
	if !ctx.JustLanded() {
		return
	}
	impact := -ctx.PreviousYVelocity
	if impact < l.config.MinImpactSpeed {
		return
	}
	ctx.Velocity = scaleHorizontal(ctx.Velocity, l.config.SpeedPenalty)
	l.Landed.Emit(impact)
}

// Remove implements motion.Modifier.
func (l *Landing) Remove() {
	l.Landed.Clear()
}
