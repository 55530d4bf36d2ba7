package modifier

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// Sliding pushes the player down slopes steeper than the mover's limit.
type Sliding struct {
	base
	config *config.SlidingConfig

	sliding        bool
	SlidingChanged motion.Signal[bool]
}

// NewSliding creates a sliding modifier.
func NewSliding(cfg *config.SlidingConfig) *Sliding {
	return &Sliding{config: cfg}
}

// Kind implements motion.Modifier.
func (s *Sliding) Kind() motion.Kind { return KindSliding }

// Priority implements motion.Modifier.
func (s *Sliding) Priority() int { return PrioritySliding }

// Process implements motion.Modifier.
func (s *Sliding) Process(ctx *motion.Context) {
	sliding := ctx.IsGrounded && ctx.Ground.OnSlope
	if sliding {
		downhill := motion.Normalized(motion.Horizontal(ctx.Ground.SlideDirection.Mul(-1)))
		h := motion.Horizontal(ctx.Velocity).Add(downhill.Mul(s.config.Acceleration * ctx.DeltaTime))
		h = motion.ClampMagnitude(h, s.config.MaxSpeed)
		ctx.Velocity = mgl64.Vec3{h.X(), ctx.Velocity.Y(), h.Z()}
	}
	ctx.IsSliding = sliding

	if sliding != s.sliding {
		s.sliding = sliding
		s.SlidingChanged.Emit(sliding)
	}
}

// Remove implements motion.Modifier.
func (s *Sliding) Remove() {
	s.SlidingChanged.Clear()
}
