package modifier

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// BaseMovement accelerates the horizontal velocity toward the input
// direction. Steep slopes count as air so they do not brake a slide.
type BaseMovement struct {
	base
	config *config.MovementConfig
}

// NewBaseMovement creates the walking modifier.
func NewBaseMovement(cfg *config.MovementConfig) *BaseMovement {
	return &BaseMovement{config: cfg}
}

// Kind implements motion.Modifier.
func (b *BaseMovement) Kind() motion.Kind { return KindBaseMovement }

// Priority implements motion.Modifier.
func (b *BaseMovement) Priority() int { return PriorityBaseMovement }

// Process implements motion.Modifier.
func (b *BaseMovement) Process(ctx *motion.Context) {
	dt := ctx.DeltaTime
	hasInput := ctx.WorldMoveDirection.Len() > 0
	target := ctx.WorldMoveDirection.Mul(ctx.MaxSpeed * ctx.SpeedMultiplier)
	current := motion.Horizontal(ctx.Velocity)

	var next mgl64.Vec3
	switch {
	case ctx.IsGrounded && !ctx.Ground.OnSlope:
		target = target.Add(motion.Horizontal(ctx.PlatformVelocity))
		rate := b.config.Acceleration
		if !hasInput {
			rate = b.config.Deceleration
		}
		next = motion.MoveTowardsVec(current, target, rate*dt)
	case hasInput:
		next = motion.MoveTowardsVec(current, target, b.config.Acceleration*b.config.AirControl*dt)
	default:
		return
	}

	ctx.Velocity = mgl64.Vec3{next.X(), ctx.Velocity.Y(), next.Z()}
}

// Remove implements motion.Modifier.
func (b *BaseMovement) Remove() {}
