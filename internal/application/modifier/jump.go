package modifier

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// JumpData describes one executed jump.
type JumpData struct {
	Position          mgl64.Vec3
	Velocity          mgl64.Vec3 // velocity after the impulse
	WasGrounded       bool
	WasAirJump        bool
	AirJumpsRemaining int
}

// Jump applies the jump impulse with coyote time, a cooldown and a limited
// number of air jumps.
type Jump struct {
	base
	config *config.JumpConfig

	lastJump      float64
	airJumpsLeft  int
	AirJumpsReset motion.Signal[int]
	AirJumpUsed   motion.Signal[int]
	Jumped        motion.Signal[JumpData]
}

// NewJump creates a jump modifier. The cooldown starts expired.
func NewJump(cfg *config.JumpConfig) *Jump {
	return &Jump{
		config:       cfg,
		lastJump:     math.Inf(-1),
		airJumpsLeft: cfg.MaxAirJumps,
	}
}

// Kind implements motion.Modifier.
func (j *Jump) Kind() motion.Kind { return KindJump }

// Priority implements motion.Modifier.
func (j *Jump) Priority() int { return PriorityJump }

// AirJumpsRemaining returns how many air jumps are left before landing.
func (j *Jump) AirJumpsRemaining() int { return j.airJumpsLeft }

// Process implements motion.Modifier.
func (j *Jump) Process(ctx *motion.Context) {
	if ctx.JustLanded() {
		j.airJumpsLeft = j.config.MaxAirJumps
		j.AirJumpsReset.Emit(j.airJumpsLeft)
	}

	if !ctx.Input.Jump || ctx.ConsumedJump {
		return
	}
	if ctx.Time < j.lastJump+j.config.Cooldown {
		return
	}

	coyote := ctx.Time < ctx.LastGroundedTime+j.config.CoyoteTime
	airJump := false
	if !ctx.IsGrounded && !coyote {
		if j.airJumpsLeft <= 0 {
			return
		}
		j.airJumpsLeft--
		airJump = true
		j.AirJumpUsed.Emit(j.airJumpsLeft)
	}

	j.execute(ctx, airJump)
}

func (j *Jump) execute(ctx *motion.Context, airJump bool) {
	j.lastJump = ctx.Time
	ctx.ConsumedJump = true

	v := ctx.Velocity
	if v.Y() < 0 {
		v[1] *= motion.DampingMultiplier(j.config.MidAirDamping, ctx.DeltaTime)
	}
	v[1] += math.Sqrt(j.config.Height * -motion.Gravity * j.gravityMultiplier())
	ctx.Velocity = scaleHorizontal(v, j.config.SpeedBoost)

	j.Jumped.Emit(JumpData{
		Position:          ctx.Position,
		Velocity:          ctx.Velocity,
		WasGrounded:       ctx.WasGroundedLastFrame,
		WasAirJump:        airJump,
		AirJumpsRemaining: j.airJumpsLeft,
	})
}

// Remove implements motion.Modifier.
func (j *Jump) Remove() {
	j.AirJumpsReset.Clear()
	j.AirJumpUsed.Clear()
	j.Jumped.Clear()
}
