package modifier

import (
	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// standUpMargin is the extra headroom the stand-up probe checks.
const standUpMargin = 0.1

// Crouch shrinks the collider while the crouch input is held and refuses to
// stand up under a ceiling.
type Crouch struct {
	base
	config *config.CrouchConfig

	crouching     bool
	CrouchChanged motion.Signal[bool]
	CrouchBlocked motion.Signal[struct{}]
}

// NewCrouch creates a crouch modifier.
func NewCrouch(cfg *config.CrouchConfig) *Crouch {
	return &Crouch{config: cfg}
}

// Kind implements motion.Modifier.
func (c *Crouch) Kind() motion.Kind { return KindCrouch }

// Priority implements motion.Modifier.
func (c *Crouch) Priority() int { return PriorityCrouch }

// Crouching reports the state of the last processed step.
func (c *Crouch) Crouching() bool { return c.crouching }

// Process implements motion.Modifier.
func (c *Crouch) Process(ctx *motion.Context) {
	crouching := ctx.Input.Crouch
	if c.crouching && !crouching && !c.canStand(ctx) {
		crouching = true
		c.CrouchBlocked.Emit(struct{}{})
	}

	ctx.IsCrouching = crouching
	if crouching {
		ctx.SpeedMultiplier *= c.config.SpeedMultiplier
	}

	if crouching != c.crouching {
		c.crouching = crouching
		c.applyShape()
		c.CrouchChanged.Emit(crouching)
	}
	c.moveCamera(ctx.DeltaTime)
}

func (c *Crouch) canStand(ctx *motion.Context) bool {
	if c.host == nil || c.host.Probe() == nil {
		return true
	}
	origin := ctx.Position.Add(motion.Up.Mul(c.config.CrouchingHeight))
	dist := c.config.StandingHeight - c.config.CrouchingHeight + standUpMargin
	_, hit := c.host.Probe().Raycast(origin, motion.Up, dist, motion.AllLayers)
	return !hit
}

func (c *Crouch) applyShape() {
	if c.host == nil || c.host.Mover() == nil {
		return
	}
	if c.crouching {
		c.host.Mover().SetShape(c.config.CrouchingHeight, c.config.CrouchingCenterY)
	} else {
		c.host.Mover().SetShape(c.config.StandingHeight, c.config.StandingCenterY)
	}
}

func (c *Crouch) moveCamera(dt float64) {
	if c.host == nil {
		return
	}
	cam := c.host.CameraRig()
	if cam == nil {
		return
	}
	target := c.config.CameraStandingY
	if c.crouching {
		target = c.config.CameraCrouchingY
	}
	cam.SetOffsetY(motion.MoveTowards(cam.OffsetY(), target, c.config.TransitionSpeed*dt))
}

// Remove implements motion.Modifier.
func (c *Crouch) Remove() {
	c.CrouchChanged.Clear()
	c.CrouchBlocked.Clear()
}
