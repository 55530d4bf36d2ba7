package system

import (
	"errors"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/application/state"
	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// Controller errors. A controller created without one of these becomes
// inert and reports the cause from Err.
var (
	ErrMissingConfig = errors.New("controller config is not assigned")
	ErrMissingMover  = errors.New("kinematic mover is not assigned")
	ErrMissingProbe  = errors.New("ray probe is not assigned")
)

const (
	baseLookSensitivity     = 0.008
	velocityImpactThreshold = 1.0
)

// Collaborators are the services a Controller drives. Surfaces, Camera and
// Input are optional.
type Collaborators struct {
	Mover    motion.Mover
	Probe    motion.RayProbe
	Surfaces motion.SurfaceVelocity
	Camera   motion.CameraRig
	Input    motion.InputSource
}

// Controller is the first-person motion orchestrator. It owns the
// persistent motion state and runs exactly one integration step per
// simulation step, either from Update or from FixedUpdate.
type Controller struct {
	config   *config.ControllerConfig
	mover    motion.Mover
	probe    motion.RayProbe
	camera   motion.CameraRig
	input    motion.InputSource
	sensor   *GroundSensor
	registry *motion.Registry
	err      error

	velocity mgl64.Vec3
	rotation motion.Rotation
	grounded bool
	ground   motion.GroundInfo
	ctx      motion.Context

	now         float64
	lastFrameDT float64
	prevFrameDT float64
	frameInput  motion.Input

	groundedLastFrame  bool
	yVelocityLastFrame float64
	lastGroundedTime   float64

	GroundedChanged motion.Signal[bool]
	VelocityImpact  motion.Signal[motion.Impact]
	Teleported      motion.Signal[mgl64.Vec3]
}

// New creates a controller. cfg is kept by pointer so hot-reloaded values
// take effect on the next step.
func New(cfg *config.ControllerConfig, c Collaborators) *Controller {
	ctrl := &Controller{
		config: cfg,
		mover:  c.Mover,
		probe:  c.Probe,
		camera: c.Camera,
		input:  c.Input,
		ground: motion.NoGround(),
	}
	ctrl.registry = motion.NewRegistry(ctrl)

	switch {
	case cfg == nil:
		ctrl.err = ErrMissingConfig
	case c.Mover == nil:
		ctrl.err = ErrMissingMover
	case c.Probe == nil:
		ctrl.err = ErrMissingProbe
	}
	if ctrl.err != nil {
		log.Printf("[Controller] disabled: %v", ctrl.err)
		return ctrl
	}

	ctrl.sensor = NewGroundSensor(&cfg.Ground, c.Probe, c.Surfaces)
	ctrl.grounded = c.Mover.Grounded()
	ctrl.groundedLastFrame = ctrl.grounded
	return ctrl
}

// Enabled reports whether the controller runs. It is false when a
// required collaborator or the config was missing at construction.
func (c *Controller) Enabled() bool { return c.err == nil }

// Err returns why the controller is disabled, or nil.
func (c *Controller) Err() error { return c.err }

// SetInput replaces the input source. nil disables rotation and movement input.
func (c *Controller) SetInput(in motion.InputSource) { c.input = in }

// Modifiers returns the modifier registry.
func (c *Controller) Modifiers() *motion.Registry { return c.registry }

// AddModifier registers m. See motion.Registry.Add.
func (c *Controller) AddModifier(m motion.Modifier) motion.Modifier {
	return c.registry.Add(m)
}

// RemoveModifier unregisters m. See motion.Registry.Remove.
func (c *Controller) RemoveModifier(m motion.Modifier) bool {
	return c.registry.Remove(m)
}

// Update is the variable tick, called once per rendered frame with the
// frame's delta time.
func (c *Controller) Update(dt float64) {
	if !c.Enabled() {
		return
	}

	c.now += dt
	c.prevFrameDT = c.lastFrameDT
	c.lastFrameDT = dt
	c.frameInput = c.sampleInput()

	c.updateGroundedState()
	c.applyLook(dt)

	if dt < c.config.Physics.FixedStep {
		c.integrate(dt)
	}
}

// FixedUpdate is the fixed tick. It integrates with the fixed step only
// when the last frame was too long for Update to have done so.
func (c *Controller) FixedUpdate() {
	if !c.Enabled() {
		return
	}
	if c.lastFrameDT >= c.config.Physics.FixedStep {
		c.integrate(c.config.Physics.FixedStep)
	}
}

// Close removes every modifier in reverse registration order and drops
// all subscribers.
func (c *Controller) Close() {
	c.registry.Clear()
	c.GroundedChanged.Clear()
	c.VelocityImpact.Clear()
	c.Teleported.Clear()
}

func (c *Controller) sampleInput() motion.Input {
	if c.input == nil {
		return motion.Input{}
	}
	return c.input.Sample()
}

func (c *Controller) updateGroundedState() {
	was := c.grounded
	c.grounded = c.mover.Grounded()
	if was != c.grounded {
		c.GroundedChanged.Emit(c.grounded)
	}
}

// applyLook turns the look delta into rotation, normalized against the
// previous frame's delta time.
func (c *Controller) applyLook(dt float64) {
	if c.input == nil || dt == 0 {
		return
	}

	ratio := 1.0
	if c.prevFrameDT > 0 {
		ratio = dt / c.prevFrameDT
	}
	factor := c.config.Look.Sensitivity * baseLookSensitivity * ratio

	look := c.frameInput.Look
	c.rotation.Pitch = c.clampPitch(c.rotation.Pitch + look.Y()*factor)
	c.rotation.Yaw += look.X() * factor
	c.pushPitch()
}

func (c *Controller) clampPitch(p float64) float64 {
	limit := c.config.Look.ClampAngle
	return mgl64.Clamp(p, -limit, limit)
}

func (c *Controller) pushPitch() {
	if c.camera != nil {
		c.camera.SetPitch(c.rotation.Pitch)
	}
}

func (c *Controller) groundOrigin() mgl64.Vec3 {
	pos := c.mover.Position()
	if off := c.config.Ground.OriginOffset; off != nil {
		return pos.Add(*off)
	}
	return pos
}

// integrate runs one movement step: sense ground, build the context, run
// modifiers, then apply gravity, movement and trailing frame state.
func (c *Controller) integrate(dt float64) {
	c.ground = c.sensor.Sense(c.groundOrigin(), c.mover.SlopeLimit())
	c.buildContext(dt)

	for _, m := range c.registry.All() {
		if m.Active() {
			m.Process(&c.ctx)
		}
	}
	c.velocity = c.ctx.Velocity

	c.applyGravity(dt)
	c.applyMovement(dt)
	c.updateFrameState()
}

func (c *Controller) buildContext(dt float64) {
	in := c.frameInput
	forward, right := motion.YawBasis(c.rotation.Yaw)
	dir := motion.Normalized(motion.Horizontal(forward.Mul(in.Move.Y()).Add(right.Mul(in.Move.X()))))

	c.ctx = motion.Context{
		Input:              in,
		MoveInput:          mgl64.Vec3{in.Move.X(), 0, in.Move.Y()},
		WorldMoveDirection: dir,
		MaxSpeed:           c.config.Movement.WalkSpeed,
		SpeedMultiplier:    1,

		Velocity:             c.velocity,
		Position:             c.mover.Position(),
		IsGrounded:           c.grounded,
		WasGroundedLastFrame: c.groundedLastFrame,
		Ground:               c.ground,
		DeltaTime:            dt,
		Time:                 c.now,
		LastGroundedTime:     c.lastGroundedTime,
		PreviousYVelocity:    c.yVelocityLastFrame,
	}
}

func (c *Controller) applyGravity(dt float64) {
	if c.ctx.PreventGravity {
		return
	}

	c.velocity[1] += motion.Gravity * c.config.Physics.GravityMultiplier * dt
	if c.grounded && c.velocity.Y() <= 0 {
		c.velocity[1] = -c.config.Physics.GroundedSnapVelocity
	}
}

func (c *Controller) applyMovement(dt float64) {
	if !c.mover.CollisionEnabled() || c.ctx.PreventMovement {
		return
	}

	before := c.velocity
	flags, resolved := c.mover.Move(c.velocity.Mul(dt), dt)
	hadImpact := false

	if flags.Has(motion.CollisionSides) {
		c.velocity[0] = resolved.X()
		c.velocity[2] = resolved.Z()
		hadImpact = true
	}
	if flags.Has(motion.CollisionAbove) {
		c.velocity[1] = resolved.Y()
		hadImpact = true
	}

	if hadImpact && before.Sub(c.velocity).Len() > velocityImpactThreshold {
		c.VelocityImpact.Emit(motion.Impact{Before: before, After: c.velocity})
	}
}

func (c *Controller) updateFrameState() {
	if c.grounded {
		c.lastGroundedTime = c.now
	}
	c.groundedLastFrame = c.grounded
	c.yVelocityLastFrame = c.velocity.Y()
}

// Mover implements motion.Host.
func (c *Controller) Mover() motion.Mover { return c.mover }

// Probe implements motion.Host.
func (c *Controller) Probe() motion.RayProbe { return c.probe }

// CameraRig implements motion.Host.
func (c *Controller) CameraRig() motion.CameraRig { return c.camera }

// GravityMultiplier implements motion.Host.
func (c *Controller) GravityMultiplier() float64 {
	if c.config == nil {
		return 1
	}
	return c.config.Physics.GravityMultiplier
}

// SetVelocity replaces the velocity.
func (c *Controller) SetVelocity(v mgl64.Vec3) { c.velocity = v }

// AddVelocity adds v to the velocity.
func (c *Controller) AddVelocity(v mgl64.Vec3) { c.velocity = c.velocity.Add(v) }

// SetHorizontalVelocity replaces X and Z, keeping Y.
func (c *Controller) SetHorizontalVelocity(v mgl64.Vec3) {
	c.velocity[0] = v.X()
	c.velocity[2] = v.Z()
}

// SetVerticalVelocity replaces Y, keeping X and Z.
func (c *Controller) SetVerticalVelocity(y float64) { c.velocity[1] = y }

// ResetVelocity zeroes the velocity and the remembered vertical velocity.
func (c *Controller) ResetVelocity() {
	c.velocity = mgl64.Vec3{}
	c.yVelocityLastFrame = 0
}

// SetRotation replaces the look rotation. Pitch is clamped.
func (c *Controller) SetRotation(r motion.Rotation) {
	if c.config == nil {
		return
	}
	c.rotation = motion.Rotation{Pitch: c.clampPitch(r.Pitch), Yaw: r.Yaw}
	c.pushPitch()
}

// AddRotation adds delta to the look rotation. Pitch is clamped. It also
// implements motion.Host.
func (c *Controller) AddRotation(delta motion.Rotation) {
	if c.config == nil {
		return
	}
	c.rotation.Pitch = c.clampPitch(c.rotation.Pitch + delta.Pitch)
	c.rotation.Yaw += delta.Yaw
	c.pushPitch()
}

// Rotation returns the look rotation in degrees.
func (c *Controller) Rotation() motion.Rotation { return c.rotation }

// Teleport relocates the body without sweeping it through the world, so
// no impact is reported. rot may be nil to keep the current rotation.
func (c *Controller) Teleport(pos mgl64.Vec3, rot *motion.Rotation, resetVelocity bool) {
	if !c.Enabled() {
		return
	}

	wasEnabled := c.mover.CollisionEnabled()
	c.mover.SetCollisionEnabled(false)

	c.mover.SetPosition(pos)
	if rot != nil {
		c.SetRotation(*rot)
	}
	if resetVelocity {
		c.ResetVelocity()
	}

	c.mover.SetCollisionEnabled(wasEnabled)
	c.updateGroundedState()

	c.Teleported.Emit(pos)
}

// SetCollisionEnabled toggles collision resolution. While disabled the
// controller does not displace the body.
func (c *Controller) SetCollisionEnabled(enabled bool) {
	if c.mover != nil {
		c.mover.SetCollisionEnabled(enabled)
	}
}

// Velocity returns the persistent velocity.
func (c *Controller) Velocity() mgl64.Vec3 { return c.velocity }

// Speed returns the velocity magnitude.
func (c *Controller) Speed() float64 { return c.velocity.Len() }

// HorizontalSpeed returns the speed in the XZ plane.
func (c *Controller) HorizontalSpeed() float64 { return motion.Horizontal(c.velocity).Len() }

// VerticalSpeed returns the Y velocity, positive up.
func (c *Controller) VerticalSpeed() float64 { return c.velocity.Y() }

// Position returns the body position.
func (c *Controller) Position() mgl64.Vec3 {
	if c.mover == nil {
		return mgl64.Vec3{}
	}
	return c.mover.Position()
}

// IsGrounded reports the grounded flag of the last variable tick.
func (c *Controller) IsGrounded() bool { return c.grounded }

// IsCrouching reports the crouch flag of the last step.
func (c *Controller) IsCrouching() bool { return c.ctx.IsCrouching }

// IsRunning reports the run flag of the last step.
func (c *Controller) IsRunning() bool { return c.ctx.IsRunning }

// IsOnSlope reports whether the last ground probe found a steep slope.
func (c *Controller) IsOnSlope() bool { return c.ground.OnSlope }

// Ground returns the last ground probe result.
func (c *Controller) Ground() motion.GroundInfo { return c.ground }

// LastContext returns the context of the last integration step.
func (c *Controller) LastContext() motion.Context { return c.ctx }

// LastGroundedTime returns the clock time of the last grounded step.
func (c *Controller) LastGroundedTime() float64 { return c.lastGroundedTime }

// TimeSinceGrounded returns how long ago the last grounded step ran.
func (c *Controller) TimeSinceGrounded() float64 { return c.now - c.lastGroundedTime }

// Now returns the controller clock in seconds.
func (c *Controller) Now() float64 { return c.now }

// Stance classifies the last step.
func (c *Controller) Stance() state.Stance {
	ctx := c.ctx
	return state.Classify(&ctx)
}
