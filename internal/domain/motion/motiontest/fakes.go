// Package motiontest provides scripted collaborators for movement tests.
package motiontest

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

// Ray is one recorded probe call.
type Ray struct {
	Origin  mgl64.Vec3
	Dir     mgl64.Vec3
	MaxDist float64
	Mask    motion.LayerMask
}

// Probe answers raycasts through HitFunc and records every call.
type Probe struct {
	HitFunc func(r Ray) (motion.RaycastHit, bool)
	Calls   []Ray
}

// Raycast implements motion.RayProbe.
func (p *Probe) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask motion.LayerMask) (motion.RaycastHit, bool) {
	r := Ray{Origin: origin, Dir: dir, MaxDist: maxDist, Mask: mask}
	p.Calls = append(p.Calls, r)
	if p.HitFunc == nil {
		return motion.RaycastHit{}, false
	}
	return p.HitFunc(r)
}

// FlatGround returns a HitFunc reporting a flat floor at height y for
// downward rays that reach it.
func FlatGround(y float64) func(r Ray) (motion.RaycastHit, bool) {
	return func(r Ray) (motion.RaycastHit, bool) {
		if r.Dir.Y() >= 0 {
			return motion.RaycastHit{}, false
		}
		dist := r.Origin.Y() - y
		if dist < 0 || dist > r.MaxDist {
			return motion.RaycastHit{}, false
		}
		return motion.RaycastHit{
			Point:    mgl64.Vec3{r.Origin.X(), y, r.Origin.Z()},
			Normal:   motion.Up,
			Distance: dist,
			Surface:  1,
		}, true
	}
}

// Move is one recorded Move call.
type Move struct {
	Displacement mgl64.Vec3
	DT           float64
}

// Mover is a kinematic body without geometry. Flags and ResolvedVelocity
// override what Move reports when set.
type Mover struct {
	Pos              mgl64.Vec3
	IsGrounded       bool
	Collision        bool
	Limit            float64
	Height, CenterY  float64
	Flags            motion.CollisionFlags
	ResolvedVelocity *mgl64.Vec3
	Moves            []Move
	SetPositionCalls int
	// CollisionDuringSetPosition records CollisionEnabled at each SetPosition.
	CollisionDuringSetPosition []bool
}

// NewMover returns a grounded mover at the origin with collision enabled.
func NewMover() *Mover {
	return &Mover{IsGrounded: true, Collision: true, Limit: 45, Height: 2, CenterY: 1}
}

// Move implements motion.Mover.
func (m *Mover) Move(d mgl64.Vec3, dt float64) (motion.CollisionFlags, mgl64.Vec3) {
	m.Moves = append(m.Moves, Move{Displacement: d, DT: dt})
	m.Pos = m.Pos.Add(d)
	vel := mgl64.Vec3{}
	if dt > 0 {
		vel = d.Mul(1 / dt)
	}
	if m.ResolvedVelocity != nil {
		vel = *m.ResolvedVelocity
	}
	return m.Flags, vel
}

// Position implements motion.Mover.
func (m *Mover) Position() mgl64.Vec3 { return m.Pos }

// SetPosition implements motion.Mover.
func (m *Mover) SetPosition(p mgl64.Vec3) {
	m.SetPositionCalls++
	m.CollisionDuringSetPosition = append(m.CollisionDuringSetPosition, m.Collision)
	m.Pos = p
}

// Grounded implements motion.Mover.
func (m *Mover) Grounded() bool { return m.IsGrounded }

// CollisionEnabled implements motion.Mover.
func (m *Mover) CollisionEnabled() bool { return m.Collision }

// SetCollisionEnabled implements motion.Mover.
func (m *Mover) SetCollisionEnabled(enabled bool) { m.Collision = enabled }

// SlopeLimit implements motion.Mover.
func (m *Mover) SlopeLimit() float64 { return m.Limit }

// SetShape implements motion.Mover.
func (m *Mover) SetShape(height, centerY float64) {
	m.Height = height
	m.CenterY = centerY
}

// Camera records pitch and eye offset.
type Camera struct {
	Pitch  float64
	Offset float64
}

// SetPitch implements motion.CameraRig.
func (c *Camera) SetPitch(deg float64) { c.Pitch = deg }

// OffsetY implements motion.CameraRig.
func (c *Camera) OffsetY() float64 { return c.Offset }

// SetOffsetY implements motion.CameraRig.
func (c *Camera) SetOffsetY(y float64) { c.Offset = y }

// Input is a settable input source.
type Input struct {
	State motion.Input
}

// Sample implements motion.InputSource.
func (i *Input) Sample() motion.Input { return i.State }

// Host is a motion.Host backed by the fakes in this package.
type Host struct {
	Body     *Mover
	Rays     *Probe
	Camera   *Camera
	Gravity  float64
	Rotation motion.Rotation
}

// NewHost returns a host with a grounded mover, an empty probe, a camera
// and gravity multiplier 2.
func NewHost() *Host {
	return &Host{Body: NewMover(), Rays: &Probe{}, Camera: &Camera{}, Gravity: 2}
}

// Mover implements motion.Host.
func (h *Host) Mover() motion.Mover { return h.Body }

// Probe implements motion.Host.
func (h *Host) Probe() motion.RayProbe { return h.Rays }

// CameraRig implements motion.Host.
func (h *Host) CameraRig() motion.CameraRig {
	if h.Camera == nil {
		return nil
	}
	return h.Camera
}

// AddRotation implements motion.Host.
func (h *Host) AddRotation(delta motion.Rotation) {
	h.Rotation.Pitch += delta.Pitch
	h.Rotation.Yaw += delta.Yaw
}

// GravityMultiplier implements motion.Host.
func (h *Host) GravityMultiplier() float64 { return h.Gravity }

// Recorder is a modifier that records the order it ran in.
type Recorder struct {
	Name      string
	Prio      int
	Inactive  bool
	Log       *[]string
	OnProcess func(ctx *motion.Context)
	Inits     int
	Removes   int
}

// Kind implements motion.Modifier.
func (r *Recorder) Kind() motion.Kind { return motion.Kind("recorder") }

// Priority implements motion.Modifier.
func (r *Recorder) Priority() int { return r.Prio }

// Active implements motion.Modifier.
func (r *Recorder) Active() bool { return !r.Inactive }

// Process implements motion.Modifier.
func (r *Recorder) Process(ctx *motion.Context) {
	if r.Log != nil {
		*r.Log = append(*r.Log, r.Name)
	}
	if r.OnProcess != nil {
		r.OnProcess(ctx)
	}
}

// Init implements motion.Modifier.
func (r *Recorder) Init(motion.Host) {
	r.Inits++
}

// Remove implements motion.Modifier.
func (r *Recorder) Remove() {
	r.Removes++
	if r.Log != nil {
		*r.Log = append(*r.Log, "remove:"+r.Name)
	}
}
