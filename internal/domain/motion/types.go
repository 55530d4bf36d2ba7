// Package motion holds the shared vocabulary of the first-person movement
// core: the per-step Context threaded through modifiers, ground probe
// results, collaborator contracts and the modifier registry.
package motion

import "github.com/go-gl/mathgl/mgl64"

// Gravity is the world gravity acceleration along Y before any multiplier.
const Gravity = -9.81

// LayerMask filters which surfaces a ray probe may hit.
type LayerMask uint32

// AllLayers matches every surface layer.
const AllLayers LayerMask = ^LayerMask(0)

// SurfaceID identifies a struck surface for lookups. Zero means no surface.
type SurfaceID uint32

// NoSurface is the zero surface handle.
const NoSurface SurfaceID = 0

// RaycastHit is the result of a successful ray probe.
type RaycastHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Surface  SurfaceID
}

// CollisionFlags reports which sides of the mover touched geometry during a move.
type CollisionFlags uint8

const (
	CollisionNone  CollisionFlags = 0
	CollisionSides CollisionFlags = 1 << iota
	CollisionAbove
	CollisionBelow
)

// Has reports whether all bits of f are set.
func (c CollisionFlags) Has(f CollisionFlags) bool {
	return c&f == f && f != 0
}

// Rotation is the look rotation in degrees.
type Rotation struct {
	Pitch float64 // positive looks up
	Yaw   float64
}

// Input is one polled sample of the player's controls.
type Input struct {
	Move   mgl64.Vec2 // x = strafe, y = forward
	Look   mgl64.Vec2 // x = yaw delta, y = pitch delta
	Jump   bool
	Run    bool
	Crouch bool
}

// GroundInfo is the result of the multi-ray ground probe for one step.
type GroundInfo struct {
	OnGround       bool
	OnSlope        bool
	SlopeAngle     float64 // degrees from up
	SlopeNormal    mgl64.Vec3
	SlideDirection mgl64.Vec3 // valid only when OnSlope
	GroundVelocity mgl64.Vec3
	Surface        SurfaceID
}

// NoGround is the probe result when nothing was hit.
func NoGround() GroundInfo {
	return GroundInfo{SlopeAngle: 90, SlopeNormal: Up}
}

// Impact carries the velocity before and after a collision response.
type Impact struct {
	Before mgl64.Vec3
	After  mgl64.Vec3
}

// Context is built at the start of each integration step, passed by
// pointer through every active modifier in priority order, then discarded.
// Modifiers communicate only through its fields. Velocity is authoritative
// once the last modifier has run.
type Context struct {
	// Input
	Input              Input
	MoveInput          mgl64.Vec3 // (strafe, 0, forward)
	WorldMoveDirection mgl64.Vec3
	MaxSpeed           float64
	SpeedMultiplier    float64

	// Current state
	Velocity             mgl64.Vec3
	Position             mgl64.Vec3
	IsGrounded           bool
	WasGroundedLastFrame bool
	Ground               GroundInfo
	DeltaTime            float64
	Time                 float64
	LastGroundedTime     float64
	PreviousYVelocity    float64
	PlatformVelocity     mgl64.Vec3

	// State flags
	IsCrouching bool
	IsRunning   bool
	IsSliding   bool

	// Control flags
	PreventMovement bool
	PreventGravity  bool
	ConsumedJump    bool
}

// JustLanded reports the grounded false to true edge for this step.
func (c *Context) JustLanded() bool {
	return c.IsGrounded && !c.WasGroundedLastFrame
}
