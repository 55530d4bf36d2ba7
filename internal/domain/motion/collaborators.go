package motion

import "github.com/go-gl/mathgl/mgl64"

// RayProbe casts rays against world geometry.
type RayProbe interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64, mask LayerMask) (RaycastHit, bool)
}

// Mover is the collision-resolving kinematic body the controller drives.
type Mover interface {
	// Move displaces the body over dt seconds and returns the sides that
	// touched geometry plus the velocity actually achieved.
	Move(displacement mgl64.Vec3, dt float64) (CollisionFlags, mgl64.Vec3)
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Grounded() bool
	CollisionEnabled() bool
	SetCollisionEnabled(enabled bool)
	// SlopeLimit is the steepest walkable surface angle in degrees.
	SlopeLimit() float64
	SetShape(height, centerY float64)
}

// SurfaceVelocity answers velocity queries for moving surfaces.
// Static surfaces report ok == false.
type SurfaceVelocity interface {
	PointVelocity(s SurfaceID, p mgl64.Vec3) (mgl64.Vec3, bool)
	AngularVelocityY(s SurfaceID) float64
}

// CameraRig receives the pitch and the vertical eye offset.
type CameraRig interface {
	SetPitch(deg float64)
	OffsetY() float64
	SetOffsetY(y float64)
}

// InputSource is polled once per variable tick.
type InputSource interface {
	Sample() Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Input

// Sample implements InputSource.
func (f InputFunc) Sample() Input { return f() }
