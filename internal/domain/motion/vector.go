package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up and Down are the world vertical axes. Y is up.
var (
	Up   = mgl64.Vec3{0, 1, 0}
	Down = mgl64.Vec3{0, -1, 0}
)

// Normalized returns v scaled to unit length, or the zero vector if v has no length.
func Normalized(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Horizontal drops the vertical component.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// AngleDeg returns the unsigned angle between a and b in degrees.
func AngleDeg(a, b mgl64.Vec3) float64 {
	denom := a.Len() * b.Len()
	if denom < 1e-12 {
		return 0
	}
	cos := mgl64.Clamp(a.Dot(b)/denom, -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}

// ProjectOnPlane removes from v its component along the plane normal n.
func ProjectOnPlane(v, n mgl64.Vec3) mgl64.Vec3 {
	nn := n.Dot(n)
	if nn < 1e-12 {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n) / nn))
}

// ClampMagnitude shortens v to at most max length.
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	l := v.Len()
	if l <= max || l < 1e-12 {
		return v
	}
	return v.Mul(max / l)
}

// MoveTowards steps current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// MoveTowardsVec steps current toward target by at most maxDelta in length.
func MoveTowardsVec(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	diff := target.Sub(current)
	dist := diff.Len()
	if dist <= maxDelta || dist < 1e-12 {
		return target
	}
	return current.Add(diff.Mul(maxDelta / dist))
}

// DampingMultiplier returns the frame-rate independent decay factor for a
// damping rate over dt seconds.
func DampingMultiplier(rate, dt float64) float64 {
	return math.Exp(-rate * dt)
}

// YawBasis returns the world forward and right vectors for a yaw in degrees.
// Yaw 0 faces +Z with +X to the right.
func YawBasis(yawDeg float64) (forward, right mgl64.Vec3) {
	rad := mgl64.DegToRad(yawDeg)
	sin, cos := math.Sincos(rad)
	return mgl64.Vec3{sin, 0, cos}, mgl64.Vec3{cos, 0, -sin}
}
