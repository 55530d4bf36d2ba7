// Package modifier holds the pluggable movement behaviors the controller
// runs each integration step.
package modifier

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

// Modifier kinds.
const (
	KindPlatform     motion.Kind = "platform"
	KindCrouch       motion.Kind = "crouch"
	KindRun          motion.Kind = "run"
	KindBaseMovement motion.Kind = "base_movement"
	KindJump         motion.Kind = "jump"
	KindLanding      motion.Kind = "landing"
	KindSliding      motion.Kind = "sliding"
	KindScript       motion.Kind = "script"
)

// Default priorities.
const (
	PriorityPlatform     = motion.PriorityPreProcess + 50
	PriorityCrouch       = motion.PriorityCore + 5
	PriorityRun          = motion.PriorityCore + 10
	PriorityBaseMovement = motion.PriorityCore + 20
	PriorityJump         = motion.PriorityCore + 30
	PriorityLanding      = motion.PriorityCore + 40
	PrioritySliding      = motion.PriorityModifier
)

// base carries the state every modifier shares.
type base struct {
	host     motion.Host
	disabled bool
}

// Active implements motion.Modifier.
func (b *base) Active() bool { return !b.disabled }

// SetActive enables or disables the modifier without unregistering it.
func (b *base) SetActive(active bool) { b.disabled = !active }

// Init implements motion.Modifier.
func (b *base) Init(host motion.Host) { b.host = host }

func (b *base) gravityMultiplier() float64 {
	if b.host == nil {
		return 1
	}
	return b.host.GravityMultiplier()
}

// scaleHorizontal multiplies the X and Z components of v by f.
func scaleHorizontal(v mgl64.Vec3, f float64) mgl64.Vec3 {
	return mgl64.Vec3{v.X() * f, v.Y(), v.Z() * f}
}
