package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

const (
	groundSkin = 0.01 // feet this close to a top face count as standing
	overlapEps = 1e-6
	rampSnap   = 0.3 // downhill distance a grounded body sticks to a ramp
	maxPushOut = 1.0
)

// BodyConfig sizes a Body. Position is the bottom-center reference point;
// the collider spans CenterY ± Height/2 above it.
type BodyConfig struct {
	Radius     float64
	Height     float64
	CenterY    float64
	SlopeLimit float64
}

// DefaultBodyConfig returns a standing human-sized collider.
func DefaultBodyConfig() BodyConfig {
	return BodyConfig{Radius: 0.4, Height: 2, CenterY: 1, SlopeLimit: 45}
}

// Body is an upright box collider moved against a Level. It implements
// motion.Mover.
type Body struct {
	level      *Level
	pos        mgl64.Vec3
	radius     float64
	height     float64
	centerY    float64
	slopeLimit float64
	grounded   bool
	collision  bool
}

// NewBody places a body in level at pos.
func NewBody(level *Level, pos mgl64.Vec3, cfg BodyConfig) *Body {
	b := &Body{
		level:      level,
		pos:        pos,
		radius:     cfg.Radius,
		height:     cfg.Height,
		centerY:    cfg.CenterY,
		slopeLimit: cfg.SlopeLimit,
		collision:  true,
	}
	b.grounded = b.touchingBelow()
	return b
}

// Move implements motion.Mover. Axes resolve separately, X then Z then Y,
// each in substeps no longer than half the radius.
func (b *Body) Move(d mgl64.Vec3, dt float64) (motion.CollisionFlags, mgl64.Vec3) {
	start := b.pos
	flags := motion.CollisionNone

	if !b.collision {
		b.pos = b.pos.Add(d)
	} else {
		wasGrounded := b.grounded
		flags |= b.resolveOverlap()
		flags |= b.moveAxis(0, d.X())
		flags |= b.moveAxis(2, d.Z())
		flags |= b.moveAxis(1, d.Y())
		flags |= b.settleOnRamps(wasGrounded && d.Y() <= 0)
		flags |= b.resolveOverlap()
	}

	b.grounded = b.collision && (flags.Has(motion.CollisionBelow) || (d.Y() <= 0 && b.touchingBelow()))

	var vel mgl64.Vec3
	if dt > 0 {
		vel = b.pos.Sub(start).Mul(1 / dt)
	}
	return flags, vel
}

// Position implements motion.Mover.
func (b *Body) Position() mgl64.Vec3 { return b.pos }

// SetPosition implements motion.Mover. Grounded is re-evaluated at the new
// spot without moving.
func (b *Body) SetPosition(p mgl64.Vec3) {
	b.pos = p
	b.grounded = b.touchingBelow()
}

// Grounded implements motion.Mover.
func (b *Body) Grounded() bool { return b.grounded }

// CollisionEnabled implements motion.Mover.
func (b *Body) CollisionEnabled() bool { return b.collision }

// SetCollisionEnabled implements motion.Mover.
func (b *Body) SetCollisionEnabled(enabled bool) { b.collision = enabled }

// SlopeLimit implements motion.Mover.
func (b *Body) SlopeLimit() float64 { return b.slopeLimit }

// SetShape implements motion.Mover.
func (b *Body) SetShape(height, centerY float64) {
	b.height = height
	b.centerY = centerY
}

// Radius returns the horizontal half extent.
func (b *Body) Radius() float64 { return b.radius }

// Height returns the current collider height.
func (b *Body) Height() float64 { return b.height }

// Bounds returns the collider box at the current position.
func (b *Body) Bounds() (min, max mgl64.Vec3) {
	return b.boundsAt(b.pos)
}

func (b *Body) boundsAt(p mgl64.Vec3) (min, max mgl64.Vec3) {
	bottom := p.Y() + b.centerY - b.height/2
	min = mgl64.Vec3{p.X() - b.radius, bottom, p.Z() - b.radius}
	max = mgl64.Vec3{p.X() + b.radius, bottom + b.height, p.Z() + b.radius}
	return min, max
}

func (b *Body) feetY() float64 {
	return b.pos.Y() + b.centerY - b.height/2
}

func overlaps(aMin, aMax, bMin, bMax mgl64.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if aMin[axis] >= bMax[axis]-overlapEps || aMax[axis] <= bMin[axis]+overlapEps {
			return false
		}
	}
	return true
}

func (b *Body) firstOverlap(p mgl64.Vec3) *Box {
	min, max := b.boundsAt(p)
	for _, box := range b.level.boxes {
		if overlaps(min, max, box.Min, box.Max) {
			return box
		}
	}
	return nil
}

func axisFlag(axis int, dir float64) motion.CollisionFlags {
	switch {
	case axis != 1:
		return motion.CollisionSides
	case dir > 0:
		return motion.CollisionAbove
	default:
		return motion.CollisionBelow
	}
}

// moveAxis moves along one axis and stops flush against the first box hit.
func (b *Body) moveAxis(axis int, amount float64) motion.CollisionFlags {
	if amount == 0 {
		return motion.CollisionNone
	}

	maxStep := b.radius * 0.5
	if axis == 1 {
		maxStep = math.Min(maxStep, b.height*0.25)
	}
	if maxStep <= 0 {
		maxStep = math.Abs(amount)
	}
	steps := int(math.Ceil(math.Abs(amount) / maxStep))
	step := amount / float64(steps)

	for i := 0; i < steps; i++ {
		b.pos[axis] += step
		hit := false
		for guard := 0; guard < 8; guard++ {
			box := b.firstOverlap(b.pos)
			if box == nil {
				break
			}
			hit = true
			min, max := b.boundsAt(b.pos)
			if step > 0 {
				b.pos[axis] -= max[axis] - box.Min[axis]
			} else {
				b.pos[axis] += box.Max[axis] - min[axis]
			}
		}
		if hit {
			return axisFlag(axis, step)
		}
	}
	return motion.CollisionNone
}

// resolveOverlap pushes the body out of any box it already overlaps, for
// example a platform that moved into it, along the shortest axis.
func (b *Body) resolveOverlap() motion.CollisionFlags {
	type pushOption struct {
		axis int
		dist float64
	}

	flags := motion.CollisionNone
	for guard := 0; guard < 4; guard++ {
		box := b.firstOverlap(b.pos)
		if box == nil {
			return flags
		}

		min, max := b.boundsAt(b.pos)
		options := []pushOption{
			{0, box.Max.X() - min.X()}, {0, box.Min.X() - max.X()},
			{1, box.Max.Y() - min.Y()}, {1, box.Min.Y() - max.Y()},
			{2, box.Max.Z() - min.Z()}, {2, box.Min.Z() - max.Z()},
		}
		best := options[0]
		for _, opt := range options[1:] {
			if math.Abs(opt.dist) < math.Abs(best.dist) {
				best = opt
			}
		}

		if math.Abs(best.dist) > maxPushOut {
			// stuck deep inside geometry
			b.pos = b.level.Spawn
			return flags
		}

		b.pos[best.axis] += best.dist
		flags |= axisFlag(best.axis, -best.dist)
	}
	return flags
}

// settleOnRamps lifts the body onto a ramp it sank into. A body that was
// grounded also sticks to a ramp falling away beneath it.
func (b *Body) settleOnRamps(snap bool) motion.CollisionFlags {
	feet := b.feetY()
	for _, r := range b.level.ramps {
		if !r.Contains(b.pos.X(), b.pos.Z()) {
			continue
		}
		gap := feet - r.HeightAt(b.pos.Z())
		sunk := gap < 0 && gap > -b.height/2
		if sunk || (snap && gap >= 0 && gap <= rampSnap) {
			b.pos[1] -= gap
			return motion.CollisionBelow
		}
	}
	return motion.CollisionNone
}

func (b *Body) touchingBelow() bool {
	if b.firstOverlap(b.pos.Sub(mgl64.Vec3{0, groundSkin, 0})) != nil {
		return true
	}
	feet := b.feetY()
	for _, r := range b.level.ramps {
		if r.Contains(b.pos.X(), b.pos.Z()) && math.Abs(feet-r.HeightAt(b.pos.Z())) <= groundSkin {
			return true
		}
	}
	return false
}
