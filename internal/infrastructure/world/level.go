// Package world is a small box-and-ramp level that plays the ray probe,
// kinematic mover and moving-surface roles for the movement core.
package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// Box is an axis-aligned solid. A box with a velocity or angular velocity
// is a moving platform. Angular velocity only affects what it imparts to
// riders; the shape itself stays axis-aligned.
type Box struct {
	ID               motion.SurfaceID
	Min, Max         mgl64.Vec3
	Layer            uint32
	Velocity         mgl64.Vec3
	AngularVelocityY float64 // degrees per second
	Travel           float64
	traveled         float64
}

// Center returns the middle of the box.
func (b *Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Moving reports whether the box imparts velocity.
func (b *Box) Moving() bool {
	return b.Velocity != (mgl64.Vec3{}) || b.AngularVelocityY != 0
}

// Ramp is an inclined walkable plane rising along +Z.
type Ramp struct {
	ID       motion.SurfaceID
	Min, Max mgl64.Vec3
	Layer    uint32
	normal   mgl64.Vec3
}

func newRamp(id motion.SurfaceID, cfg config.RampConfig) *Ramp {
	dy := cfg.Max.Y() - cfg.Min.Y()
	dz := cfg.Max.Z() - cfg.Min.Z()
	return &Ramp{
		ID:     id,
		Min:    cfg.Min,
		Max:    cfg.Max,
		Layer:  cfg.Layer,
		normal: motion.Normalized(mgl64.Vec3{0, dz, -dy}),
	}
}

// Normal returns the upward surface normal.
func (r *Ramp) Normal() mgl64.Vec3 {
	return r.normal
}

// Contains reports whether x, z lies over the ramp footprint.
func (r *Ramp) Contains(x, z float64) bool {
	return x >= r.Min.X() && x <= r.Max.X() && z >= r.Min.Z() && z <= r.Max.Z()
}

// HeightAt returns the surface height at z.
func (r *Ramp) HeightAt(z float64) float64 {
	dz := r.Max.Z() - r.Min.Z()
	if dz <= 0 {
		return r.Max.Y()
	}
	t := mgl64.Clamp((z-r.Min.Z())/dz, 0, 1)
	return r.Min.Y() + t*(r.Max.Y()-r.Min.Y())
}

// AngleDeg returns the incline from horizontal in degrees.
func (r *Ramp) AngleDeg() float64 {
	return motion.AngleDeg(r.normal, motion.Up)
}

// Level holds the static and moving geometry of one stage.
type Level struct {
	ID       string
	Name     string
	Spawn    mgl64.Vec3
	SpawnYaw float64

	boxes []*Box
	ramps []*Ramp
	byID  map[motion.SurfaceID]*Box
}

// NewLevel builds a level from config. Every solid grid cell becomes a box
// rising from the floor, and the floor itself is one slab under the grid.
func NewLevel(cfg *config.LevelConfig) *Level {
	l := &Level{
		ID:       cfg.ID,
		Name:     cfg.Name,
		Spawn:    cfg.PlayerSpawn.Position,
		SpawnYaw: cfg.PlayerSpawn.Yaw,
		byID:     make(map[motion.SurfaceID]*Box),
	}

	cell := cfg.Grid.CellSize
	if cell <= 0 {
		cell = 1
	}
	floorY := cfg.Grid.FloorY

	rows := cfg.Layers.Collision
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	if !cfg.Grid.NoFloor && width > 0 && len(rows) > 0 {
		thickness := cfg.Grid.FloorOverlap
		if thickness <= 0 {
			thickness = 1
		}
		l.AddBox(config.BoxConfig{
			Min:   mgl64.Vec3{0, floorY - thickness, 0},
			Max:   mgl64.Vec3{float64(width) * cell, floorY, float64(len(rows)) * cell},
			Layer: cfg.Grid.FloorLayer,
		})
	}

	for z, row := range rows {
		for x, char := range row {
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok || !mapping.Solid || mapping.Height <= 0 {
				continue
			}
			l.AddBox(config.BoxConfig{
				Min:   mgl64.Vec3{float64(x) * cell, floorY, float64(z) * cell},
				Max:   mgl64.Vec3{float64(x+1) * cell, floorY + mapping.Height, float64(z+1) * cell},
				Layer: mapping.Layer,
			})
		}
	}

	for _, b := range cfg.Boxes {
		l.AddBox(b)
	}
	for _, r := range cfg.Ramps {
		l.AddRamp(r)
	}
	return l
}

func (l *Level) nextID() motion.SurfaceID {
	return motion.SurfaceID(len(l.boxes) + len(l.ramps) + 1)
}

// AddBox adds a solid and returns it.
func (l *Level) AddBox(cfg config.BoxConfig) *Box {
	if l.byID == nil {
		l.byID = make(map[motion.SurfaceID]*Box)
	}
	b := &Box{
		ID:               l.nextID(),
		Min:              cfg.Min,
		Max:              cfg.Max,
		Layer:            cfg.Layer,
		Velocity:         cfg.Velocity,
		AngularVelocityY: cfg.AngularVelocityY,
		Travel:           cfg.Travel,
	}
	l.boxes = append(l.boxes, b)
	l.byID[b.ID] = b
	return b
}

// AddRamp adds a walkable incline and returns it.
func (l *Level) AddRamp(cfg config.RampConfig) *Ramp {
	r := newRamp(l.nextID(), cfg)
	l.ramps = append(l.ramps, r)
	return r
}

// Boxes returns the level's solids. The slice must not be modified.
func (l *Level) Boxes() []*Box { return l.boxes }

// Ramps returns the level's inclines. The slice must not be modified.
func (l *Level) Ramps() []*Ramp { return l.ramps }

// Step advances moving platforms by dt seconds. Platforms with a travel
// distance reverse once they have covered it.
func (l *Level) Step(dt float64) {
	for _, b := range l.boxes {
		if b.Velocity == (mgl64.Vec3{}) {
			continue
		}
		d := b.Velocity.Mul(dt)
		b.Min = b.Min.Add(d)
		b.Max = b.Max.Add(d)
		if b.Travel <= 0 {
			continue
		}
		b.traveled += d.Len()
		if b.traveled >= b.Travel {
			b.Velocity = b.Velocity.Mul(-1)
			b.traveled = 0
		}
	}
}

// PointVelocity implements motion.SurfaceVelocity.
func (l *Level) PointVelocity(s motion.SurfaceID, p mgl64.Vec3) (mgl64.Vec3, bool) {
	b, ok := l.byID[s]
	if !ok || !b.Moving() {
		return mgl64.Vec3{}, false
	}
	w := mgl64.DegToRad(b.AngularVelocityY)
	r := p.Sub(b.Center())
	spin := mgl64.Vec3{w * r.Z(), 0, -w * r.X()}
	return b.Velocity.Add(spin), true
}

// AngularVelocityY implements motion.SurfaceVelocity.
func (l *Level) AngularVelocityY(s motion.SurfaceID) float64 {
	if b, ok := l.byID[s]; ok {
		return b.AngularVelocityY
	}
	return 0
}

func layerIn(layer uint32, mask motion.LayerMask) bool {
	if layer >= 32 {
		return false
	}
	return mask&(motion.LayerMask(1)<<layer) != 0
}

// Raycast implements motion.RayProbe. Rays starting inside a box ignore it.
func (l *Level) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask motion.LayerMask) (motion.RaycastHit, bool) {
	dir = motion.Normalized(dir)
	if dir == (mgl64.Vec3{}) {
		return motion.RaycastHit{}, false
	}

	best := motion.RaycastHit{Distance: math.Inf(1)}
	found := false

	for _, b := range l.boxes {
		if !layerIn(b.Layer, mask) {
			continue
		}
		t, normal, ok := rayBox(origin, dir, b.Min, b.Max)
		if !ok || t > maxDist || t >= best.Distance {
			continue
		}
		best = motion.RaycastHit{Point: origin.Add(dir.Mul(t)), Normal: normal, Distance: t, Surface: b.ID}
		found = true
	}

	for _, r := range l.ramps {
		if !layerIn(r.Layer, mask) {
			continue
		}
		t, ok := rayRamp(origin, dir, r)
		if !ok || t > maxDist || t >= best.Distance {
			continue
		}
		best = motion.RaycastHit{Point: origin.Add(dir.Mul(t)), Normal: r.normal, Distance: t, Surface: r.ID}
		found = true
	}

	return best, found
}

// rayBox is the slab test. It returns the entry distance and face normal.
func rayBox(o, d, min, max mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	var normal mgl64.Vec3

	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) < 1e-12 {
			if o[axis] < min[axis] || o[axis] > max[axis] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1 / d[axis]
		t1 := (min[axis] - o[axis]) * inv
		t2 := (max[axis] - o[axis]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tNear {
			tNear = t1
			normal = mgl64.Vec3{}
			normal[axis] = sign
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar || tFar < 0 {
			return 0, mgl64.Vec3{}, false
		}
	}

	if tNear < 0 {
		// origin inside
		return 0, mgl64.Vec3{}, false
	}
	return tNear, normal, true
}

func rayRamp(o, d mgl64.Vec3, r *Ramp) (float64, bool) {
	denom := d.Dot(r.normal)
	if denom >= -1e-12 {
		return 0, false
	}
	t := r.Min.Sub(o).Dot(r.normal) / denom
	if t < 0 {
		return 0, false
	}
	p := o.Add(d.Mul(t))
	if !r.Contains(p.X(), p.Z()) {
		return 0, false
	}
	return t, true
}
