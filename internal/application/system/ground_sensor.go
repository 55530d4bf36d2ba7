package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// perpendicularAngle is the slope angle reported when nothing was hit.
const perpendicularAngle = 90.0

// GroundSensor probes the ground under the controller with a center ray
// and a ring of radial rays, all cast straight down.
type GroundSensor struct {
	config   *config.GroundConfig
	probe    motion.RayProbe
	surfaces motion.SurfaceVelocity
}

// NewGroundSensor creates a ground sensor. surfaces may be nil, in which
// case GroundVelocity is always zero.
func NewGroundSensor(cfg *config.GroundConfig, probe motion.RayProbe, surfaces motion.SurfaceVelocity) *GroundSensor {
	return &GroundSensor{
		config:   cfg,
		probe:    probe,
		surfaces: surfaces,
	}
}

// Sense casts the rays from origin and classifies the flattest surface hit.
// The center ray is checked first, then radial rays in increasing angle;
// on equal angles the first hit wins.
func (s *GroundSensor) Sense(origin mgl64.Vec3, slopeLimit float64) motion.GroundInfo {
	info := motion.NoGround()

	flattest := perpendicularAngle
	normal := motion.Up
	surface := motion.NoSurface

	cast := func(o mgl64.Vec3) {
		hit, ok := s.probe.Raycast(o, motion.Down, s.config.Distance, s.config.Layers)
		if !ok {
			return
		}
		info.OnGround = true
		angle := motion.AngleDeg(hit.Normal, motion.Up)
		if angle < flattest {
			flattest = angle
			normal = hit.Normal
			surface = hit.Surface
		}
	}

	cast(origin)
	n := s.config.RayCount
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		offset := mgl64.Vec3{math.Cos(angle), 0, math.Sin(angle)}.Mul(s.config.Radius)
		cast(origin.Add(offset))
	}

	info.SlopeAngle = flattest
	info.SlopeNormal = normal
	info.Surface = surface
	info.OnSlope = info.OnGround && flattest >= slopeLimit

	if info.OnSlope {
		bias := mgl64.Vec3{0, s.config.SlideProjectionMagnitude, 0}
		info.SlideDirection = motion.Normalized(motion.ProjectOnPlane(bias, normal))
	}

	if surface != motion.NoSurface && s.surfaces != nil {
		if v, ok := s.surfaces.PointVelocity(surface, origin); ok {
			info.GroundVelocity = v
		}
	}

	return info
}
