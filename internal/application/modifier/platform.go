package modifier

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// Platform carries the player along with the surface under them. It fills
// Context.PlatformVelocity for the movement modifiers and inherits the
// surface's yaw rate.
type Platform struct {
	base
	config   *config.PlatformConfig
	surfaces motion.SurfaceVelocity
}

// NewPlatform creates a platform modifier. surfaces may be nil, which
// disables rotation inheritance.
func NewPlatform(cfg *config.PlatformConfig, surfaces motion.SurfaceVelocity) *Platform {
	return &Platform{config: cfg, surfaces: surfaces}
}

// Kind implements motion.Modifier.
func (p *Platform) Kind() motion.Kind { return KindPlatform }

// Priority implements motion.Modifier.
func (p *Platform) Priority() int { return PriorityPlatform }

// Process implements motion.Modifier.
func (p *Platform) Process(ctx *motion.Context) {
	ctx.PlatformVelocity = mgl64.Vec3{}
	if !ctx.IsGrounded || ctx.Ground.Surface == motion.NoSurface {
		return
	}

	inherited := ctx.Ground.GroundVelocity.Mul(p.config.VelocityInheritance)
	ctx.PlatformVelocity = motion.ClampMagnitude(inherited, p.config.MaxInheritedSpeed)

	if p.surfaces == nil || p.host == nil {
		return
	}
	// degrees per second
	if w := p.surfaces.AngularVelocityY(ctx.Ground.Surface); w != 0 {
		p.host.AddRotation(motion.Rotation{Yaw: w * p.config.RotationInheritance * ctx.DeltaTime})
	}
}

// Remove implements motion.Modifier.
func (p *Platform) Remove() {}
