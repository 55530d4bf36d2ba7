package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

// Default returns the stock controller tuning.
func Default() *ControllerConfig {
	return &ControllerConfig{
		Physics: PhysicsConfig{
			GravityMultiplier:    2,
			GroundedSnapVelocity: 0.01,
			FixedStep:            0.02,
		},
		Look: LookConfig{
			Sensitivity: 2,
			ClampAngle:  89.999,
		},
		Ground: GroundConfig{
			Layers:                   motion.AllLayers,
			RayCount:                 6,
			Radius:                   0.22,
			Distance:                 1.1,
			SlideProjectionMagnitude: 5,
		},
		Platform: PlatformConfig{
			VelocityInheritance: 1,
			RotationInheritance: 1,
			MaxInheritedSpeed:   50,
		},
		Movement: MovementConfig{
			WalkSpeed:    5,
			Acceleration: 60,
			Deceleration: 80,
			AirControl:   0.3,
		},
		Jump: JumpConfig{
			Height:        3,
			SpeedBoost:    1.05,
			Cooldown:      0.4,
			CoyoteTime:    0.1,
			MaxAirJumps:   0,
			MidAirDamping: 5,
		},
		Run: RunConfig{
			SpeedMultiplier: 1.6,
			RequireForward:  true,
		},
		Crouch: CrouchConfig{
			StandingHeight:   2,
			CrouchingHeight:  1,
			StandingCenterY:  1,
			CrouchingCenterY: 0.5,
			CameraStandingY:  1.7,
			CameraCrouchingY: 0.8,
			TransitionSpeed:  6,
			SpeedMultiplier:  0.5,
		},
		Landing: LandingConfig{
			MinImpactSpeed: 8,
			SpeedPenalty:   0.6,
		},
		Sliding: SlidingConfig{
			Acceleration: 12,
			MaxSpeed:     10,
		},
		Features: FeatureConfig{
			Crouch:  true,
			Run:     true,
			Sliding: true,
			Landing: true,
		},
	}
}

// Validate reports every out-of-range field.
func (c *ControllerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.GravityMultiplier >= 0, "physics.gravityMultiplier must be >= 0, got %v", c.Physics.GravityMultiplier)
	check(c.Physics.GroundedSnapVelocity >= 0, "physics.groundedSnapVelocity must be >= 0, got %v", c.Physics.GroundedSnapVelocity)
	check(c.Physics.FixedStep > 0, "physics.fixedStep must be > 0, got %v", c.Physics.FixedStep)

	check(c.Look.Sensitivity >= 0, "look.sensitivity must be >= 0, got %v", c.Look.Sensitivity)
	check(c.Look.ClampAngle >= 0 && c.Look.ClampAngle <= 90, "look.clampAngle must be in [0, 90], got %v", c.Look.ClampAngle)

	check(c.Ground.RayCount >= 1 && c.Ground.RayCount <= 12, "ground.rayCount must be in [1, 12], got %d", c.Ground.RayCount)
	check(c.Ground.Radius >= 0, "ground.radius must be >= 0, got %v", c.Ground.Radius)
	check(c.Ground.Distance >= 0, "ground.distance must be >= 0, got %v", c.Ground.Distance)
	check(c.Ground.SlideProjectionMagnitude >= 0, "ground.slideProjectionMagnitude must be >= 0, got %v", c.Ground.SlideProjectionMagnitude)

	check(inUnit(c.Platform.VelocityInheritance), "platform.velocityInheritance must be in [0, 1], got %v", c.Platform.VelocityInheritance)
	check(inUnit(c.Platform.RotationInheritance), "platform.rotationInheritance must be in [0, 1], got %v", c.Platform.RotationInheritance)
	check(c.Platform.MaxInheritedSpeed >= 0, "platform.maxInheritedSpeed must be >= 0, got %v", c.Platform.MaxInheritedSpeed)

	check(c.Movement.WalkSpeed >= 0, "movement.walkSpeed must be >= 0, got %v", c.Movement.WalkSpeed)
	check(c.Movement.Acceleration >= 0, "movement.acceleration must be >= 0, got %v", c.Movement.Acceleration)
	check(c.Movement.Deceleration >= 0, "movement.deceleration must be >= 0, got %v", c.Movement.Deceleration)
	check(inUnit(c.Movement.AirControl), "movement.airControl must be in [0, 1], got %v", c.Movement.AirControl)

	check(c.Jump.Height >= 0, "jump.height must be >= 0, got %v", c.Jump.Height)
	check(c.Jump.SpeedBoost >= 1, "jump.speedBoost must be >= 1, got %v", c.Jump.SpeedBoost)
	check(c.Jump.Cooldown >= 0, "jump.cooldown must be >= 0, got %v", c.Jump.Cooldown)
	check(c.Jump.CoyoteTime >= 0, "jump.coyoteTime must be >= 0, got %v", c.Jump.CoyoteTime)
	check(c.Jump.MaxAirJumps >= 0, "jump.maxAirJumps must be >= 0, got %d", c.Jump.MaxAirJumps)
	check(c.Jump.MidAirDamping >= 0, "jump.midAirDamping must be >= 0, got %v", c.Jump.MidAirDamping)

	check(c.Run.SpeedMultiplier >= 0, "run.speedMultiplier must be >= 0, got %v", c.Run.SpeedMultiplier)

	check(c.Crouch.CrouchingHeight > 0, "crouch.crouchingHeight must be > 0, got %v", c.Crouch.CrouchingHeight)
	check(c.Crouch.StandingHeight >= c.Crouch.CrouchingHeight, "crouch.standingHeight must be >= crouchingHeight, got %v < %v", c.Crouch.StandingHeight, c.Crouch.CrouchingHeight)
	check(c.Crouch.TransitionSpeed >= 0, "crouch.transitionSpeed must be >= 0, got %v", c.Crouch.TransitionSpeed)
	check(c.Crouch.SpeedMultiplier >= 0, "crouch.speedMultiplier must be >= 0, got %v", c.Crouch.SpeedMultiplier)

	check(c.Landing.MinImpactSpeed >= 0, "landing.minImpactSpeed must be >= 0, got %v", c.Landing.MinImpactSpeed)
	check(inUnit(c.Landing.SpeedPenalty), "landing.speedPenalty must be in [0, 1], got %v", c.Landing.SpeedPenalty)

	check(c.Sliding.Acceleration >= 0, "sliding.acceleration must be >= 0, got %v", c.Sliding.Acceleration)
	check(c.Sliding.MaxSpeed >= 0, "sliding.maxSpeed must be >= 0, got %v", c.Sliding.MaxSpeed)

	for i, s := range c.Scripts {
		check(s.Path != "", "scripts[%d].path must be set", i)
	}

	return errors.Join(errs...)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
