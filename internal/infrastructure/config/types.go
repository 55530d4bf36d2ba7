package config

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

// ControllerConfig is the root config for controller.json / controller.yaml
type ControllerConfig struct {
	Physics  PhysicsConfig  `json:"physics" yaml:"physics"`
	Look     LookConfig     `json:"look" yaml:"look"`
	Ground   GroundConfig   `json:"ground" yaml:"ground"`
	Platform PlatformConfig `json:"platform" yaml:"platform"`
	Movement MovementConfig `json:"movement" yaml:"movement"`
	Jump     JumpConfig     `json:"jump" yaml:"jump"`
	Run      RunConfig      `json:"run" yaml:"run"`
	Crouch   CrouchConfig   `json:"crouch" yaml:"crouch"`
	Landing  LandingConfig  `json:"landing" yaml:"landing"`
	Sliding  SlidingConfig  `json:"sliding" yaml:"sliding"`
	Features FeatureConfig  `json:"features" yaml:"features"`
	Scripts  []ScriptConfig `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

type PhysicsConfig struct {
	GravityMultiplier    float64 `json:"gravityMultiplier" yaml:"gravityMultiplier"`       // 1 = realistic, 2 = faster fall
	GroundedSnapVelocity float64 `json:"groundedSnapVelocity" yaml:"groundedSnapVelocity"` // downward speed kept while grounded
	FixedStep            float64 `json:"fixedStep" yaml:"fixedStep"`                       // seconds per fixed tick
}

type LookConfig struct {
	Sensitivity float64 `json:"sensitivity" yaml:"sensitivity"`
	ClampAngle  float64 `json:"clampAngle" yaml:"clampAngle"` // max |pitch| in degrees
}

type GroundConfig struct {
	Layers                   motion.LayerMask `json:"layers" yaml:"layers"`
	RayCount                 int              `json:"rayCount" yaml:"rayCount"`
	Radius                   float64          `json:"radius" yaml:"radius"`
	Distance                 float64          `json:"distance" yaml:"distance"`
	SlideProjectionMagnitude float64          `json:"slideProjectionMagnitude" yaml:"slideProjectionMagnitude"`
	// OriginOffset places the probe origin relative to the mover position.
	// Nil means the mover position itself.
	OriginOffset *mgl64.Vec3 `json:"originOffset,omitempty" yaml:"originOffset,omitempty"`
}

type PlatformConfig struct {
	VelocityInheritance float64 `json:"velocityInheritance" yaml:"velocityInheritance"` // 0 = none, 1 = full
	RotationInheritance float64 `json:"rotationInheritance" yaml:"rotationInheritance"` // 0 = none, 1 = full
	MaxInheritedSpeed   float64 `json:"maxInheritedSpeed" yaml:"maxInheritedSpeed"`
}

type MovementConfig struct {
	WalkSpeed    float64 `json:"walkSpeed" yaml:"walkSpeed"`
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	Deceleration float64 `json:"deceleration" yaml:"deceleration"`
	AirControl   float64 `json:"airControl" yaml:"airControl"` // fraction of acceleration while airborne
}

type JumpConfig struct {
	Height        float64 `json:"height" yaml:"height"`
	SpeedBoost    float64 `json:"speedBoost" yaml:"speedBoost"` // horizontal multiplier on takeoff
	Cooldown      float64 `json:"cooldown" yaml:"cooldown"`
	CoyoteTime    float64 `json:"coyoteTime" yaml:"coyoteTime"`
	MaxAirJumps   int     `json:"maxAirJumps" yaml:"maxAirJumps"`
	MidAirDamping float64 `json:"midAirDamping" yaml:"midAirDamping"` // decay rate for downward speed before an impulse
}

type RunConfig struct {
	SpeedMultiplier float64 `json:"speedMultiplier" yaml:"speedMultiplier"`
	RequireForward  bool    `json:"requireForward" yaml:"requireForward"`
}

type CrouchConfig struct {
	StandingHeight   float64 `json:"standingHeight" yaml:"standingHeight"`
	CrouchingHeight  float64 `json:"crouchingHeight" yaml:"crouchingHeight"`
	StandingCenterY  float64 `json:"standingCenterY" yaml:"standingCenterY"`
	CrouchingCenterY float64 `json:"crouchingCenterY" yaml:"crouchingCenterY"`
	CameraStandingY  float64 `json:"cameraStandingY" yaml:"cameraStandingY"`
	CameraCrouchingY float64 `json:"cameraCrouchingY" yaml:"cameraCrouchingY"`
	TransitionSpeed  float64 `json:"transitionSpeed" yaml:"transitionSpeed"` // camera units per second
	SpeedMultiplier  float64 `json:"speedMultiplier" yaml:"speedMultiplier"`
}

type LandingConfig struct {
	MinImpactSpeed float64 `json:"minImpactSpeed" yaml:"minImpactSpeed"`
	SpeedPenalty   float64 `json:"speedPenalty" yaml:"speedPenalty"` // horizontal multiplier on a hard landing
}

type SlidingConfig struct {
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	MaxSpeed     float64 `json:"maxSpeed" yaml:"maxSpeed"`
}

type FeatureConfig struct {
	Crouch  bool `json:"crouch" yaml:"crouch"`
	Run     bool `json:"run" yaml:"run"`
	Sliding bool `json:"sliding" yaml:"sliding"`
	Landing bool `json:"landing" yaml:"landing"`
}

// ScriptConfig names a tengo modifier script relative to the config directory.
type ScriptConfig struct {
	Path     string `json:"path" yaml:"path"`
	Priority int    `json:"priority" yaml:"priority"`
}
