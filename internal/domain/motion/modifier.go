package motion

// Kind is the stable identifier of a modifier implementation, used for
// registry lookups in place of type inspection.
type Kind string

// Priority ranges. Lower values run first.
const (
	PriorityPreProcess  = -100 // -100..-1: input shaping, platform inheritance
	PriorityCore        = 0    // 0..99: base movement, jumping, crouching
	PriorityModifier    = 100  // 100..199: sliding, dashing
	PriorityPostProcess = 200  // 200+: clamping, validation
)

// Modifier is a pluggable movement behavior. Implementations keep their own
// cross-step state privately and talk to other modifiers only through the
// Context.
type Modifier interface {
	Kind() Kind
	Priority() int
	// Active reports whether Process should run this step. Inactive
	// modifiers stay registered.
	Active() bool
	Process(ctx *Context)
	// Init is called once when the modifier is registered.
	Init(host Host)
	// Remove is called once when the modifier is unregistered.
	Remove()
}

// Host is what the controller exposes to the modifiers it owns.
type Host interface {
	Mover() Mover
	Probe() RayProbe
	// CameraRig may be nil.
	CameraRig() CameraRig
	AddRotation(delta Rotation)
	GravityMultiplier() float64
}
