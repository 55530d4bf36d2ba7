package modifier

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

// DefaultScriptPriority places scripts after the built-in modifiers.
const DefaultScriptPriority = motion.PriorityModifier + 50

// Script runs a tengo program every step. The program sees the step as a
// global map named ctx and may assign velocity, speed_multiplier and the
// prevent_gravity, prevent_movement and consumed_jump flags.
type Script struct {
	base
	name     string
	priority int
	compiled *tengo.Compiled
	failing  bool
}

// NewScript compiles src. Compile errors are returned; runtime errors are
// logged and skip the step.
func NewScript(name string, src []byte, priority int) (*Script, error) {
	script := tengo.NewScript(src)
	if err := script.Add("ctx", map[string]any{}); err != nil {
		return nil, fmt.Errorf("failed to prepare script %s: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile script %s: %w", name, err)
	}
	return &Script{name: name, priority: priority, compiled: compiled}, nil
}

// Kind implements motion.Modifier.
func (s *Script) Kind() motion.Kind { return KindScript }

// Priority implements motion.Modifier.
func (s *Script) Priority() int { return s.priority }

// Name returns the script's source name.
func (s *Script) Name() string { return s.name }

// Process implements motion.Modifier.
func (s *Script) Process(ctx *motion.Context) {
	state := s.exportContext(ctx)
	if err := s.compiled.Set("ctx", state); err != nil {
		s.fail(err)
		return
	}
	if err := s.compiled.Run(); err != nil {
		s.fail(err)
		return
	}
	if s.failing {
		log.Printf("[Script] %s recovered", s.name)
		s.failing = false
	}
	importContext(state, ctx)
}

// fail logs the first error of a failing streak.
func (s *Script) fail(err error) {
	if !s.failing {
		log.Printf("[Script] %s: %v", s.name, err)
	}
	s.failing = true
}

func (s *Script) exportContext(ctx *motion.Context) *tengo.Map {
	return &tengo.Map{Value: map[string]tengo.Object{
		"velocity":           vecToArray(ctx.Velocity[:]...),
		"position":           vecToArray(ctx.Position[:]...),
		"move":               vecToArray(ctx.Input.Move[:]...),
		"grounded":           boolObject(ctx.IsGrounded),
		"on_slope":           boolObject(ctx.Ground.OnSlope),
		"jump":               boolObject(ctx.Input.Jump),
		"run":                boolObject(ctx.Input.Run),
		"crouch":             boolObject(ctx.Input.Crouch),
		"crouching":          boolObject(ctx.IsCrouching),
		"running":            boolObject(ctx.IsRunning),
		"sliding":            boolObject(ctx.IsSliding),
		"dt":                 &tengo.Float{Value: ctx.DeltaTime},
		"time":               &tengo.Float{Value: ctx.Time},
		"gravity_multiplier": &tengo.Float{Value: s.gravityMultiplier()},
		"speed_multiplier":   &tengo.Float{Value: ctx.SpeedMultiplier},
		"prevent_gravity":    boolObject(ctx.PreventGravity),
		"prevent_movement":   boolObject(ctx.PreventMovement),
		"consumed_jump":      boolObject(ctx.ConsumedJump),
	}}
}

func importContext(state *tengo.Map, ctx *motion.Context) {
	if v, ok := arrayToVec3(state.Value["velocity"]); ok {
		ctx.Velocity = v
	}
	if f, ok := objectToFloat(state.Value["speed_multiplier"]); ok {
		ctx.SpeedMultiplier = f
	}
	ctx.PreventGravity = objectToBool(state.Value["prevent_gravity"], ctx.PreventGravity)
	ctx.PreventMovement = objectToBool(state.Value["prevent_movement"], ctx.PreventMovement)
	ctx.ConsumedJump = objectToBool(state.Value["consumed_jump"], ctx.ConsumedJump)
}

func vecToArray(values ...float64) *tengo.Array {
	out := make([]tengo.Object, 0, len(values))
	for _, v := range values {
		out = append(out, &tengo.Float{Value: v})
	}
	return &tengo.Array{Value: out}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectToFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	}
	return 0, false
}

func objectToBool(obj tengo.Object, fallback bool) bool {
	if v, ok := obj.(*tengo.Bool); ok {
		return !v.IsFalsy()
	}
	return fallback
}

func arrayToVec3(obj tengo.Object) (mgl64.Vec3, bool) {
	arr, ok := obj.(*tengo.Array)
	if !ok || len(arr.Value) != 3 {
		return mgl64.Vec3{}, false
	}
	var out mgl64.Vec3
	for i, item := range arr.Value {
		f, ok := objectToFloat(item)
		if !ok {
			return mgl64.Vec3{}, false
		}
		out[i] = f
	}
	return out, true
}

// Remove implements motion.Modifier.
func (s *Script) Remove() {}
