// Package session runs one controller in one level without any rendering.
// The playing scene drives it each frame and the headless demo drives it
// from a replay.
package session

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/application/modifier"
	"github.com/younwookim/fpmotion/internal/application/replay"
	"github.com/younwookim/fpmotion/internal/application/system"
	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
	"github.com/younwookim/fpmotion/internal/infrastructure/world"
)

// killDepth is how far below the spawn the player falls before respawning.
const killDepth = 30.0

var (
	ErrNoController = errors.New("controller config is required")
	ErrNoLevel      = errors.New("level config is required")
)

// Options configure a Session.
type Options struct {
	Controller *config.ControllerConfig
	Level      *config.LevelConfig
	// Input is polled once per Step. Nil means no input.
	Input motion.InputSource
	// Scripts reads the configured modifier scripts. Nil skips them.
	Scripts modifier.ScriptSource
	// Record keeps every sampled input for saving as a replay.
	Record bool
}

// Session owns the level, the body and the controller stepping them.
type Session struct {
	config     *config.ControllerConfig
	level      *world.Level
	body       *world.Body
	camera     *Camera
	controller *system.Controller
	modifiers  modifier.Set
	input      motion.InputSource
	recorder   *replay.Recorder

	latched   motion.Input
	frame     int
	fixedTime float64
	lastEvent string
}

// New builds a session and spawns the player.
func New(opts Options) (*Session, error) {
	if opts.Controller == nil {
		return nil, ErrNoController
	}
	if opts.Level == nil {
		return nil, ErrNoLevel
	}

	cfg := opts.Controller
	level := world.NewLevel(opts.Level)

	bodyCfg := world.DefaultBodyConfig()
	bodyCfg.Height = cfg.Crouch.StandingHeight
	bodyCfg.CenterY = cfg.Crouch.StandingCenterY

	s := &Session{
		config: cfg,
		level:  level,
		body:   world.NewBody(level, level.Spawn, bodyCfg),
		camera: &Camera{offsetY: cfg.Crouch.CameraStandingY},
		input:  opts.Input,
	}
	s.controller = system.New(cfg, system.Collaborators{
		Mover:    s.body,
		Probe:    level,
		Surfaces: level,
		Camera:   s.camera,
		Input:    motion.InputFunc(func() motion.Input { return s.latched }),
	})
	s.modifiers = modifier.InstallDefaults(s.controller, cfg, level)

	if opts.Scripts != nil && len(cfg.Scripts) > 0 {
		scripts, err := modifier.InstallScripts(s.controller, opts.Scripts, cfg.Scripts)
		if err != nil {
			s.controller.Close()
			return nil, fmt.Errorf("failed to load scripts: %w", err)
		}
		s.modifiers.Scripts = scripts
	}
	if opts.Record {
		s.recorder = replay.NewRecorder(level.ID)
	}

	s.controller.SetRotation(motion.Rotation{Yaw: level.SpawnYaw})
	s.subscribe()
	return s, nil
}

func (s *Session) subscribe() {
	m := s.modifiers
	m.Jump.Jumped.Subscribe(func(d modifier.JumpData) {
		if d.WasAirJump {
			s.lastEvent = fmt.Sprintf("air jump (%d left)", d.AirJumpsRemaining)
		} else {
			s.lastEvent = "jump"
		}
	})
	if m.Landing != nil {
		m.Landing.Landed.Subscribe(func(impact float64) {
			s.lastEvent = fmt.Sprintf("hard landing %.1f m/s", impact)
		})
	}
	if m.Crouch != nil {
		m.Crouch.CrouchBlocked.Subscribe(func(struct{}) {
			s.lastEvent = "no room to stand"
		})
	}
	if m.Sliding != nil {
		m.Sliding.SlidingChanged.Subscribe(func(sliding bool) {
			if sliding {
				s.lastEvent = "sliding"
			}
		})
	}
	s.controller.VelocityImpact.Subscribe(func(i motion.Impact) {
		s.lastEvent = fmt.Sprintf("impact %.1f m/s", i.Before.Sub(i.After).Len())
	})
	s.controller.Teleported.Subscribe(func(p mgl64.Vec3) {
		s.lastEvent = "respawned"
		log.Printf("[Session] respawned at %.2f,%.2f,%.2f", p.X(), p.Y(), p.Z())
	})
}

// Step advances one frame of dt seconds: input is sampled once, moving
// surfaces advance, then the controller runs its variable tick and as
// many fixed ticks as dt covers.
func (s *Session) Step(dt float64) {
	if s.input != nil {
		s.latched = s.input.Sample()
	} else {
		s.latched = motion.Input{}
	}
	if s.recorder != nil {
		s.recorder.RecordFrame(dt, s.latched)
	}

	s.level.Step(dt)
	s.controller.Update(dt)

	fixed := s.config.Physics.FixedStep
	s.fixedTime += dt
	for s.fixedTime >= fixed {
		s.fixedTime -= fixed
		s.controller.FixedUpdate()
	}

	if s.body.Position().Y() < s.level.Spawn.Y()-killDepth {
		s.Respawn()
	}
	s.frame++
}

// Respawn teleports the player back to the level spawn at rest.
func (s *Session) Respawn() {
	rot := motion.Rotation{Yaw: s.level.SpawnYaw}
	s.controller.Teleport(s.level.Spawn, &rot, true)
}

// Reload swaps in new controller tuning. Values are copied into the live
// config so every modifier sees them on the next step.
func (s *Session) Reload(cfg *config.ControllerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	*s.config = *cfg
	return nil
}

// Close removes every modifier.
func (s *Session) Close() {
	s.controller.Close()
}

// Controller returns the motion controller.
func (s *Session) Controller() *system.Controller { return s.controller }

// Modifiers returns the built-in modifiers.
func (s *Session) Modifiers() modifier.Set { return s.modifiers }

// Level returns the simulated level.
func (s *Session) Level() *world.Level { return s.level }

// Body returns the player collider.
func (s *Session) Body() *world.Body { return s.body }

// Camera returns the eye rig.
func (s *Session) Camera() *Camera { return s.camera }

// Recorder returns the input recorder, or nil when not recording.
func (s *Session) Recorder() *replay.Recorder { return s.recorder }

// Frame returns how many steps have run.
func (s *Session) Frame() int { return s.frame }

// LastEvent describes the most recent notable movement event.
func (s *Session) LastEvent() string { return s.lastEvent }

// Input returns the input sampled for the current frame.
func (s *Session) Input() motion.Input { return s.latched }
