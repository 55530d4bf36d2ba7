package modifier

import (
	"fmt"
	"path"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// Installer registers modifiers on a controller.
type Installer interface {
	AddModifier(m motion.Modifier) motion.Modifier
}

// ScriptSource reads script files, usually a config.Loader.
type ScriptSource interface {
	ReadFile(name string) ([]byte, error)
}

// Set is the built-in modifiers InstallDefaults registered. Fields of
// disabled features are nil.
type Set struct {
	Platform     *Platform
	Crouch       *Crouch
	Run          *Run
	BaseMovement *BaseMovement
	Jump         *Jump
	Landing      *Landing
	Sliding      *Sliding
	Scripts      []*Script
}

// InstallDefaults registers the built-in modifiers enabled by cfg.Features.
// Platform, BaseMovement and Jump are always installed.
func InstallDefaults(to Installer, cfg *config.ControllerConfig, surfaces motion.SurfaceVelocity) Set {
	var set Set

	set.Platform = NewPlatform(&cfg.Platform, surfaces)
	to.AddModifier(set.Platform)
	if cfg.Features.Crouch {
		set.Crouch = NewCrouch(&cfg.Crouch)
		to.AddModifier(set.Crouch)
	}
	if cfg.Features.Run {
		set.Run = NewRun(&cfg.Run)
		to.AddModifier(set.Run)
	}
	set.BaseMovement = NewBaseMovement(&cfg.Movement)
	to.AddModifier(set.BaseMovement)
	set.Jump = NewJump(&cfg.Jump)
	to.AddModifier(set.Jump)
	if cfg.Features.Landing {
		set.Landing = NewLanding(&cfg.Landing)
		to.AddModifier(set.Landing)
	}
	if cfg.Features.Sliding {
		set.Sliding = NewSliding(&cfg.Sliding)
		to.AddModifier(set.Sliding)
	}
	return set
}

// InstallScripts compiles and registers every configured script. Nothing
// is registered if any script fails to load.
func InstallScripts(to Installer, src ScriptSource, scripts []config.ScriptConfig) ([]*Script, error) {
	out := make([]*Script, 0, len(scripts))
	for _, sc := range scripts {
		data, err := src.ReadFile(sc.Path)
		if err != nil {
			return nil, err
		}
		priority := sc.Priority
		if priority == 0 {
			priority = DefaultScriptPriority
		}
		s, err := NewScript(path.Base(sc.Path), data, priority)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", sc.Path, err)
		}
		out = append(out, s)
	}
	for _, s := range out {
		to.AddModifier(s)
	}
	return out, nil
}
