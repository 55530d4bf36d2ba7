package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/fpmotion/internal/application/replay"
	"github.com/younwookim/fpmotion/internal/application/session"
	"github.com/younwookim/fpmotion/internal/application/state"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// Result is the player state after a headless replay.
type Result struct {
	Level    string
	Frames   int
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Stance   state.Stance
	// Grounded holds IsGrounded after every frame.
	Grounded []bool
}

func (r Result) String() string {
	return fmt.Sprintf("level %s: %d frames, pos %.3f %.3f %.3f, vel %.3f %.3f %.3f, %s",
		r.Level, r.Frames,
		r.Position.X(), r.Position.Y(), r.Position.Z(),
		r.Velocity.X(), r.Velocity.Y(), r.Velocity.Z(),
		r.Stance)
}

// RunReplay plays data through a fresh session on the level it was
// recorded in, using each frame's recorded dt.
func RunReplay(loader *config.Loader, data replay.ReplayData) (Result, error) {
	cfg, err := loader.LoadController()
	if err != nil {
		return Result{}, err
	}
	levelCfg, err := loader.LoadLevel(data.Level)
	if err != nil {
		return Result{}, err
	}

	replayer := replay.NewReplayer(data)
	s, err := session.New(session.Options{
		Controller: cfg,
		Level:      levelCfg,
		Input:      replayer,
		Scripts:    loader,
	})
	if err != nil {
		return Result{}, err
	}
	defer s.Close()

	result := Result{
		Level:    levelCfg.ID,
		Grounded: make([]bool, 0, replayer.TotalFrames()),
	}
	for {
		fi, ok := replayer.Next()
		if !ok {
			break
		}
		s.Step(fi.DT)
		result.Grounded = append(result.Grounded, s.Controller().IsGrounded())
	}

	ctrl := s.Controller()
	result.Frames = s.Frame()
	result.Position = ctrl.Position()
	result.Velocity = ctrl.Velocity()
	result.Stance = ctrl.Stance()
	return result, nil
}
