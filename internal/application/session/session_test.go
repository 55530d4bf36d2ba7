package session

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/fpmotion/internal/application/modifier"
	"github.com/younwookim/fpmotion/internal/application/replay"
	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/domain/motion/motiontest"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

const (
	frameDT     = 1.0 / 60
	demoConfigs = "../../../cmd/fpdemo/configs"
)

var spawn = mgl64.Vec3{5, 0, 2}

func testController() *config.ControllerConfig {
	cfg := config.Default()
	offset := mgl64.Vec3{0, 1, 0}
	cfg.Ground.OriginOffset = &offset
	return cfg
}

func flatLevel() *config.LevelConfig {
	rows := make([]string, 30)
	for i := range rows {
		rows[i] = strings.Repeat(".", 10)
	}
	return &config.LevelConfig{
		ID:          "flat",
		Grid:        config.GridConfig{CellSize: 1, FloorOverlap: 1},
		PlayerSpawn: config.SpawnConfig{Position: spawn},
		Layers:      config.LayersConfig{Collision: rows},
		TileMapping: map[string]config.TileMappingConfig{".": {Type: "empty"}},
	}
}

func newTestSession(t *testing.T, in motion.InputSource) *Session {
	t.Helper()
	s, err := New(Options{Controller: testController(), Level: flatLevel(), Input: in})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func stepN(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Step(frameDT)
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{Level: flatLevel()})
	assert.ErrorIs(t, err, ErrNoController)

	_, err = New(Options{Controller: testController()})
	assert.ErrorIs(t, err, ErrNoLevel)
}

func TestSession_SpawnsGrounded(t *testing.T) {
	s := newTestSession(t, nil)

	assert.True(t, s.Controller().Enabled())
	assert.True(t, s.Body().Grounded())
	assert.Equal(t, spawn, s.Controller().Position())
	assert.Equal(t, 1.7, s.Camera().OffsetY())

	stepN(s, 60)

	pos := s.Controller().Position()
	assert.InDelta(t, spawn.X(), pos.X(), 1e-9)
	assert.InDelta(t, 0, pos.Y(), 0.02)
	assert.InDelta(t, spawn.Z(), pos.Z(), 1e-9)
	assert.True(t, s.Controller().IsGrounded())
	assert.Equal(t, 60, s.Frame())
}

func TestSession_WalkForward(t *testing.T) {
	in := &motiontest.Input{State: motion.Input{Move: mgl64.Vec2{0, 1}}}
	s := newTestSession(t, in)

	stepN(s, 60)

	pos := s.Controller().Position()
	assert.Greater(t, pos.Z()-spawn.Z(), 4.0)
	assert.Less(t, pos.Z()-spawn.Z(), 5.0)
	assert.InDelta(t, spawn.X(), pos.X(), 1e-9)
	assert.InDelta(t, 5, s.Controller().HorizontalSpeed(), 1e-9)
	assert.True(t, s.Controller().IsGrounded())
}

func TestSession_LongFramesUseFixedTicks(t *testing.T) {
	in := &motiontest.Input{State: motion.Input{Move: mgl64.Vec2{0, 1}}}
	s := newTestSession(t, in)

	for i := 0; i < 20; i++ {
		s.Step(0.05)
	}

	pos := s.Controller().Position()
	assert.Greater(t, pos.Z()-spawn.Z(), 4.0, "one second of walking")
	assert.Less(t, pos.Z()-spawn.Z(), 5.0)
}

func TestSession_JumpAndLand(t *testing.T) {
	in := &motiontest.Input{}
	s := newTestSession(t, in)
	var grounded []bool
	s.Controller().GroundedChanged.Subscribe(func(g bool) { grounded = append(grounded, g) })

	stepN(s, 5)
	in.State.Jump = true
	s.Step(frameDT)
	in.State.Jump = false
	assert.Equal(t, "jump", s.LastEvent())

	stepN(s, 15)
	assert.False(t, s.Controller().IsGrounded())
	assert.Greater(t, s.Controller().Position().Y(), 0.5)

	stepN(s, 120)
	assert.True(t, s.Controller().IsGrounded())
	assert.InDelta(t, 0, s.Controller().Position().Y(), 0.02)
	assert.Equal(t, []bool{false, true}, grounded)
}

func TestSession_CrouchLowersCamera(t *testing.T) {
	in := &motiontest.Input{State: motion.Input{Crouch: true}}
	s := newTestSession(t, in)

	stepN(s, 30)

	assert.True(t, s.Controller().IsCrouching())
	assert.InDelta(t, 0.8, s.Camera().OffsetY(), 1e-9)
	assert.Equal(t, 1.0, s.Body().Height())
}

func TestSession_RespawnAfterFalling(t *testing.T) {
	level := flatLevel()
	level.Grid.NoFloor = true
	s, err := New(Options{Controller: testController(), Level: level})
	require.NoError(t, err)
	defer s.Close()

	var teleports []mgl64.Vec3
	s.Controller().Teleported.Subscribe(func(p mgl64.Vec3) { teleports = append(teleports, p) })

	stepN(s, 150)

	require.NotEmpty(t, teleports)
	assert.Equal(t, spawn, teleports[0])
	assert.Greater(t, s.Controller().Position().Y(), spawn.Y()-killDepth)
	assert.Equal(t, "respawned", s.LastEvent())
}

func TestSession_Reload(t *testing.T) {
	in := &motiontest.Input{State: motion.Input{Move: mgl64.Vec2{0, 1}}}
	s := newTestSession(t, in)

	faster := testController()
	faster.Movement.WalkSpeed = 8
	require.NoError(t, s.Reload(faster))

	stepN(s, 60)
	assert.InDelta(t, 8, s.Controller().HorizontalSpeed(), 1e-9)

	invalid := testController()
	invalid.Ground.RayCount = 0
	assert.Error(t, s.Reload(invalid))
	stepN(s, 1)
	assert.InDelta(t, 8, s.Controller().HorizontalSpeed(), 1e-9, "old tuning kept")
}

func TestSession_Scripts(t *testing.T) {
	loader := config.NewLoader(demoConfigs)
	cfg, err := loader.LoadController()
	require.NoError(t, err)

	s, err := New(Options{Controller: cfg, Level: flatLevel(), Scripts: loader})
	require.NoError(t, err)
	defer s.Close()

	require.Len(t, s.Modifiers().Scripts, 1)
	assert.True(t, s.Controller().Modifiers().Has(modifier.KindScript))
}

func TestSession_MissingScript(t *testing.T) {
	cfg := testController()
	cfg.Scripts = []config.ScriptConfig{{Path: "scripts/missing.tengo"}}

	_, err := New(Options{Controller: cfg, Level: flatLevel(), Scripts: config.NewLoader(demoConfigs)})

	assert.Error(t, err)
}

// scriptedInput walks forward, strafes, jumps and looks around on a fixed
// schedule.
type scriptedInput struct {
	frame int
}

func (s *scriptedInput) Sample() motion.Input {
	f := s.frame
	s.frame++
	in := motion.Input{Move: mgl64.Vec2{0, 1}, Look: mgl64.Vec2{1.5, 0}}
	if f > 40 && f < 80 {
		in.Move = mgl64.Vec2{1, 0.5}
		in.Run = true
	}
	in.Jump = f == 30 || f == 95
	in.Crouch = f > 120 && f < 140
	return in
}

func TestSession_ReplayIsDeterministic(t *testing.T) {
	recorded, err := New(Options{
		Controller: testController(),
		Level:      flatLevel(),
		Input:      &scriptedInput{},
		Record:     true,
	})
	require.NoError(t, err)
	defer recorded.Close()

	for i := 0; i < 180; i++ {
		dt := frameDT
		if i%7 == 0 {
			dt = 0.03
		}
		recorded.Step(dt)
	}
	require.Equal(t, 180, recorded.Recorder().FrameCount())

	replayer := replay.NewReplayer(recorded.Recorder().Data())
	replayed, err := New(Options{Controller: testController(), Level: flatLevel(), Input: replayer})
	require.NoError(t, err)
	defer replayed.Close()

	for {
		fi, ok := replayer.Next()
		if !ok {
			break
		}
		replayed.Step(fi.DT)
	}

	assert.Equal(t, recorded.Controller().Position(), replayed.Controller().Position())
	assert.Equal(t, recorded.Controller().Velocity(), replayed.Controller().Velocity())
	assert.Equal(t, recorded.Controller().Rotation(), replayed.Controller().Rotation())
}
