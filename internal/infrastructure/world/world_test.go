package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

// createTestLevel is a 4x3 floor with a wall box covering x in [2, 3].
func createTestLevel() *Level {
	l := NewLevel(&config.LevelConfig{
		ID:          "test",
		Grid:        config.GridConfig{CellSize: 1, FloorOverlap: 1},
		PlayerSpawn: config.SpawnConfig{Position: mgl64.Vec3{0.5, 0, 1.5}},
		Layers:      config.LayersConfig{Collision: []string{"....", "....", "...."}},
	})
	l.AddBox(config.BoxConfig{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 2, 3}})
	return l
}

func TestNewLevel_FromGrid(t *testing.T) {
	cfg := &config.LevelConfig{
		Grid: config.GridConfig{CellSize: 2, FloorY: 1},
		Layers: config.LayersConfig{Collision: []string{
			"#.",
			"..",
		}},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Type: "wall", Solid: true, Height: 2, Layer: 4},
			".": {Type: "empty"},
		},
		Ramps: []config.RampConfig{{Min: mgl64.Vec3{0, 1, 2}, Max: mgl64.Vec3{2, 2, 4}}},
	}

	l := NewLevel(cfg)

	require.Len(t, l.Boxes(), 2)
	floor := l.Boxes()[0]
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, floor.Min)
	assert.Equal(t, mgl64.Vec3{4, 1, 4}, floor.Max)

	wall := l.Boxes()[1]
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, wall.Min)
	assert.Equal(t, mgl64.Vec3{2, 3, 2}, wall.Max)
	assert.Equal(t, uint32(4), wall.Layer)

	require.Len(t, l.Ramps(), 1)
	assert.NotEqual(t, floor.ID, l.Ramps()[0].ID)
	assert.NotEqual(t, wall.ID, l.Ramps()[0].ID)
}

func TestNewLevel_DemoConfig(t *testing.T) {
	cfg, err := config.NewLoader("../../../cmd/fpdemo/configs").LoadLevel("demo")
	require.NoError(t, err)

	l := NewLevel(cfg)
	assert.Equal(t, "demo", l.ID)
	assert.Equal(t, mgl64.Vec3{5, 0, 5}, l.Spawn)

	body := NewBody(l, l.Spawn, DefaultBodyConfig())
	assert.True(t, body.Grounded(), "spawn should stand on the floor")
}

func TestLevel_Raycast(t *testing.T) {
	l := createTestLevel()

	t.Run("floor", func(t *testing.T) {
		hit, ok := l.Raycast(mgl64.Vec3{0.5, 1, 1.5}, motion.Down, 2, motion.AllLayers)
		require.True(t, ok)
		assert.InDelta(t, 1.0, hit.Distance, 1e-9)
		assert.Equal(t, motion.Up, hit.Normal)
		assert.InDelta(t, 0.0, hit.Point.Y(), 1e-9)
		assert.Equal(t, l.Boxes()[0].ID, hit.Surface)
	})

	t.Run("out of range", func(t *testing.T) {
		_, ok := l.Raycast(mgl64.Vec3{0.5, 1, 1.5}, motion.Down, 0.5, motion.AllLayers)
		assert.False(t, ok)
	})

	t.Run("wall face", func(t *testing.T) {
		hit, ok := l.Raycast(mgl64.Vec3{0.5, 1, 1.5}, mgl64.Vec3{1, 0, 0}, 5, motion.AllLayers)
		require.True(t, ok)
		assert.InDelta(t, 1.5, hit.Distance, 1e-9)
		assert.Equal(t, mgl64.Vec3{-1, 0, 0}, hit.Normal)
	})

	t.Run("origin inside ignores box", func(t *testing.T) {
		_, ok := l.Raycast(mgl64.Vec3{0.5, -0.5, 1.5}, motion.Down, 5, motion.AllLayers)
		assert.False(t, ok)
	})

	t.Run("layer mask", func(t *testing.T) {
		l := NewLevel(&config.LevelConfig{})
		l.AddBox(config.BoxConfig{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 0, 1}, Layer: 3})

		_, ok := l.Raycast(mgl64.Vec3{0, 1, 0}, motion.Down, 5, motion.LayerMask(1))
		assert.False(t, ok)

		_, ok = l.Raycast(mgl64.Vec3{0, 1, 0}, motion.Down, 5, motion.LayerMask(1<<3))
		assert.True(t, ok)
	})

	t.Run("nearest wins", func(t *testing.T) {
		l := NewLevel(&config.LevelConfig{})
		l.AddBox(config.BoxConfig{Min: mgl64.Vec3{-1, -3, -1}, Max: mgl64.Vec3{1, -2, 1}})
		upper := l.AddBox(config.BoxConfig{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 0, 1}})

		hit, ok := l.Raycast(mgl64.Vec3{0, 1, 0}, motion.Down, 10, motion.AllLayers)
		require.True(t, ok)
		assert.Equal(t, upper.ID, hit.Surface)
	})
}

func TestLevel_RaycastRamp(t *testing.T) {
	l := NewLevel(&config.LevelConfig{})
	ramp := l.AddRamp(config.RampConfig{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 1, 2}})

	hit, ok := l.Raycast(mgl64.Vec3{1, 5, 1}, motion.Down, 10, motion.AllLayers)
	require.True(t, ok)
	assert.InDelta(t, 4.5, hit.Distance, 1e-9)
	assert.Equal(t, ramp.ID, hit.Surface)
	assert.InDelta(t, math.Atan(0.5)*180/math.Pi, motion.AngleDeg(hit.Normal, motion.Up), 1e-9)
	assert.InDelta(t, ramp.AngleDeg(), motion.AngleDeg(hit.Normal, motion.Up), 1e-9)

	_, ok = l.Raycast(mgl64.Vec3{3, 5, 1}, motion.Down, 10, motion.AllLayers)
	assert.False(t, ok, "outside footprint")
}

func TestLevel_PointVelocity(t *testing.T) {
	l := NewLevel(&config.LevelConfig{})
	static := l.AddBox(config.BoxConfig{Min: mgl64.Vec3{5, 0, 5}, Max: mgl64.Vec3{6, 1, 6}})
	moving := l.AddBox(config.BoxConfig{
		Min:              mgl64.Vec3{0, 0, 0},
		Max:              mgl64.Vec3{2, 1, 2},
		Velocity:         mgl64.Vec3{1, 0, 0},
		AngularVelocityY: 90,
	})

	_, ok := l.PointVelocity(static.ID, mgl64.Vec3{5.5, 1, 5.5})
	assert.False(t, ok)

	_, ok = l.PointVelocity(999, mgl64.Vec3{})
	assert.False(t, ok)

	v, ok := l.PointVelocity(moving.ID, mgl64.Vec3{1, 0.5, 2})
	require.True(t, ok)
	assert.InDelta(t, 1+math.Pi/2, v.X(), 1e-9)
	assert.InDelta(t, 0.0, v.Y(), 1e-9)
	assert.InDelta(t, 0.0, v.Z(), 1e-9)

	assert.Equal(t, 90.0, l.AngularVelocityY(moving.ID))
	assert.Equal(t, 0.0, l.AngularVelocityY(static.ID))
}

func TestLevel_StepReversesAfterTravel(t *testing.T) {
	l := NewLevel(&config.LevelConfig{})
	box := l.AddBox(config.BoxConfig{
		Min:      mgl64.Vec3{0, 0, 0},
		Max:      mgl64.Vec3{1, 1, 1},
		Velocity: mgl64.Vec3{0, 1, 0},
		Travel:   0.5,
	})

	l.Step(0.25)
	assert.InDelta(t, 1.25, box.Max.Y(), 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, box.Velocity)

	l.Step(0.25)
	assert.InDelta(t, 1.5, box.Max.Y(), 1e-9)
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, box.Velocity)

	l.Step(0.25)
	assert.InDelta(t, 1.25, box.Max.Y(), 1e-9)
}

func TestBody_FallsOntoFloor(t *testing.T) {
	l := createTestLevel()
	body := NewBody(l, mgl64.Vec3{0.5, 1, 1.5}, DefaultBodyConfig())
	require.False(t, body.Grounded())

	flags, vel := body.Move(mgl64.Vec3{0, -2, 0}, 0.1)

	assert.True(t, flags.Has(motion.CollisionBelow))
	assert.True(t, body.Grounded())
	assert.InDelta(t, 0.0, body.Position().Y(), 1e-9)
	assert.InDelta(t, -10.0, vel.Y(), 1e-6)
}

func TestBody_WallStopsSides(t *testing.T) {
	l := createTestLevel()
	body := NewBody(l, mgl64.Vec3{1, 0, 1.5}, DefaultBodyConfig())
	require.True(t, body.Grounded())

	flags, vel := body.Move(mgl64.Vec3{1, 0, 0}, 0.5)

	assert.True(t, flags.Has(motion.CollisionSides))
	assert.False(t, flags.Has(motion.CollisionBelow))
	assert.InDelta(t, 1.6, body.Position().X(), 1e-9)
	assert.InDelta(t, 1.2, vel.X(), 1e-6)
	assert.True(t, body.Grounded())
}

func TestBody_CeilingSetsAbove(t *testing.T) {
	l := createTestLevel()
	l.AddBox(config.BoxConfig{Min: mgl64.Vec3{0, 2.5, 0}, Max: mgl64.Vec3{2, 3, 3}})
	body := NewBody(l, mgl64.Vec3{0.5, 0, 1.5}, DefaultBodyConfig())

	flags, _ := body.Move(mgl64.Vec3{0, 1, 0}, 0.1)

	assert.True(t, flags.Has(motion.CollisionAbove))
	assert.InDelta(t, 0.5, body.Position().Y(), 1e-9)
	assert.False(t, body.Grounded())
}

func TestBody_CollisionDisabledPassesThrough(t *testing.T) {
	l := createTestLevel()
	body := NewBody(l, mgl64.Vec3{1, 0, 1.5}, DefaultBodyConfig())
	body.SetCollisionEnabled(false)

	flags, _ := body.Move(mgl64.Vec3{2, 0, 0}, 0.1)

	assert.Equal(t, motion.CollisionNone, flags)
	assert.InDelta(t, 3.0, body.Position().X(), 1e-9)
	assert.False(t, body.Grounded())
}

func TestBody_SetPositionReevaluatesGrounded(t *testing.T) {
	l := createTestLevel()
	body := NewBody(l, mgl64.Vec3{0.5, 3, 1.5}, DefaultBodyConfig())
	require.False(t, body.Grounded())

	body.SetPosition(mgl64.Vec3{0.5, 0, 1.5})
	assert.True(t, body.Grounded())

	body.SetPosition(mgl64.Vec3{0.5, 0.5, 1.5})
	assert.False(t, body.Grounded())
}

func TestBody_RampLiftsAndSnaps(t *testing.T) {
	l := NewLevel(&config.LevelConfig{})
	l.AddRamp(config.RampConfig{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 1, 2}})
	body := NewBody(l, mgl64.Vec3{1, 0.5, 1}, DefaultBodyConfig())
	require.True(t, body.Grounded())

	// uphill
	flags, _ := body.Move(mgl64.Vec3{0, 0, 0.5}, 0.1)
	assert.True(t, flags.Has(motion.CollisionBelow))
	assert.InDelta(t, 0.75, body.Position().Y(), 1e-9)
	assert.True(t, body.Grounded())

	// downhill sticks to the surface
	flags, _ = body.Move(mgl64.Vec3{0, -0.001, -0.5}, 0.1)
	assert.True(t, flags.Has(motion.CollisionBelow))
	assert.InDelta(t, 0.5, body.Position().Y(), 1e-9)
	assert.True(t, body.Grounded())
}

func TestBody_RisingPlatformPushesUp(t *testing.T) {
	l := NewLevel(&config.LevelConfig{})
	l.AddBox(config.BoxConfig{
		Min:      mgl64.Vec3{0, 0, 0},
		Max:      mgl64.Vec3{2, 1, 2},
		Velocity: mgl64.Vec3{0, 1, 0},
	})
	body := NewBody(l, mgl64.Vec3{1, 1, 1}, DefaultBodyConfig())
	require.True(t, body.Grounded())

	l.Step(0.1)
	flags, _ := body.Move(mgl64.Vec3{0, -0.0002, 0}, 0.02)

	assert.True(t, flags.Has(motion.CollisionBelow))
	assert.InDelta(t, 1.1, body.Position().Y(), 1e-9)
	assert.True(t, body.Grounded())
}

func TestBody_SetShapeKeepsFeet(t *testing.T) {
	l := createTestLevel()
	body := NewBody(l, mgl64.Vec3{0.5, 0, 1.5}, DefaultBodyConfig())

	body.SetShape(1, 0.5)

	min, max := body.Bounds()
	assert.InDelta(t, 0.0, min.Y(), 1e-9)
	assert.InDelta(t, 1.0, max.Y(), 1e-9)
	assert.Equal(t, 1.0, body.Height())
	assert.Equal(t, 45.0, body.SlopeLimit())
}
