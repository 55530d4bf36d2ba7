package modifier

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

func TestRun_Process(t *testing.T) {
	tests := []struct {
		name           string
		requireForward bool
		input          motion.Input
		crouching      bool
		wantRunning    bool
	}{
		{name: "run forward", requireForward: true, input: motion.Input{Run: true, Move: mgl64.Vec2{0, 1}}, wantRunning: true},
		{name: "no run input", requireForward: true, input: motion.Input{Move: mgl64.Vec2{0, 1}}},
		{name: "crouching blocks run", requireForward: true, input: motion.Input{Run: true, Move: mgl64.Vec2{0, 1}}, crouching: true},
		{name: "backward with forward required", requireForward: true, input: motion.Input{Run: true, Move: mgl64.Vec2{0, -1}}},
		{name: "strafe with forward required", requireForward: true, input: motion.Input{Run: true, Move: mgl64.Vec2{1, 0}}},
		{name: "strafe without forward required", input: motion.Input{Run: true, Move: mgl64.Vec2{1, 0}}, wantRunning: true},
		{name: "standing still without forward required", input: motion.Input{Run: true}, wantRunning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Run
			cfg.RequireForward = tt.requireForward
			r := NewRun(&cfg)

			ctx := motion.Context{
				Input:           tt.input,
				MoveInput:       mgl64.Vec3{tt.input.Move.X(), 0, tt.input.Move.Y()},
				IsCrouching:     tt.crouching,
				SpeedMultiplier: 1,
			}
			r.Process(&ctx)

			assert.Equal(t, tt.wantRunning, ctx.IsRunning)
			assert.Equal(t, tt.wantRunning, r.Running())
			if tt.wantRunning {
				assert.Equal(t, 1.6, ctx.SpeedMultiplier)
			} else {
				assert.Equal(t, 1.0, ctx.SpeedMultiplier)
			}
		})
	}
}

func TestRun_RunningChangedOnEdges(t *testing.T) {
	cfg := config.Default().Run
	r := NewRun(&cfg)
	var events []bool
	r.RunningChanged.Subscribe(func(v bool) { events = append(events, v) })

	step := func(run bool) {
		ctx := motion.Context{
			Input:           motion.Input{Run: run, Move: mgl64.Vec2{0, 1}},
			MoveInput:       mgl64.Vec3{0, 0, 1},
			SpeedMultiplier: 1,
		}
		r.Process(&ctx)
	}

	step(true)
	step(true)
	step(false)
	step(false)
	step(true)

	assert.Equal(t, []bool{true, false, true}, events)
}
