package modifier

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/younwookim/fpmotion/internal/domain/motion"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

func TestLanding_Process(t *testing.T) {
	tests := []struct {
		name       string
		wasGround  bool
		previousVY float64
		wantImpact []float64
		wantVel    mgl64.Vec3
	}{
		{name: "hard landing", previousVY: -10, wantImpact: []float64{10}, wantVel: mgl64.Vec3{3, -0.01, -1.5}},
		{name: "threshold counts", previousVY: -8, wantImpact: []float64{8}, wantVel: mgl64.Vec3{3, -0.01, -1.5}},
		{name: "soft landing", previousVY: -5, wantVel: mgl64.Vec3{5, -0.01, -2.5}},
		{name: "already grounded", wasGround: true, previousVY: -20, wantVel: mgl64.Vec3{5, -0.01, -2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Landing
			l := NewLanding(&cfg)
			var impacts []float64
			l.Landed.Subscribe(func(v float64) { impacts = append(impacts, v) })

			ctx := motion.Context{
				IsGrounded:           true,
				WasGroundedLastFrame: tt.wasGround,
				PreviousYVelocity:    tt.previousVY,
				Velocity:             mgl64.Vec3{5, -0.01, -2.5},
			}
			l.Process(&ctx)

			assert.Equal(t, tt.wantImpact, impacts)
			assert.InDelta(t, tt.wantVel.X(), ctx.Velocity.X(), 1e-9)
			assert.InDelta(t, tt.wantVel.Y(), ctx.Velocity.Y(), 1e-9)
			assert.InDelta(t, tt.wantVel.Z(), ctx.Velocity.Z(), 1e-9)
		})
	}
}
