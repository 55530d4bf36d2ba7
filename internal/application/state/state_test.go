package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

func TestStance_String(t *testing.T) {
	tests := []struct {
		stance   Stance
		expected string
	}{
		{StanceGrounded, "Grounded"},
		{StanceAirborne, "Airborne"},
		{StanceCrouching, "Crouching"},
		{StanceRunning, "Running"},
		{StanceSliding, "Sliding"},
		{Stance(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stance.String())
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		ctx      *motion.Context
		expected Stance
	}{
		{"nil", nil, StanceGrounded},
		{"grounded", &motion.Context{IsGrounded: true}, StanceGrounded},
		{"airborne", &motion.Context{}, StanceAirborne},
		{"running", &motion.Context{IsGrounded: true, IsRunning: true}, StanceRunning},
		{"crouch beats run", &motion.Context{IsGrounded: true, IsRunning: true, IsCrouching: true}, StanceCrouching},
		{"slide beats crouch", &motion.Context{IsGrounded: true, IsCrouching: true, IsSliding: true}, StanceSliding},
		{"airborne crouch", &motion.Context{IsCrouching: true}, StanceCrouching},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.ctx))
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "Playing", ModePlaying.String())
	assert.Equal(t, "Paused", ModePaused.String())
	assert.Equal(t, "Replaying", ModeReplaying.String())
	assert.Equal(t, "Finished", ModeFinished.String())
	assert.Equal(t, "Unknown", Mode(42).String())
}
