package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/fpmotion/internal/domain/motion"
)

// KeyState is one poll of the keys and mouse the demo reads.
type KeyState struct {
	Forward, Back, Left, Right bool
	Jump, Run, Crouch          bool
	CursorX, CursorY           int
}

// Input converts the key state into controller input. Look is the cursor
// delta from prev; moving the mouse up looks up.
func (k KeyState) Input(prev KeyState) motion.Input {
	var move mgl64.Vec2
	if k.Right {
		move[0]++
	}
	if k.Left {
		move[0]--
	}
	if k.Forward {
		move[1]++
	}
	if k.Back {
		move[1]--
	}
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}

	return motion.Input{
		Move:   move,
		Look:   mgl64.Vec2{float64(k.CursorX - prev.CursorX), float64(prev.CursorY - k.CursorY)},
		Jump:   k.Jump,
		Run:    k.Run,
		Crouch: k.Crouch,
	}
}

// InputSystem polls the keyboard and mouse. It implements
// motion.InputSource.
type InputSystem struct {
	prev    KeyState
	started bool
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// GetKeys reads the current key and cursor state
func (s *InputSystem) GetKeys() KeyState {
	mx, my := ebiten.CursorPosition()
	return KeyState{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),
		Jump:    ebiten.IsKeyPressed(ebiten.KeySpace),
		Run:     ebiten.IsKeyPressed(ebiten.KeyShiftLeft),
		Crouch:  ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyC),
		CursorX: mx,
		CursorY: my,
	}
}

// Sample implements motion.InputSource. The first sample has no look delta.
func (s *InputSystem) Sample() motion.Input {
	keys := s.GetKeys()
	if !s.started {
		s.prev = keys
		s.started = true
	}
	in := keys.Input(s.prev)
	s.prev = keys
	return in
}

// Reset forgets the previous cursor position, for example after the
// cursor was released and recaptured.
func (s *InputSystem) Reset() {
	s.started = false
}
