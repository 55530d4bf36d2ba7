// Package scene defines the Scene interface for demo screens.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the demo, such as free play or replay playback.
// The game loop delegates Update and Draw to the current scene and
// switches scenes when Update returns a new one.
type Scene interface {
	// Update advances the scene by dt seconds of wall-clock time.
	// It returns the next scene to switch to, or nil to stay. An error
	// ends the game; ebiten.Termination ends it cleanly.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when the scene becomes current.
	OnEnter()

	// OnExit is called when the scene stops being current, including on
	// clean termination. Recordings are flushed here.
	OnExit()
}
