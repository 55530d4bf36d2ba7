// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/fpmotion/internal/application/scene"
)

// maxFrameDT caps a measured frame so a stall does not become one huge step.
const maxFrameDT = 0.1

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	fixedDT float64 // 0 = measure wall-clock time
	clock   func() time.Time
	last    time.Time
	exited  bool
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		clock:   time.Now,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.frameDT())
	if err != nil {
		if errors.Is(err, ebiten.Termination) {
			g.Close()
		}
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// frameDT returns the time since the previous Update. The first frame
// assumes the target tick rate.
func (g *Game) frameDT() float64 {
	if g.fixedDT > 0 {
		return g.fixedDT
	}

	now := g.clock()
	if g.last.IsZero() {
		g.last = now
		return 1.0 / float64(ebiten.DefaultTPS)
	}
	dt := now.Sub(g.last).Seconds()
	g.last = now
	if dt > maxFrameDT {
		dt = maxFrameDT
	}
	return dt
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT fixes the delta time used for updates. Zero restores wall-clock
// measurement.
func (g *Game) SetDT(dt float64) {
	g.fixedDT = dt
}

// SetClock replaces the wall clock used to measure frames.
func (g *Game) SetClock(clock func() time.Time) {
	g.clock = clock
	g.last = time.Time{}
}

// Close exits the current scene once.
func (g *Game) Close() {
	if g.exited {
		return
	}
	g.exited = true
	g.current.OnExit()
}
