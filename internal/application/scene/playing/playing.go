// Package playing provides the free-play and replay scene.
package playing

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/fpmotion/internal/application/replay"
	"github.com/younwookim/fpmotion/internal/application/scene"
	"github.com/younwookim/fpmotion/internal/application/session"
	"github.com/younwookim/fpmotion/internal/application/state"
	"github.com/younwookim/fpmotion/internal/application/system"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
	"github.com/younwookim/fpmotion/internal/infrastructure/world"
)

// pixelsPerMeter scales the top-down view.
const pixelsPerMeter = 16.0

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorWall     = color.RGBA{80, 80, 100, 255}
	colorPlatform = color.RGBA{100, 160, 220, 255}
	colorRamp     = color.RGBA{120, 100, 70, 255}
	colorPlayer   = color.RGBA{100, 200, 100, 255}
	colorAirborne = color.RGBA{220, 220, 120, 255}
	colorFacing   = color.RGBA{255, 255, 255, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 128}
)

// ErrNoLoader is returned by New without a config loader.
var ErrNoLoader = errors.New("config loader is required")

// Options configure the playing scene.
type Options struct {
	Loader *config.Loader
	Level  string
	// RecordPath enables recording. The replay is saved on F5 and on exit.
	RecordPath string
	// Replay plays recorded input instead of reading the keyboard.
	Replay *replay.ReplayData
	// Watch reloads the controller, level and scripts when their files
	// change. It needs a loader backed by a real directory.
	Watch   bool
	ScreenW int
	ScreenH int
}

// Playing is the main scene: one session driven by the keyboard or a replay
type Playing struct {
	opts     Options
	config   *config.ControllerConfig
	session  *session.Session
	input    *system.InputSystem
	replayer *replay.Replayer
	watcher  *config.Watcher
	state    state.Mode
	screenW  int
	screenH  int
}

// New loads the configs named by opts and spawns the player.
func New(opts Options) (*Playing, error) {
	if opts.Loader == nil {
		return nil, ErrNoLoader
	}

	p := &Playing{
		opts:    opts,
		input:   system.NewInputSystem(),
		state:   state.ModePlaying,
		screenW: opts.ScreenW,
		screenH: opts.ScreenH,
	}
	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
		p.state = state.ModeReplaying
		if opts.Level == "" {
			p.opts.Level = p.replayer.Level()
		}
	}

	if err := p.build(); err != nil {
		return nil, err
	}

	if opts.Watch {
		base := opts.Loader.BasePath()
		w, err := config.NewWatcher(base, filepath.Join(base, config.LevelDir))
		if err != nil {
			log.Printf("[Playing] hot reload disabled: %v", err)
		} else {
			p.watcher = w
		}
	}
	return p, nil
}

// build loads the configs and replaces the session.
func (p *Playing) build() error {
	cfg, err := p.opts.Loader.LoadController()
	if err != nil {
		return err
	}
	levelCfg, err := p.opts.Loader.LoadLevel(p.opts.Level)
	if err != nil {
		return err
	}

	sessOpts := session.Options{
		Controller: cfg,
		Level:      levelCfg,
		Input:      p.input,
		Scripts:    p.opts.Loader,
		Record:     p.opts.RecordPath != "" && p.replayer == nil,
	}
	if p.replayer != nil {
		sessOpts.Input = p.replayer
	}

	s, err := session.New(sessOpts)
	if err != nil {
		return err
	}

	if p.session != nil {
		p.saveRecording()
		p.session.Close()
	}
	p.config = cfg
	p.session = s
	log.Printf("[Playing] level %q loaded", levelCfg.ID)
	return nil
}

// Update proceeds the session (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.pollWatcher()

	switch p.state {
	case state.ModePlaying:
		p.updatePlaying(dt)
	case state.ModePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.resume()
		}
	case state.ModeReplaying:
		p.updateReplaying()
	case state.ModeFinished:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return nil, ebiten.Termination
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(dt float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.state = state.ModePaused
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.session.Respawn()
	}

	p.session.Step(dt)
}

func (p *Playing) updateReplaying() {
	fi, ok := p.replayer.Next()
	if !ok {
		p.state = state.ModeFinished
		pos := p.session.Controller().Position()
		log.Printf("[Playing] replay finished after %d frames at %.2f,%.2f,%.2f",
			p.replayer.TotalFrames(), pos.X(), pos.Y(), pos.Z())
		return
	}
	p.session.Step(fi.DT)
}

func (p *Playing) resume() {
	p.state = state.ModePlaying
	p.input.Reset()
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

// pollWatcher applies pending file changes without blocking.
func (p *Playing) pollWatcher() {
	if p.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-p.watcher.Events:
			if !ok {
				p.watcher = nil
				return
			}
			p.reload(name)
		case err, ok := <-p.watcher.Errors:
			if ok {
				log.Printf("[Playing] watcher error: %v", err)
			}
		default:
			return
		}
	}
}

// reload reacts to one changed file. Controller tuning is swapped in
// place; a changed level rebuilds the session.
func (p *Playing) reload(name string) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	switch {
	case stem == config.ControllerFile:
		cfg, err := p.opts.Loader.LoadController()
		if err != nil {
			log.Printf("[Playing] keeping old controller config: %v", err)
			return
		}
		if err := p.session.Reload(cfg); err != nil {
			log.Printf("[Playing] keeping old controller config: %v", err)
			return
		}
		log.Printf("[Playing] controller config reloaded")
	case filepath.Base(filepath.Dir(name)) == config.LevelDir && stem == p.opts.Level:
		if err := p.build(); err != nil {
			log.Printf("[Playing] keeping old level: %v", err)
		}
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	rec := p.session.Recorder()
	if rec == nil || rec.FrameCount() == 0 {
		return
	}

	filename := p.opts.RecordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := rec.Save(filename); err != nil {
		log.Printf("[Playing] failed to save recording: %v", err)
	} else {
		log.Printf("[Playing] recording saved: %s (%d frames)", filename, rec.FrameCount())
	}
}

// Draw renders a top-down view of the level with the player centered.
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	center := p.session.Controller().Position()
	p.drawLevel(screen, p.session.Level(), center)
	p.drawPlayer(screen, center)
	p.drawHUD(screen)

	switch p.state {
	case state.ModePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.ModeFinished:
		p.drawOverlay(screen, "REPLAY FINISHED\n\nPress ESC to quit")
	}
}

// toScreen maps world x/z to screen pixels. +Z points up the screen.
func (p *Playing) toScreen(center mgl64.Vec3, x, z float64) (float64, float64) {
	sx := float64(p.screenW)/2 + (x-center.X())*pixelsPerMeter
	sy := float64(p.screenH)/2 - (z-center.Z())*pixelsPerMeter
	return sx, sy
}

func (p *Playing) drawLevel(screen *ebiten.Image, level *world.Level, center mgl64.Vec3) {
	for _, r := range level.Ramps() {
		x, y := p.toScreen(center, r.Min.X(), r.Max.Z())
		w := (r.Max.X() - r.Min.X()) * pixelsPerMeter
		h := (r.Max.Z() - r.Min.Z()) * pixelsPerMeter
		ebitenutil.DrawRect(screen, x, y, w, h, colorRamp)
	}

	for _, b := range level.Boxes() {
		// Skip the floor slab and anything fully below the player's feet.
		if b.Max.Y() <= center.Y()-0.5 && !b.Moving() {
			continue
		}
		c := colorWall
		if b.Moving() {
			c = colorPlatform
		}
		x, y := p.toScreen(center, b.Min.X(), b.Max.Z())
		w := (b.Max.X() - b.Min.X()) * pixelsPerMeter
		h := (b.Max.Z() - b.Min.Z()) * pixelsPerMeter
		ebitenutil.DrawRect(screen, x, y, w, h, c)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, center mgl64.Vec3) {
	ctrl := p.session.Controller()
	x, y := p.toScreen(center, center.X(), center.Z())

	c := colorPlayer
	if !ctrl.IsGrounded() {
		c = colorAirborne
	}
	size := 0.6 * pixelsPerMeter
	if ctrl.IsCrouching() {
		size *= 0.7
	}
	ebitenutil.DrawRect(screen, x-size/2, y-size/2, size, size, c)

	yaw := mgl64.DegToRad(ctrl.Rotation().Yaw)
	ebitenutil.DrawLine(screen, x, y, x+math.Sin(yaw)*pixelsPerMeter, y-math.Cos(yaw)*pixelsPerMeter, colorFacing)
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	ctrl := p.session.Controller()
	pos := ctrl.Position()
	ground := ctrl.Ground()

	text := fmt.Sprintf("%s | speed %.1f m/s | vy %.1f\npos %.1f %.1f %.1f | slope %.0f deg\npitch %.0f | %s",
		ctrl.Stance(), ctrl.HorizontalSpeed(), ctrl.VerticalSpeed(),
		pos.X(), pos.Y(), pos.Z(), ground.SlopeAngle,
		p.session.Camera().Pitch(), p.session.LastEvent())
	ebitenutil.DebugPrint(screen, text)

	controls := "WASD: Move | Mouse: Look | Space: Jump | Shift: Run | Ctrl/C: Crouch | R: Respawn | ESC: Pause"
	if p.replayer != nil {
		controls = fmt.Sprintf("Replay frame %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	}
	ebitenutil.DebugPrintAt(screen, controls, 4, p.screenH-16)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

// OnEnter captures the cursor for mouse look
func (p *Playing) OnEnter() {
	if p.state == state.ModePlaying {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
}

// OnExit saves the recording and releases the session
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.watcher != nil {
		if err := p.watcher.Close(); err != nil {
			log.Printf("[Playing] failed to close watcher: %v", err)
		}
		p.watcher = nil
	}
	p.session.Close()
}

// Session returns the running session.
func (p *Playing) Session() *session.Session { return p.session }

// Mode returns the scene state.
func (p *Playing) Mode() state.Mode { return p.state }

// Layout returns the screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
