package main

import (
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/fpmotion/internal/application/game"
	"github.com/younwookim/fpmotion/internal/application/replay"
	"github.com/younwookim/fpmotion/internal/application/scene/playing"
	"github.com/younwookim/fpmotion/internal/infrastructure/config"
)

const (
	screenWidth  = 480
	screenHeight = 320
	windowScale  = 2
)

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Config directory; empty uses the embedded configs (hot reload needs a directory)")
	levelName := flag.String("level", "demo", "Level to load from <config>/levels")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded replay file")
	headless := flag.Bool("headless", false, "Run the replay without a window and print the final state")
	fixedDT := flag.Float64("dt", 0, "Fixed frame time in seconds; 0 measures wall-clock time")
	flag.Parse()

	loader, watch := newLoader(*configDir)

	var data *replay.ReplayData
	if *replayFlag != "" {
		var err error
		data, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
	}

	if *headless {
		if data == nil {
			log.Fatal("-headless needs -replay")
		}
		result, err := RunReplay(loader, *data)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		log.Printf("%s", result)
		return
	}

	scn, err := playing.New(playing.Options{
		Loader:     loader,
		Level:      *levelName,
		RecordPath: *recordFlag,
		Replay:     data,
		Watch:      watch,
		ScreenW:    screenWidth,
		ScreenH:    screenHeight,
	})
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	g := game.New(scn, screenWidth, screenHeight)
	g.SetDT(*fixedDT)
	defer g.Close()

	// Set up ebiten
	ebiten.SetWindowSize(screenWidth*windowScale, screenHeight*windowScale)
	ebiten.SetWindowTitle("First-Person Motion Demo")

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// newLoader reads configs from dir, or from the embedded copy when dir is
// empty. It reports whether the configs can be watched for changes.
func newLoader(dir string) (*config.Loader, bool) {
	if dir != "" {
		return config.NewLoader(dir), true
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	return config.NewFSLoader(fsys, "configs"), false
}
