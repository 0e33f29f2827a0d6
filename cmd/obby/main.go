package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/obby/internal/application/game"
	"github.com/younwookim/obby/internal/application/replay"
	"github.com/younwookim/obby/internal/application/scene"
	"github.com/younwookim/obby/internal/application/scene/complete"
	"github.com/younwookim/obby/internal/application/scene/menu"
	"github.com/younwookim/obby/internal/application/scene/playing"
	"github.com/younwookim/obby/internal/application/session"
	"github.com/younwookim/obby/internal/application/state"
	"github.com/younwookim/obby/internal/application/system"
	"github.com/younwookim/obby/internal/domain/entity"
	"github.com/younwookim/obby/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recording headless and print the results")
	flag.Parse()

	var envCfg config.Env
	if err := config.ParseEnv(&envCfg); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	cfg, err := loadTuning(envCfg.ConfigDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		if err := runReplay(cfg, *replayFlag); err != nil {
			log.Fatal(err)
		}
		return
	}

	recordPath := chooseRecordPath(*recordFlag, envCfg.RecordPath)

	difficulty, err := entity.ParseDifficulty(envCfg.Difficulty)
	if err != nil {
		log.Printf("Ignoring OBBY_DIFFICULTY: %v", err)
	}

	g := newGame(cfg, system.NewEbitenInput(), envCfg.PlayerName, difficulty, recordPath)

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale,
		cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle("Obby")
	ebiten.SetTPS(cfg.Display.Framerate)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// loadTuning reads tuning.json from dir, or from the embedded configs when dir is empty
func loadTuning(dir string) (*config.Tuning, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadTuning()
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadTuning()
}

// chooseRecordPath prefers the -record flag over OBBY_RECORD
func chooseRecordPath(flagValue, envValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return envValue
}

// newGame wires the session and the three scenes behind one game loop
func newGame(cfg *config.Tuning, input system.InputSource, name string, difficulty entity.Difficulty, recordPath string) *game.Game {
	ctx := &scene.Context{
		Session:           session.New(cfg),
		Input:             input,
		Config:            cfg,
		Scenes:            scene.Registry{},
		DefaultName:       name,
		DefaultDifficulty: difficulty,
		RecordPath:        recordPath,
	}
	ctx.Scenes[state.StateMenu] = menu.New(ctx)
	ctx.Scenes[state.StatePlaying] = playing.New(ctx)
	ctx.Scenes[state.StateLevelComplete] = complete.New(ctx)

	return game.New(ctx.Scenes[state.StateMenu], cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)
}

// runReplay plays a recording without a window and logs what it produced
func runReplay(cfg *config.Tuning, path string) error {
	data, err := replay.Load(path)
	if err != nil {
		return fmt.Errorf("load replay %s: %w", path, err)
	}

	res, err := playRecording(cfg, *data)
	if err != nil {
		return err
	}

	for _, sum := range res.Completed {
		log.Printf("%s: %s in %s, %d falls", sum.Title(), sum.PlayerName, session.FormatTime(sum.ElapsedSeconds), sum.FallCount)
	}
	log.Printf("Replay finished: %d frames (%d ticks), level %d, %s, %d falls",
		res.Frames, res.Ticks, res.Level, res.FinalState, res.FallCount)
	return nil
}

// playRecording runs data against a fresh session on a frame clock
func playRecording(cfg *config.Tuning, data replay.ReplayData) (replay.Result, error) {
	start, err := time.Parse(time.RFC3339, data.StartTime)
	if err != nil {
		start = time.Time{}
	}

	framerate := data.Framerate
	if framerate == 0 {
		framerate = cfg.Display.Framerate
	}

	clock := replay.NewFrameClock(start, framerate)
	sess := session.New(cfg, session.WithClock(clock.Now))
	return replay.Play(sess, clock, data)
}
