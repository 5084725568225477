package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orbitscene/internal/config"
	"orbitscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// flagValues are the command line settings that override the config file.
type flagValues struct {
	width, height int
	fps           int
	debug         bool
	logLevel      string
	headless      bool
	frames        int
	out           string
	seed          int64
}

func main() {
	var fv flagValues
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.IntVar(&fv.width, "width", 0, "Window width in logical pixels")
	flag.IntVar(&fv.height, "height", 0, "Window height in logical pixels")
	flag.IntVar(&fv.fps, "fps", 0, "Frame rate cap (windowed) or capture rate (headless)")
	flag.BoolVar(&fv.debug, "debug", false, "Enable verbose debug logging and the stats overlay")
	flag.StringVar(&fv.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flag.BoolVar(&fv.headless, "headless", false, "Render with the software backend, without a window")
	flag.IntVar(&fv.frames, "frames", 0, "Number of frames to render in headless mode")
	flag.StringVar(&fv.out, "out", "", "Directory to write headless frames to as PNG")
	flag.Int64Var(&fv.seed, "seed", 0, "Starfield seed (random when unset outside headless mode)")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(*configPath)
	if err != nil {
		utils.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	applyFlags(cfg, fv, set)
	if err := cfg.Validate(); err != nil {
		utils.Error("Invalid settings: %v", err)
		os.Exit(1)
	}

	if err := setupLogging(cfg.Log); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}

	seed := cfg.Headless.Seed
	if !set["seed"] && seed == 0 && !cfg.Headless.Enabled {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.Info("--- orbitscene start ---")

	if cfg.Headless.Enabled {
		err = runHeadless(ctx, cfg, seed)
	} else {
		err = runWindow(ctx, cfg, seed)
	}
	if err != nil {
		utils.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}

// applyFlags copies the explicitly given flags into cfg.
func applyFlags(cfg *config.Config, fv flagValues, set map[string]bool) {
	if set["width"] {
		cfg.Window.Width = fv.width
	}
	if set["height"] {
		cfg.Window.Height = fv.height
	}
	if set["headless"] {
		cfg.Headless.Enabled = fv.headless
	}
	if set["fps"] {
		if cfg.Headless.Enabled {
			cfg.Headless.FPS = float64(fv.fps)
		} else {
			cfg.Window.TargetFPS = fv.fps
		}
	}
	if set["debug"] {
		cfg.Log.Debug = fv.debug
	}
	if set["log-level"] {
		cfg.Log.Level = fv.logLevel
	}
	if set["frames"] {
		cfg.Headless.Frames = fv.frames
	}
	if set["out"] {
		cfg.Headless.Out = fv.out
	}
	if set["seed"] {
		cfg.Headless.Seed = fv.seed
	}
}

func setupLogging(c config.LogConfig) error {
	level, err := utils.ParseLogLevel(c.Level)
	if err != nil {
		return err
	}
	if c.Debug {
		level = utils.LevelDebug
	}

	utils.CurrentLevel = level
	utils.DebugMode = c.Debug
	utils.ShowDebugUI = c.Debug
	utils.ShowRaylibInfo = c.RaylibInfo

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	return nil
}
