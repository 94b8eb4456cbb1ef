package main

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/lizzyinspace/assets"
	"github.com/milk9111/lizzyinspace/prefabs"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	windowTitle  = "Space Adventure - Point & Click"
)

// Config holds the command line settings.
type Config struct {
	Debug      bool
	Level      string
	Watch      bool
	AssetsDir  string
	PrefabsDir string
	TPS        int
}

func DefaultConfig() Config {
	return Config{
		Level:      "corridor",
		AssetsDir:  "assets",
		PrefabsDir: "prefabs",
		TPS:        60,
	}
}

// App is built once at startup and handed to everything that needs shared
// services.
type App struct {
	Config  Config
	Logger  *log.Logger
	Assets  *assets.Cache
	Prefabs *prefabs.Store
}

func NewApp(cfg Config, logger *log.Logger) *App {
	return &App{
		Config:  cfg,
		Logger:  logger,
		Assets:  assets.NewCache(cfg.AssetsDir),
		Prefabs: prefabs.NewStore(cfg.PrefabsDir),
	}
}
