package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lizzyinspace/assets"
	"github.com/spf13/cobra"
)

var cfg = DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "lizzy",
	Short: "Space Adventure - walk the corridor and pick things up",
	Long: `Walk Lizzy around the ship with the arrow keys or WASD and pick up
whatever is lying around.

Controls:
  Arrows/WASD  - Walk
  Esc          - Pause menu
  F12          - Quit`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging and overlay")
	rootCmd.Flags().StringVar(&cfg.Level, "level", cfg.Level, "level name in levels/ (basename, .json optional)")
	rootCmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload prefabs when they change on disk")
	rootCmd.Flags().StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "directory whose images/ overrides embedded art")
	rootCmd.Flags().StringVar(&cfg.PrefabsDir, "prefabs", cfg.PrefabsDir, "directory whose yaml overrides embedded prefabs")
	rootCmd.Flags().IntVar(&cfg.TPS, "tps", cfg.TPS, "game ticks per second")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lizzy",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runGame(_ *cobra.Command, _ []string) error {
	if cfg.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", cfg.TPS)
	}

	logger := newLogger(cfg.Debug)
	app := NewApp(cfg, logger)

	game, err := NewGame(app)
	if err != nil {
		var le *assets.LoadError
		if errors.As(err, &le) {
			logger.Fatal("cannot load asset", "path", le.Path, "err", le.Err)
		}
		logger.Fatal("startup failed", "err", err)
	}
	defer game.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(cfg.TPS)

	logger.Info("starting", "level", cfg.Level, "tps", cfg.TPS, "watch", cfg.Watch)
	return ebiten.RunGame(game)
}
