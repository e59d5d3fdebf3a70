package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockrun/internal/config"
	"github.com/vovakirdan/blockrun/internal/core"
	"github.com/vovakirdan/blockrun/internal/platform/tui"
	"github.com/vovakirdan/blockrun/internal/storage"
)

var flagWatchConfig bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run generated courses",
	Long: `Generate a course and roll from the start platform to the finish.

Controls:
  Left/A, Right/D - Accelerate (held while the key repeats)
  Space/Up/W      - Jump; on the victory screen, next course
  P/Esc           - Pause
  R               - Restart the current course
  N               - Abandon the course and generate another
  Ctrl+S          - Save a text screenshot
  Q/Ctrl+C        - Quit

Blocks:
  █ solid    ▒ bounce (throws you back)    ▲ hazard (fatal)

Examples:
  blockrun play
  blockrun play --seed 42
  blockrun play --difficulty easy
  blockrun play --config ./runner.toml --watch-config`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatchConfig, "watch-config", false, "Reload the config file when it changes")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	watchPath := ""
	if flagWatchConfig {
		watchPath = config.Resolve(flagConfig)
		if watchPath == "" {
			fmt.Fprintln(os.Stderr, "Warning: --watch-config needs a config file; using embedded defaults without reload")
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Player: storage.LocalPlayer,
		Logger: logger,
	}, watchPath)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
