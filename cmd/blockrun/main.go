// blockrun is a terminal side-scroller: procedurally generated block
// courses, a rolling runner with simple physics, and a best-times board.
//
// Usage:
//
//	blockrun play            - Run generated courses in the terminal
//	blockrun gen             - Generate courses and print stats or previews
//	blockrun runs            - Print the best finished runs
//	blockrun board           - Interactive runs board
//	blockrun serve           - Start SSH server for remote play
//	blockrun config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set the course seed for reproducible courses
//	--db <path>           - Set database path (default: ~/.blockrun/runs.db)
//	--config <path>       - Runner config file (YAML or TOML)
//	--difficulty <name>   - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockrun/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockrun",
	Short: "blockrun - roll through generated block courses in your terminal",
	Long: `blockrun generates a side-scrolling course of solid, bounce and hazard
blocks and lets you roll a ball from the start platform to the finish.

Available commands:
  play     - Run generated courses
  gen      - Generate courses and print stats or previews
  runs     - Print the best finished runs
  board    - Interactive runs board
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  blockrun play
  blockrun play --seed 42 --difficulty hard
  blockrun gen --count 8 --preview
  blockrun serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Course seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockrun/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to runner config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the runner config and applies the difficulty preset.
func loadConfig() (config.RunnerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, config.Preset(flagDifficulty)); err != nil {
		return cfg, err
	}
	return cfg, nil
}
