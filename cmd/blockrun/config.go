package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockrun/internal/config"
)

var flagConfigFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the runner configuration after the config file search and the
difficulty preset have been applied. The output is a complete config
file that can be saved and edited.

Search order:
  1. --config <path>
  2. ~/.blockrun/configs/runner.yaml (or runner.toml)
  3. ./configs/runner.yaml (or runner.toml)
  4. Built-in defaults

Examples:
  blockrun config
  blockrun config --format toml > runner.toml
  blockrun config --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigFormat, "format", "yaml", "Output format: yaml or toml")
}

func runConfig(_ *cobra.Command, _ []string) {
	var format config.Format
	switch flagConfigFormat {
	case "yaml", "yml":
		format = config.FormatYAML
	case "toml":
		format = config.FormatTOML
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want yaml or toml)\n", flagConfigFormat)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Encode(cfg, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}

	if path := config.Resolve(flagConfig); path != "" {
		fmt.Fprintf(os.Stderr, "# loaded from %s\n", path)
	} else {
		fmt.Fprintln(os.Stderr, "# built-in defaults")
	}
	os.Stdout.Write(data)
}
