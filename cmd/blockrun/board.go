package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockrun/internal/platform/tui"
	"github.com/vovakirdan/blockrun/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive runs board",
	Long: `Browse best and recent runs with run statistics.

Controls:
  Tab      - Switch between best and recent runs
  Up/Down  - Scroll
  Q/Esc    - Quit`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunBoard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running board: %v\n", err)
		os.Exit(1)
	}
}
