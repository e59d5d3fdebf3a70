package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/blockrun/internal/block"
	"github.com/vovakirdan/blockrun/internal/core"
	"github.com/vovakirdan/blockrun/internal/course"
	"github.com/vovakirdan/blockrun/internal/platform/tui"
	"github.com/vovakirdan/blockrun/internal/runner"
)

var (
	flagGenCount   int
	flagGenPreview bool
	flagGenWidth   int
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate courses and print stats or previews",
	Long: `Generate one or more courses without playing them.

Courses are generated in parallel. With --seed the courses use seed,
seed+1, seed+2 and so on, so the same command always prints the same
courses. The preview draws the playable band in chunks that fit the
terminal width.

Examples:
  blockrun gen
  blockrun gen --seed 42 --preview
  blockrun gen --count 16 --difficulty hard
  blockrun gen --width 120 --preview`,
	Args: cobra.NoArgs,
	Run:  runGen,
}

func init() {
	genCmd.Flags().IntVar(&flagGenCount, "count", 1, "Number of courses to generate")
	genCmd.Flags().BoolVar(&flagGenPreview, "preview", false, "Draw each course")
	genCmd.Flags().IntVar(&flagGenWidth, "width", 0, "Fixed course width in columns (0 = config range)")
}

func runGen(_ *cobra.Command, _ []string) {
	if flagGenCount < 1 {
		fmt.Fprintln(os.Stderr, "Error: --count must be at least 1")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagGenWidth > 0 {
		cfg.Course.MinWidth = flagGenWidth
		cfg.Course.MaxWidth = flagGenWidth
	}

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	maps, err := generate(context.Background(), func(i int) course.GenParams {
		return cfg.GenParams(base + int64(i))
	}, flagGenCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating courses: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-20s  %-5s  %-9s  %-6s  %-7s  %-6s  %-6s  %s\n",
		"Seed", "Width", "Platforms", "Bounce", "Hazards", "Solid", "Spring", "Spikes")
	fmt.Printf("  %-20s  %-5s  %-9s  %-6s  %-7s  %-6s  %-6s  %s\n",
		"----", "-----", "---------", "------", "-------", "-----", "------", "------")
	for _, m := range maps {
		s := m.Stats()
		fmt.Printf("  %-20d  %-5d  %-9d  %-6d  %-7d  %-6d  %-6d  %d\n",
			m.Seed(), s.Width, s.Platforms, s.Bounce, s.Hazards,
			s.Blocks[block.Solid], s.Blocks[block.Bounce], s.Blocks[block.Hazard])
	}

	if !flagGenPreview {
		return
	}

	cols := 80
	color := term.IsTerminal(int(os.Stdout.Fd()))
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && w > 0 {
		cols = w
	}
	for _, m := range maps {
		fmt.Println()
		fmt.Printf("Seed %d\n", m.Seed())
		printPreview(m, cols, color)
	}
}

// generate runs count generators in parallel, one goroutine per course,
// bounded by the CPU count. Results keep the index order.
func generate(ctx context.Context, params func(i int) course.GenParams, count int) ([]*course.Map, error) {
	maps := make([]*course.Map, count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range count {
		g.Go(func() error {
			m, err := course.Load(ctx, course.NewGenerator(params(i))).Wait(ctx)
			if err != nil {
				return fmt.Errorf("course %d: %w", i, err)
			}
			maps[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return maps, nil
}

// printPreview draws the band of m in chunks of cols grid columns, one
// screen column per grid column.
func printPreview(m *course.Map, cols int, color bool) {
	screen := core.NewScreen(cols, course.VisibleRows)
	for left := 0; left < m.Width(); left += cols {
		screen.Clear()
		runner.DrawCourse(screen, m, left, 1, 0)
		if color {
			fmt.Println(tui.RenderScreen(screen))
		} else {
			fmt.Println(screen.String())
		}
		fmt.Println()
	}
}
