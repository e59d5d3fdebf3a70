package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/blockrun/internal/player"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Decode(DefaultYAML(), FormatYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("embedded = %+v\nhardcoded = %+v", cfg, DefaultRunnerConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestToPhysicsMatchesPlayerDefaults(t *testing.T) {
	if got := DefaultRunnerConfig().ToPhysics(); got != player.DefaultPhysics() {
		t.Errorf("ToPhysics() = %+v, want %+v", got, player.DefaultPhysics())
	}
}

func TestGenParams(t *testing.T) {
	p := DefaultRunnerConfig().GenParams(42)
	if p.MinWidth != 300 || p.MaxWidth != 500 || p.Seed != 42 || p.Source != nil {
		t.Errorf("GenParams = %+v", p)
	}
}

func TestLoadYAMLPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := "physics:\n  gravity: 1500\ncourse:\n  min_width: 320\n  max_width: 340\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Physics.Gravity != 1500 {
		t.Errorf("gravity = %v, want 1500", cfg.Physics.Gravity)
	}
	if cfg.Course.MinWidth != 320 || cfg.Course.MaxWidth != 340 {
		t.Errorf("course = %+v", cfg.Course)
	}
	// Untouched keys keep their defaults.
	if cfg.Physics.JumpImpulse != 900 || cfg.Camera.CellWidth != 2 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.toml")
	data := "[physics]\nside_bounce = 700.0\n\n[controls]\nacceleration = 900.0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Physics.SideBounce != 700 || cfg.Controls.Acceleration != 900 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Physics.Gravity != 2000 {
		t.Errorf("gravity = %v, want default 2000", cfg.Physics.Gravity)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatYAML, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			cfg.Physics.Gravity = 1234
			data, err := Encode(cfg, f)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(data, f)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != cfg {
				t.Errorf("round trip = %+v, want %+v", got, cfg)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("bad yaml err = %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("course:\n  min_width: 400\n  max_width: 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil || !strings.Contains(err.Error(), "max_width") {
		t.Errorf("invalid config err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
		want   string
	}{
		{"radius zero", func(c *RunnerConfig) { c.Physics.Radius = 0 }, "physics.radius"},
		{"radius too big", func(c *RunnerConfig) { c.Physics.Radius = 30 }, "cell size"},
		{"negative gravity", func(c *RunnerConfig) { c.Physics.Gravity = -1 }, "physics.gravity"},
		{"depth limit", func(c *RunnerConfig) { c.Physics.DepthLimitRow = 70 }, "depth_limit_row"},
		{"inverted widths", func(c *RunnerConfig) { c.Course.MaxWidth = 10 }, "max_width"},
		{"zero width", func(c *RunnerConfig) { c.Course.MinWidth = 0 }, "min_width"},
		{"hold timeout", func(c *RunnerConfig) { c.Controls.HoldTimeout = 0 }, "hold_timeout"},
		{"initial delta", func(c *RunnerConfig) { c.Timing.InitialDelta = 0 }, "initial_delta"},
		{"cell width", func(c *RunnerConfig) { c.Camera.CellWidth = 0 }, "cell_width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.toml":     FormatTOML,
		"a.TOML":     FormatTOML,
		"a.yaml":     FormatYAML,
		"a.yml":      FormatYAML,
		"configfile": FormatYAML,
	}
	for path, want := range tests {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestResolveCustom(t *testing.T) {
	if got := Resolve("x.yaml"); got != "x.yaml" {
		t.Errorf("Resolve = %q", got)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultRunnerConfig()
	if err := ApplyPreset(&cfg, PresetNormal); err != nil || cfg != DefaultRunnerConfig() {
		t.Errorf("normal preset changed config: %v", err)
	}

	easy := DefaultRunnerConfig()
	hard := DefaultRunnerConfig()
	if err := ApplyPreset(&easy, PresetEasy); err != nil {
		t.Fatal(err)
	}
	if err := ApplyPreset(&hard, PresetHard); err != nil {
		t.Fatal(err)
	}
	if easy.Course.MaxWidth >= hard.Course.MinWidth {
		t.Errorf("easy courses (%+v) should be shorter than hard (%+v)", easy.Course, hard.Course)
	}
	for _, c := range []RunnerConfig{easy, hard} {
		if err := c.Validate(); err != nil {
			t.Errorf("preset config invalid: %v", err)
		}
	}

	if err := ApplyPreset(&cfg, "insane"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, DefaultYAML(), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan RunnerConfig, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c RunnerConfig) { got <- c }, nil)
	}()

	updated := bytes.Replace(DefaultYAML(), []byte("gravity: 2000"), []byte("gravity: 1800"), 1)

	// Keep writing until the watcher is up and reports the change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		if err := os.WriteFile(path, updated, 0o644); err != nil {
			t.Fatal(err)
		}
		select {
		case cfg := <-got:
			if cfg.Physics.Gravity != 1800 {
				t.Fatalf("reloaded gravity = %v, want 1800", cfg.Physics.Gravity)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch returned %v", err)
			}
			return
		case <-deadline:
			t.Fatal("no reload within 5s")
		case <-tick.C:
		}
	}
}
