package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockrun/internal/config"
	"github.com/vovakirdan/blockrun/internal/core"
)

func newTestMenu() MenuModel {
	return NewMenuModel(Options{
		Config:  config.DefaultRunnerConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60},
		Logger:  log.New(io.Discard),
	})
}

func sendMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(MenuModel), cmd
}

func TestMenuNavigation(t *testing.T) {
	m := newTestMenu()
	if m.Selected().Preset != config.PresetNormal {
		t.Fatalf("initial selection = %q, want normal", m.Selected().Preset)
	}

	m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Selected().Preset != config.PresetEasy {
		t.Errorf("selection = %q, want easy (clamped at top)", m.Selected().Preset)
	}

	for range 5 {
		m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Selected().Preset != config.PresetHard {
		t.Errorf("selection = %q, want hard (clamped at bottom)", m.Selected().Preset)
	}
}

func TestMenuStartAppliesPreset(t *testing.T) {
	m := newTestMenu()
	m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})

	m, cmd := sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	defer m.run.game.Close()

	if !m.Playing() {
		t.Fatal("enter should start a run")
	}
	if cmd == nil {
		t.Error("starting a run should schedule ticks")
	}
	if got := m.run.game.Config().Course.MaxWidth; got != 360 {
		t.Errorf("max width = %d, want the easy preset's 360", got)
	}
	if m.opts.Config.Course.MaxWidth != config.DefaultRunnerConfig().Course.MaxWidth {
		t.Error("preset must not change the menu's template config")
	}
}

func TestMenuRunQuitReturnsToMenu(t *testing.T) {
	m := newTestMenu()
	m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := sendMenu(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m.Playing() {
		t.Fatal("quitting the run should return to the menu")
	}
	if cmd != nil {
		t.Error("leaving a run must not end the program")
	}
	if !m.ticking {
		t.Error("the run's last tick is still in flight")
	}
	if !strings.Contains(m.View(), "Select difficulty") {
		t.Error("menu should be shown again")
	}

	m, _ = sendMenu(t, m, TickMsg(time.Now()))
	if m.ticking {
		t.Error("a tick reaching the menu ends the chain")
	}

	_, cmd = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit on the menu should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit on the menu should end the program")
	}
}

func TestMenuResizeReachesRun(t *testing.T) {
	m := newTestMenu()
	m, _ = sendMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	defer m.run.game.Close()

	if m.run.screen.Width() != 120 || m.run.screen.Height() != 40-chromeRows {
		t.Errorf("run screen = %dx%d, want 120x%d", m.run.screen.Width(), m.run.screen.Height(), 40-chromeRows)
	}
}
