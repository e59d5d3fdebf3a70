package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockrun/internal/config"
	"github.com/vovakirdan/blockrun/internal/runner"
)

// MenuItem is a selectable difficulty in the menu.
type MenuItem struct {
	Preset config.Preset
	Title  string
	Note   string
}

// menuItems lists the difficulty choices in menu order.
var menuItems = []MenuItem{
	{Preset: config.PresetEasy, Title: "Easy", Note: "short courses, quick acceleration"},
	{Preset: config.PresetNormal, Title: "Normal", Note: "the server's configured course"},
	{Preset: config.PresetHard, Title: "Hard", Note: "long courses, sluggish acceleration"},
}

// MenuKeyMap defines the key bindings for the difficulty menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel lets a player pick a difficulty and then hosts the run. Leaving
// the run returns to the menu.
type MenuModel struct {
	opts     Options
	keys     MenuKeyMap
	cursor   int
	width    int
	height   int
	run      *Model
	ticking  bool // A game tick is in flight
	quitting bool
}

// NewMenuModel creates a menu. opts is the template every run starts from;
// the chosen preset is applied to a copy of opts.Config.
func NewMenuModel(opts Options) MenuModel {
	return MenuModel{
		opts:   opts,
		keys:   DefaultMenuKeyMap(),
		cursor: 1,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu and the hosted run.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}

	if m.run != nil {
		return m.updateRun(msg)
	}

	switch msg := msg.(type) {
	case TickMsg:
		// The tick chain of a finished run ends here.
		m.ticking = false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			return m.start(menuItems[m.cursor])
		}
	}

	return m, nil
}

// start launches a run with the preset applied.
func (m MenuModel) start(item MenuItem) (tea.Model, tea.Cmd) {
	opts := m.opts
	if err := config.ApplyPreset(&opts.Config, item.Preset); err != nil {
		return m, nil
	}
	opts.Runtime.ScreenW = m.width
	opts.Runtime.ScreenH = m.height
	opts.Runtime.Seed = 0

	run := NewModel(opts)
	cmd := run.Init()
	if m.ticking {
		// Reuse the pending tick instead of starting a second chain.
		cmd = run.spinner.Tick
	}
	m.ticking = true
	m.run = &run
	return m, cmd
}

// updateRun forwards msg to the run. A quitting run returns control to
// the menu instead of ending the program.
func (m MenuModel) updateRun(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.run.Update(msg)
	run := next.(Model)

	if run.quitting {
		_, fromTick := msg.(TickMsg)
		m.ticking = !fromTick
		m.run = nil
		return m, nil
	}

	m.run = &run
	return m, cmd
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	menuNoteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu or the hosted run.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.run != nil {
		return m.run.View()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("B L O C K R U N", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty", m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := fmt.Sprintf("  %-7s %s", item.Title, item.Note)
		if i == m.cursor {
			line = fmt.Sprintf("> %-7s %s", item.Title, item.Note)
			b.WriteString(menuCursorStyle.Render(centerText(line, m.width)))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	if best := m.bestLine(); best != "" {
		b.WriteString("\n")
		b.WriteString(menuNoteStyle.Render(centerText(best, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Start  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// bestLine summarizes the runs table, empty without a store or runs.
func (m MenuModel) bestLine() string {
	if m.opts.Store == nil {
		return ""
	}
	stats, err := m.opts.Store.Stats()
	if err != nil || stats.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs finished  |  best %s", stats.Runs, runner.FormatDuration(stats.Best))
}

// Selected returns the highlighted menu item.
func (m MenuModel) Selected() MenuItem {
	return menuItems[m.cursor]
}

// Playing reports whether a run is active.
func (m MenuModel) Playing() bool {
	return m.run != nil
}
