package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockrun/internal/config"
	"github.com/vovakirdan/blockrun/internal/core"
	"github.com/vovakirdan/blockrun/internal/runner"
	"github.com/vovakirdan/blockrun/internal/storage"
)

// chromeRows is the number of rows below the game screen (status + help).
const chromeRows = 2

// statusTTL is how long a status message stays visible.
const statusTTL = 3 * time.Second

// ConfigReloadedMsg carries a configuration reloaded from disk.
type ConfigReloadedMsg struct {
	Config config.RunnerConfig
}

// ConfigErrorMsg reports a failed configuration reload.
type ConfigErrorMsg struct {
	Err error
}

// session holds the state shared between the model copies Bubble Tea makes
// and the runner's run handler.
type session struct {
	store  *storage.Store
	player string
	log    *log.Logger

	best    map[int64]time.Duration // Best time per seed, loaded lazily
	lastRun *runner.RunResult
	newBest bool
}

// record persists a finished run. Storage errors are logged and the game
// continues.
func (s *session) record(r runner.RunResult) {
	s.lastRun = &r
	prev, ok := s.bestFor(r.Seed)
	s.newBest = !ok || r.Duration < prev
	if s.newBest {
		s.best[r.Seed] = r.Duration
	}

	if s.store == nil {
		return
	}
	id, err := s.store.SaveRun(storage.Run{
		Player:   s.player,
		Seed:     r.Seed,
		Width:    r.Width,
		Duration: r.Duration,
		Deaths:   r.Deaths,
	})
	if err != nil {
		s.log.Warn("could not save run", "error", err)
		return
	}
	s.log.Debug("run saved", "run_id", id)
}

func (s *session) bestFor(seed int64) (time.Duration, bool) {
	if d, ok := s.best[seed]; ok {
		return d, true
	}
	if s.store == nil {
		return 0, false
	}
	d, ok, err := s.store.BestTime(seed)
	if err != nil {
		s.log.Warn("could not read best time", "error", err)
		return 0, false
	}
	if ok {
		s.best[seed] = d
	}
	return d, ok
}

// Model is the Bubble Tea model for a run.
type Model struct {
	game     *runner.Game
	sess     *session
	screen   *core.Screen
	runtime  core.RuntimeConfig
	input    core.InputFrame
	state    core.GameState
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	status   string
	statusAt time.Time
	quitting bool
}

// Options configures a run.
type Options struct {
	Config  config.RunnerConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; runs are not saved without it
	Player  string         // Name recorded with saved runs
	Logger  *log.Logger
}

// NewModel creates a new Bubble Tea model for a run.
func NewModel(opts Options) Model {
	rc := opts.Runtime
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sess := &session{
		store:  opts.Store,
		player: opts.Player,
		log:    logger,
		best:   make(map[int64]time.Duration),
	}

	game := runner.New(opts.Config,
		runner.WithLogger(logger),
		runner.WithRunHandler(sess.record),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return Model{
		game:    game,
		sess:    sess,
		screen:  core.NewScreen(rc.ScreenW, core.Max(rc.ScreenH-chromeRows, 1)),
		runtime: rc,
		input:   core.NewInputFrame(),
		state:   core.GameState{Loading: true},
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	rc := m.runtime
	rc.ScreenH = m.screen.Height()
	m.game.Reset(rc)

	return tea.Batch(tickCmd(m.runtime.TickRate), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ConfigReloadedMsg:
		m.game.ApplyConfig(msg.Config)
		m.setStatus("config reloaded")
		return m, nil

	case ConfigErrorMsg:
		m.sess.log.Warn("config reload failed", "error", msg.Err)
		m.setStatus("config reload failed: " + msg.Err.Error())
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.game.Close()
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The run keeps going; only
// the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	h := core.Max(msg.Height-chromeRows, 1)
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, h)
	m.game.Resize(msg.Width, h)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	prev := m.state

	result := m.game.Step(m.input, now)
	m.state = result.State
	m.input.Clear()

	if result.Quit {
		m.quitting = true
		m.game.Close()
		return m, tea.Quit
	}

	if !m.state.Loading && (prev.Loading || prev.Seed != m.state.Seed) {
		m.sess.bestFor(m.state.Seed)
	}

	if m.state.Won && !prev.Won && m.sess.lastRun != nil {
		if m.sess.newBest {
			m.setStatus("new best time " + runner.FormatDuration(m.sess.lastRun.Duration))
		} else {
			m.setStatus("finished in " + runner.FormatDuration(m.sess.lastRun.Duration))
		}
	}

	if m.status != "" && now.Sub(m.statusAt) > statusTTL {
		m.status = ""
	}

	return m, tickCmd(m.runtime.TickRate)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusAt = time.Now()
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.setStatus("screenshot failed: " + err.Error())
		return
	}
	dir := filepath.Join(home, ".blockrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.setStatus("screenshot failed: " + err.Error())
		return
	}

	name := fmt.Sprintf("run_%d_%s.txt", m.state.Seed, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.setStatus("screenshot failed: " + err.Error())
		return
	}
	m.setStatus("saved " + path)
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// statusLine returns the line shown under the game screen.
func (m Model) statusLine() string {
	switch {
	case m.state.Loading:
		return m.spinner.View() + " generating course"
	case m.status != "":
		return statusStyle.Render(m.status)
	}
	if best, ok := m.sess.best[m.state.Seed]; ok {
		return dimStyle.Render("best on this course " + runner.FormatDuration(best))
	}
	return dimStyle.Render(fmt.Sprintf("course width %d", m.state.Width))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine() + "\n" + m.help.View(m.keys)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program for a local run. When watchPath is
// set, the configuration file is watched and reloads are applied live.
func Run(opts Options, watchPath string) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if watchPath != "" {
		go func() {
			err := config.Watch(ctx, watchPath,
				func(cfg config.RunnerConfig) { p.Send(ConfigReloadedMsg{Config: cfg}) },
				func(err error) { p.Send(ConfigErrorMsg{Err: err}) },
			)
			if err != nil {
				p.Send(ConfigErrorMsg{Err: err})
			}
		}()
	}

	_, err := p.Run()
	return err
}
