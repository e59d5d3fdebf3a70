// Package runner hosts one player on generated courses. It owns the course
// hand-off from the generation goroutine, the simulation clock, controller
// input, the camera, and rendering into a core.Screen.
//
// A Game is driven from a single goroutine (the platform tick loop); it is
// not safe for concurrent use.
package runner

import (
	"context"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockrun/internal/config"
	"github.com/vovakirdan/blockrun/internal/core"
	"github.com/vovakirdan/blockrun/internal/course"
	"github.com/vovakirdan/blockrun/internal/player"
)

// InitialDelta is the default dt of the first tick on a fresh course, when
// no previous tick time exists.
const InitialDelta = 5 * time.Microsecond

// RunResult describes one finished run.
type RunResult struct {
	Seed     int64
	Width    int
	Duration time.Duration
	Deaths   int
}

// Loader starts producing the course for seed.
type Loader func(ctx context.Context, seed int64) *course.Future

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for course and run events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithRunHandler registers fn to receive every finished run, once per win.
func WithRunHandler(fn func(RunResult)) Option {
	return func(g *Game) {
		g.onRun = fn
	}
}

// WithLoader replaces course generation.
func WithLoader(l Loader) Option {
	return func(g *Game) {
		if l != nil {
			g.load = l
		}
	}
}

// Game is the runner game host.
type Game struct {
	cfg     config.RunnerConfig
	runtime core.RuntimeConfig
	log     *log.Logger
	onRun   func(RunResult)
	load    Loader

	seeds  *rand.Rand
	seed   int64
	cancel context.CancelFunc
	ready  chan *course.Map

	m       *course.Map
	p       *player.Player
	last    time.Time
	elapsed time.Duration
	deaths  int
	paused  bool
	won     bool

	hold   holdInput
	camera camera
}

// New creates a Game. Call Reset before the first Step.
func New(cfg config.RunnerConfig, opts ...Option) *Game {
	g := &Game{
		cfg: cfg,
		log: log.New(io.Discard),
	}
	g.load = g.generate
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) generate(ctx context.Context, seed int64) *course.Future {
	return course.Load(ctx, course.NewGenerator(g.cfg.GenParams(seed)))
}

// Reset starts over with a fresh course for the runtime seed.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.seeds = rand.New(rand.NewSource(seed))
	g.newCourse(seed)
}

// newCourse abandons the active course and starts generating the next one.
// The player and map are dropped before generation begins.
func (g *Game) newCourse(seed int64) {
	if g.cancel != nil {
		g.cancel()
	}
	g.p = nil
	g.m = nil
	g.seed = seed

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel

	ready := make(chan *course.Map, 1)
	g.ready = ready

	g.log.Debug("generating course", "seed", seed)
	g.load(ctx, seed).OnFinished(func(m *course.Map) {
		ready <- m
	})
}

// startCourse places a fresh player on m and zeroes the run.
func (g *Game) startCourse(m *course.Map) {
	g.m = m
	g.p = player.New(m, g.cfg.ToPhysics())
	g.last = time.Time{}
	g.elapsed = 0
	g.deaths = 0
	g.paused = false
	g.won = false
	g.hold = holdInput{}

	x, _ := m.Spawn()
	g.camera.snap(x)

	st := m.Stats()
	g.log.Info("course ready",
		"seed", g.seed, "width", m.Width(),
		"platforms", st.Platforms, "bounce", st.Bounce, "hazards", st.Hazards)
}

// Step advances the game to now. The first tick on a course uses the
// configured initial delta; later ticks use the wall-clock gap, clamped to
// the configured maximum.
func (g *Game) Step(in core.InputFrame, now time.Time) core.StepResult {
	if in.Has(core.ActionQuit) {
		return core.StepResult{State: g.State(), Quit: true}
	}

	if in.Has(core.ActionNewCourse) {
		g.newCourse(g.nextSeed())
		return core.StepResult{State: g.State()}
	}

	if g.p == nil {
		select {
		case m := <-g.ready:
			g.startCourse(m)
		default:
			return core.StepResult{State: g.State()}
		}
	}

	if g.won {
		if in.Has(core.ActionJump) {
			g.newCourse(g.nextSeed())
		} else if in.Has(core.ActionRestart) {
			g.startCourse(g.m)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.log.Debug("course restarted", "seed", g.seed)
		g.startCourse(g.m)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		g.last = now
		return core.StepResult{State: g.State()}
	}

	dt := g.delta(now)
	g.advance(in, dt)

	return core.StepResult{State: g.State()}
}

// delta returns the seconds elapsed since the previous tick.
func (g *Game) delta(now time.Time) float64 {
	defer func() { g.last = now }()
	if g.last.IsZero() {
		return g.cfg.Timing.InitialDelta
	}
	dt := now.Sub(g.last).Seconds()
	return core.ClampF(dt, 0, g.cfg.Timing.MaxDelta)
}

func (g *Game) advance(in core.InputFrame, dt float64) {
	p := g.p

	g.hold.update(in, dt, g.cfg.Controls.HoldTimeout)
	p.Accelerate(float64(g.hold.dir) * g.cfg.Controls.Acceleration)
	if in.Has(core.ActionJump) {
		p.Jump()
	}

	before := p.State()
	p.Move(dt)
	g.elapsed += time.Duration(math.Round(dt * float64(time.Second)))

	switch after := p.State(); {
	case after == player.Won:
		g.finish()
		return
	case before == player.Alive && after != player.Alive:
		g.deaths++
		x, y := p.Position()
		g.log.Debug("player died", "state", after, "x", x, "y", y, "deaths", g.deaths)
	}

	if p.Animate(g.viewportWidth()) {
		g.hold = holdInput{}
	}

	x, _ := p.Position()
	g.camera.follow(x, g.cfg.Camera.Follow, dt)
}

// finish records the win and reports the run exactly once.
func (g *Game) finish() {
	g.won = true
	res := RunResult{
		Seed:     g.seed,
		Width:    g.m.Width(),
		Duration: g.elapsed,
		Deaths:   g.deaths,
	}
	g.log.Info("course cleared", "seed", res.Seed, "time", res.Duration, "deaths", res.Deaths)
	if g.onRun != nil {
		g.onRun(res)
	}
}

// viewportWidth is the screen width in world units.
func (g *Game) viewportWidth() float64 {
	cw := g.cfg.Camera.CellWidth
	if cw < 1 {
		cw = 1
	}
	return float64(g.runtime.ScreenW/cw) * course.CellSize
}

func (g *Game) nextSeed() int64 {
	if g.seeds == nil {
		g.seeds = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g.seeds.Int63()
}

// Resize updates the screen size used for the viewport.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// ApplyConfig swaps the configuration. Physics and controls apply at once;
// course dimensions apply to the next generated course.
func (g *Game) ApplyConfig(cfg config.RunnerConfig) {
	g.cfg = cfg
	if g.p != nil {
		g.p.SetPhysics(cfg.ToPhysics())
	}
	g.log.Info("config applied",
		"gravity", cfg.Physics.Gravity, "acceleration", cfg.Controls.Acceleration,
		"min_width", cfg.Course.MinWidth, "max_width", cfg.Course.MaxWidth)
}

// Config returns the active configuration.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Player returns the active player, nil while a course is loading.
func (g *Game) Player() *player.Player {
	return g.p
}

// Map returns the active course, nil while loading.
func (g *Game) Map() *course.Map {
	return g.m
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Loading: g.p == nil,
		Won:     g.won,
		Paused:  g.paused,
		Deaths:  g.deaths,
		Elapsed: g.elapsed,
		Seed:    g.seed,
	}
	if g.p != nil {
		st.Dying = g.p.State() == player.DeathAnimating
		st.Width = g.m.Width()
		st.Progress = g.progress()
	}
	return st
}

func (g *Game) progress() float64 {
	if g.won {
		return 1
	}
	sx, _ := g.m.Spawn()
	x, _ := g.p.Position()
	span := g.m.Finish() - sx
	if span <= 0 {
		return 0
	}
	return core.ClampF((x-sx)/span, 0, 1)
}

// Close cancels any generation in flight.
func (g *Game) Close() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}
