// Package player simulates the runner: horizontal acceleration with drag,
// gravity, discrete collision correction against the course grid, block
// effects, and the life-cycle of death, respawn and victory.
//
// World coordinates grow right (x) and down (y). All state changes happen
// inside Move, Jump, Accelerate and Animate; a Player is driven from a
// single goroutine.
package player

import (
	"math"

	"github.com/vovakirdan/blockrun/internal/block"
	"github.com/vovakirdan/blockrun/internal/course"
)

// State is the life-cycle state of a Player.
type State int

const (
	Alive          State = iota
	DeathAnimating       // Shrink-to-respawn animation in progress
	DeathInstant         // Fell out of the course; respawns on the next Animate
	Won                  // Crossed the finish; terminal for this Player
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case DeathAnimating:
		return "dying"
	case DeathInstant:
		return "fallen"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// maxCorrection bounds the unit steps taken to push an edge out of a block.
const maxCorrection = 4 * course.CellSize

// Physics holds the tuning constants of the simulation.
type Physics struct {
	Gravity       float64 // Downward acceleration, units/s²
	Resistance    float64 // Drag magnitude opposing vx, units/s²
	MaxVelocity   float64 // |vx| above which controller input is ignored
	JumpImpulse   float64 // Upward speed of a normal jump
	FloorBounce   float64 // Upward speed after landing on a bounce block
	CeilingBounce float64 // Downward speed after hitting a bounce block above
	SideBounce    float64 // Horizontal speed after hitting a bounce wall
	Radius        float64 // Nominal collision radius
	DeathGrowth   float64 // Radius growth per Animate call while dying
	DepthLimitRow int     // Band row at which touching ground is a fall death
}

// DefaultPhysics returns the standard tuning.
func DefaultPhysics() Physics {
	return Physics{
		Gravity:       2000,
		Resistance:    400,
		MaxVelocity:   500,
		JumpImpulse:   900,
		FloorBounce:   900,
		CeilingBounce: 1300,
		SideBounce:    800,
		Radius:        course.CellSize / 2,
		DeathGrowth:   10,
		DepthLimitRow: 58,
	}
}

// Player is the simulated runner on one course.
type Player struct {
	m  *course.Map
	ph Physics

	x, y     float64
	vx, vy   float64
	ax       float64
	radius   float64
	state    State
	jumping  bool
	rotation float64
}

// New creates a Player standing at the map's spawn point.
func New(m *course.Map, ph Physics) *Player {
	p := &Player{m: m, ph: ph}
	p.Respawn()
	return p
}

// Respawn resets the player to the spawn point with no motion.
func (p *Player) Respawn() {
	p.x, p.y = p.m.Spawn()
	p.vx, p.vy, p.ax = 0, 0, 0
	p.radius = p.ph.Radius
	p.state = Alive
	p.jumping = true
}

// Map returns the course the player runs on.
func (p *Player) Map() *course.Map {
	return p.m
}

// Position returns the center of the player in world units.
func (p *Player) Position() (x, y float64) {
	return p.x, p.y
}

// Velocity returns the current velocity.
func (p *Player) Velocity() (vx, vy float64) {
	return p.vx, p.vy
}

// Acceleration returns the pending controller acceleration.
func (p *Player) Acceleration() float64 {
	return p.ax
}

// Radius returns the current radius (grows while dying).
func (p *Player) Radius() float64 {
	return p.radius
}

// State returns the life-cycle state.
func (p *Player) State() State {
	return p.state
}

// Rotation returns the accumulated rolling angle in radians.
func (p *Player) Rotation() float64 {
	return p.rotation
}

// Airborne reports whether the player is in a jump or bounce.
func (p *Player) Airborne() bool {
	return p.jumping
}

// SetPhysics swaps the tuning constants. The nominal radius applies from
// the next respawn.
func (p *Player) SetPhysics(ph Physics) {
	p.ph = ph
}

// Accelerate sets the controller input; 0 releases it.
func (p *Player) Accelerate(ax float64) {
	p.ax = ax
}

// Jump starts a normal jump. It is granted only on the ground: not already
// airborne and solid ground within one unit below.
func (p *Player) Jump() bool {
	if p.state != Alive || p.jumping {
		return false
	}
	if !p.solidAt(p.x, p.y+p.radius+1) {
		return false
	}
	p.jumping = true
	p.vy = -p.ph.JumpImpulse
	return true
}

// Move advances the simulation by dt seconds.
func (p *Player) Move(dt float64) {
	if p.state != Alive {
		return
	}

	p.x += p.vx * dt
	if p.solidAt(p.x+p.radius, p.y) {
		p.hitRight()
	} else if p.solidAt(p.x-p.radius, p.y) {
		p.hitLeft()
	}
	if p.state != Alive {
		return
	}

	p.y += p.vy * dt
	if p.solidAt(p.x, p.y+p.radius) {
		p.hitBottom()
		if p.state != Alive {
			return
		}
	}
	if p.solidAt(p.x, p.y-p.radius) {
		p.hitTop()
		if p.state != Alive {
			return
		}
	}

	if p.x > p.m.Finish() {
		p.stop(Won)
		return
	}

	p.rotation += p.vx / p.radius * dt

	p.vy += p.ph.Gravity * dt

	switch {
	case p.vx > 0:
		p.vx -= p.ph.Resistance * dt
	case p.vx < 0:
		p.vx += p.ph.Resistance * dt
	}
	// Over the cap input is ignored, vx itself is not clamped.
	if math.Abs(p.vx) > p.ph.MaxVelocity {
		return
	}
	p.vx += p.ax * dt
}

// Animate is the per-tick hook for death handling. A dying player grows
// until its radius exceeds viewportWidth and then respawns; a fallen player
// respawns at once. Reports whether a respawn happened.
func (p *Player) Animate(viewportWidth float64) bool {
	switch p.state {
	case DeathAnimating:
		if p.radius < viewportWidth {
			p.radius += p.ph.DeathGrowth
			return false
		}
		p.Respawn()
		return true
	case DeathInstant:
		p.Respawn()
		return true
	}
	return false
}

func (p *Player) solidAt(x, y float64) bool {
	return p.m.BlockAt(x, y).IsSolid()
}

// stop zeroes all motion and enters s.
func (p *Player) stop(s State) {
	p.vx, p.vy, p.ax = 0, 0, 0
	p.state = s
}

func (p *Player) hitRight() {
	p.vx = 0
	switch p.m.BlockAt(p.x+p.radius, p.y).Effect() {
	case block.EffectImpulse:
		p.vx = -p.ph.SideBounce
	case block.EffectLethal:
		p.stop(DeathAnimating)
	}
	for i := 0; i < maxCorrection && p.solidAt(p.x+p.radius, p.y); i++ {
		p.x--
	}
}

func (p *Player) hitLeft() {
	p.vx = 0
	switch p.m.BlockAt(p.x-p.radius, p.y).Effect() {
	case block.EffectImpulse:
		p.vx = p.ph.SideBounce
	case block.EffectLethal:
		p.stop(DeathAnimating)
	}
	for i := 0; i < maxCorrection && p.solidAt(p.x-p.radius, p.y); i++ {
		p.x++
	}
}

func (p *Player) hitBottom() {
	p.jumping = false
	p.vy = 0

	// Ground this deep is the course floor: no block effect applies.
	if course.WorldRow(p.y+p.radius) >= p.ph.DepthLimitRow {
		p.stop(DeathInstant)
		return
	}

	switch p.m.BlockAt(p.x, p.y+p.radius).Effect() {
	case block.EffectImpulse:
		p.jumping = true
		p.vy = -p.ph.FloorBounce
	case block.EffectLethal:
		p.stop(DeathAnimating)
		return
	}
	for i := 0; i < maxCorrection && p.solidAt(p.x, p.y+p.radius); i++ {
		p.y--
	}
}

func (p *Player) hitTop() {
	p.vy = 0
	switch p.m.BlockAt(p.x, p.y-p.radius).Effect() {
	case block.EffectImpulse:
		p.jumping = true
		p.vy = p.ph.CeilingBounce
	case block.EffectLethal:
		p.stop(DeathAnimating)
	}
	for i := 0; i < maxCorrection && p.solidAt(p.x, p.y-p.radius); i++ {
		p.y++
	}
}
