// Package course owns the block grid a run takes place on: the immutable Map,
// the Builder that fills it, the procedural Generator and the Future that
// hands a finished Map to the tick loop.
package course

import (
	"fmt"
	"math"

	"github.com/vovakirdan/blockrun/internal/block"
)

// Grid geometry shared by the generator, the physics and the renderer.
const (
	Rows        = 70 // Grid height in blocks
	CellSize    = 30 // World units per block edge
	RowOffset   = 10 // Rows reserved above the playable band
	VisibleRows = 20 // Height of the playable band
	Margin      = 20 // Columns at each end excluded from the main pass
)

// Map is a generated course. It is never mutated after Builder.Build, so any
// number of goroutines may read it without locking.
type Map struct {
	grid      [][]block.Kind
	width     int
	spawnX    float64
	spawnY    float64
	finish    float64
	seed      int64
	platforms []Platform
}

// Width returns the number of grid columns.
func (m *Map) Width() int {
	return m.width
}

// Height returns the number of grid rows.
func (m *Map) Height() int {
	return len(m.grid)
}

// Spawn returns the spawn point in world units.
func (m *Map) Spawn() (x, y float64) {
	return m.spawnX, m.spawnY
}

// Finish returns the x threshold past which a run is won.
func (m *Map) Finish() float64 {
	return m.finish
}

// Seed returns the seed the map was generated from (0 for hand-built maps).
func (m *Map) Seed() int64 {
	return m.seed
}

// Platforms returns a copy of the platforms placed by the generator.
func (m *Map) Platforms() []Platform {
	out := make([]Platform, len(m.platforms))
	copy(out, m.platforms)
	return out
}

// Cell returns the block at the given grid indices.
// Indices outside the grid return block.Solid.
func (m *Map) Cell(row, col int) block.Kind {
	if row < 0 || row >= len(m.grid) || col < 0 || col >= m.width {
		return block.Solid
	}
	return m.grid[row][col]
}

// BlockAt returns the block covering the world point (x, y).
// Coordinates resolving outside the grid return block.Solid, so the player
// can never leave the course through undefined terrain.
func (m *Map) BlockAt(x, y float64) block.Kind {
	row, col := CellIndex(x, y)
	return m.Cell(row, col)
}

// CellIndex converts world coordinates to grid indices.
func CellIndex(x, y float64) (row, col int) {
	col = int(math.Floor(x/CellSize)) + 1
	row = int(math.Floor(y/CellSize)) + RowOffset
	return row, col
}

// WorldRow returns the playable-band row index of a world y coordinate,
// i.e. the grid row without the RowOffset.
func WorldRow(y float64) int {
	return int(math.Floor(y / CellSize))
}

// Builder fills a grid and freezes it into a Map.
type Builder struct {
	m     *Map
	built bool
}

// NewBuilder creates a builder for an all-Air grid of the given width.
func NewBuilder(width int) *Builder {
	if width < 1 {
		panic(fmt.Sprintf("course: invalid width %d", width))
	}
	grid := make([][]block.Kind, Rows)
	for r := range grid {
		grid[r] = make([]block.Kind, width)
	}
	return &Builder{m: &Map{grid: grid, width: width}}
}

// Width returns the width of the grid being built.
func (b *Builder) Width() int {
	return b.m.width
}

// Set places a block. Out-of-range indices are ignored.
func (b *Builder) Set(row, col int, k block.Kind) {
	b.mustBeOpen()
	if row < 0 || row >= Rows || col < 0 || col >= b.m.width {
		return
	}
	b.m.grid[row][col] = k
}

// Get returns the block at the given indices, Solid when out of range.
func (b *Builder) Get(row, col int) block.Kind {
	return b.m.Cell(row, col)
}

// Border forces the outermost ring of the grid to Solid.
func (b *Builder) Border() {
	b.mustBeOpen()
	last := b.m.width - 1
	for r := 0; r < Rows; r++ {
		b.m.grid[r][0] = block.Solid
		b.m.grid[r][last] = block.Solid
	}
	for c := 0; c < b.m.width; c++ {
		b.m.grid[0][c] = block.Solid
		b.m.grid[Rows-1][c] = block.Solid
	}
}

// SetSpawn sets the spawn point in world units.
func (b *Builder) SetSpawn(x, y float64) {
	b.mustBeOpen()
	b.m.spawnX, b.m.spawnY = x, y
}

// SetFinish sets the winning x threshold in world units.
func (b *Builder) SetFinish(x float64) {
	b.mustBeOpen()
	b.m.finish = x
}

// SetSeed records the generation seed.
func (b *Builder) SetSeed(seed int64) {
	b.mustBeOpen()
	b.m.seed = seed
}

// AddPlatform records platform metadata.
func (b *Builder) AddPlatform(p Platform) {
	b.mustBeOpen()
	b.m.platforms = append(b.m.platforms, p)
}

// Build freezes the grid and returns the Map.
// The builder must not be used afterwards.
func (b *Builder) Build() *Map {
	b.mustBeOpen()
	b.built = true
	return b.m
}

func (b *Builder) mustBeOpen() {
	if b.built {
		panic("course: builder used after Build")
	}
}
