package course

import (
	"math/rand"

	"github.com/vovakirdan/blockrun/internal/block"
)

// Terrain shaping constants.
const (
	PlatformWidth   = 6  // Columns of the start and finish platforms
	StartHeightMin  = 12 // Start platform height range (band rows)
	StartHeightMax  = 16
	FinishHeight    = 18 // Finish platform height (band row)
	MaxHeight       = 6  // Height budget after a normal platform
	MaxHeightBounce = 10 // Height budget after a bounce platform
	ForceHeight     = 20 // currentHeight at which a platform is forced
	MinHeight       = 4  // currentHeight below which no platform is placed
	BounceHeightMin = 15
	BounceHeightMax = 19
	PlatformMinLen  = 3
	PlatformMaxLen  = 10
	HazardMinLen    = 8 // Platforms at least this long may carry a hazard
	HazardInsetMin  = 2 // Hazard run keeps this many..
	HazardInsetMax  = 4 // ..to this many cells clear at each platform end
	SpawnY          = 50
)

// Source is the randomness the generator draws from.
// *rand.Rand satisfies it; tests plug in scripted sources.
type Source interface {
	Intn(n int) int
}

// GenParams configures a Generator.
type GenParams struct {
	MinWidth int    // Smallest grid width in columns
	MaxWidth int    // Largest grid width in columns
	Seed     int64  // Seed for the default source
	Source   Source // Overrides the seeded source when set
}

// DefaultGenParams returns the standard course dimensions.
func DefaultGenParams() GenParams {
	return GenParams{
		MinWidth: 300,
		MaxWidth: 500,
	}
}

// Generator builds courses. A Generator is not safe for concurrent use;
// each generation worker owns its own.
type Generator struct {
	params GenParams
	src    Source
}

// NewGenerator creates a generator. Widths that cannot hold the start and
// finish margins are raised to the smallest usable width.
func NewGenerator(p GenParams) *Generator {
	minUsable := 2*(Margin+PlatformWidth) + 1
	if p.MinWidth < minUsable {
		p.MinWidth = minUsable
	}
	if p.MaxWidth < p.MinWidth {
		p.MaxWidth = p.MinWidth
	}

	src := p.Source
	if src == nil {
		src = rand.New(rand.NewSource(p.Seed))
	}
	return &Generator{params: p, src: src}
}

// Params returns the effective generator parameters.
func (g *Generator) Params() GenParams {
	return g.params
}

// between returns a uniform int in [min, max].
func (g *Generator) between(min, max int) int {
	return min + g.src.Intn(max-min+1)
}

// Generate produces a complete course.
func (g *Generator) Generate() *Map {
	b := NewBuilder(g.between(g.params.MinWidth, g.params.MaxWidth))
	b.SetSeed(g.params.Seed)
	b.Border()

	lastHeight := g.placeEnds(b)
	g.shape(b, lastHeight)

	return b.Build()
}

// placeEnds lays the start and finish platforms and sets spawn and finish.
// Returns the start platform height.
func (g *Generator) placeEnds(b *Builder) int {
	width := b.Width()

	b.SetSpawn(float64((Margin+3)*CellSize), SpawnY)
	b.SetFinish(float64((width - Margin - 3) * CellSize))

	startHeight := g.between(StartHeightMin, StartHeightMax)
	for c := Margin; c < Margin+PlatformWidth; c++ {
		b.Set(startHeight+RowOffset, c, block.Solid)
	}

	for c := width - Margin - PlatformWidth; c < width-Margin; c++ {
		b.Set(FinishHeight+RowOffset, c, block.Solid)
	}

	return startHeight
}

// scanRange returns the first and last column of the main pass.
func scanRange(width int) (first, last int) {
	return Margin + PlatformWidth, width - Margin - PlatformWidth - 1
}

type decision int

const (
	decideOpen decision = iota
	decideNormal
	decideBounce
)

// decide maps one of 8 equally likely draws to a terrain decision.
//
// TODO: only draw 7 selects a bounce platform and the trailing fallback is
// unreachable for Intn(8); confirm the intended bounce ratio before
// repartitioning.
func decide(r int) decision {
	switch {
	case r < 5:
		return decideOpen
	case r < 7:
		return decideNormal
	case r < 8:
		return decideBounce
	default:
		return decideOpen
	}
}

// shape runs the main pass between the start and finish platforms.
func (g *Generator) shape(b *Builder, lastHeight int) {
	budget := MaxHeight
	current := lastHeight - budget

	first, last := scanRange(b.Width())
	for col := first; col <= last; {
		placed := 0

		switch {
		case current >= ForceHeight:
			placed = g.platform(b, block.Solid, col, current)
			lastHeight = current
			budget = MaxHeight
		case current < MinHeight:
			budget--
		default:
			switch decide(g.src.Intn(8)) {
			case decideOpen:
				budget--
			case decideNormal:
				placed = g.platform(b, block.Solid, col, current)
				lastHeight = current
				budget = MaxHeight
			case decideBounce:
				current = g.between(BounceHeightMin, BounceHeightMax)
				placed = g.platform(b, block.Bounce, col, current)
				lastHeight = current
				budget = MaxHeightBounce
			}
		}

		current = lastHeight - budget

		if placed > 0 {
			col += placed
		} else {
			col++
		}
	}
}

// platform places a run of kind at band height starting at column start.
// Returns the clipped length, always at least 1.
func (g *Generator) platform(b *Builder, kind block.Kind, start, height int) int {
	limit := b.Width() - Margin - PlatformWidth

	length := g.between(PlatformMinLen, PlatformMaxLen)
	if start+length > limit {
		length = limit - start
	}
	if length < 1 {
		length = 1
	}

	row := height + RowOffset
	for c := start; c < start+length; c++ {
		b.Set(row, c, kind)
	}

	p := Platform{Column: start, Row: row, Length: length, Kind: kind}

	if length >= HazardMinLen && g.src.Intn(2) == 0 {
		from := start + g.between(HazardInsetMin, HazardInsetMax)
		to := start + length - g.between(HazardInsetMin, HazardInsetMax)
		for c := from; c < to; c++ {
			b.Set(row, c, block.Hazard)
		}
		if to > from {
			p.HazardFrom, p.HazardTo = from, to
		}
	}

	b.AddPlatform(p)
	return length
}
