package course

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/blockrun/internal/block"
)

func generate(seed int64) *Map {
	p := DefaultGenParams()
	p.Seed = seed
	return NewGenerator(p).Generate()
}

func TestGenerateWidthRange(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		m := generate(seed)
		if m.Width() < 300 || m.Width() > 500 {
			t.Fatalf("seed %d: width %d outside [300, 500]", seed, m.Width())
		}
		if m.Height() != Rows {
			t.Fatalf("seed %d: height %d, expected %d", seed, m.Height(), Rows)
		}
	}
}

func TestGenerateBorderIsSolid(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		m := generate(seed)
		last := m.Width() - 1
		for r := 0; r < Rows; r++ {
			if m.Cell(r, 0) != block.Solid || m.Cell(r, last) != block.Solid {
				t.Fatalf("seed %d: side border broken at row %d", seed, r)
			}
		}
		for c := 0; c <= last; c++ {
			if m.Cell(0, c) != block.Solid || m.Cell(Rows-1, c) != block.Solid {
				t.Fatalf("seed %d: top/bottom border broken at column %d", seed, c)
			}
		}
	}
}

func TestGenerateSpawnAboveStartPlatform(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		m := generate(seed)
		x, y := m.Spawn()
		row, col := CellIndex(x, y)

		if m.Cell(row, col).IsSolid() {
			t.Fatalf("seed %d: spawn inside a solid block", seed)
		}

		// First solid block below spawn
		ground := -1
		for r := row + 1; r < Rows; r++ {
			if m.Cell(r, col).IsSolid() {
				ground = r
				break
			}
		}
		if ground < 0 || ground == Rows-1 {
			t.Fatalf("seed %d: no platform below spawn", seed)
		}

		// Measure the solid run under the spawn column
		left, right := col, col
		for m.Cell(ground, left-1) == block.Solid && left-1 > 0 {
			left--
		}
		for m.Cell(ground, right+1) == block.Solid && right+1 < m.Width()-1 {
			right++
		}
		if right-left+1 < PlatformWidth {
			t.Errorf("seed %d: spawn run is %d columns, expected >= %d", seed, right-left+1, PlatformWidth)
		}
	}
}

func TestGenerateFinishThreshold(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		m := generate(seed)
		x, _ := m.Spawn()
		limit := float64((m.Width() - Margin) * CellSize)
		if m.Finish() <= x {
			t.Errorf("seed %d: finish %v not past spawn %v", seed, m.Finish(), x)
		}
		if m.Finish() >= limit {
			t.Errorf("seed %d: finish %v not before far margin %v", seed, m.Finish(), limit)
		}
	}
}

func TestGeneratePlatformBounds(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		m := generate(seed)
		first, _ := scanRange(m.Width())
		limit := m.Width() - Margin - PlatformWidth

		platforms := m.Platforms()
		if len(platforms) == 0 {
			t.Fatalf("seed %d: no platforms generated", seed)
		}

		prevEnd := first
		for _, p := range platforms {
			if p.Length < 1 || p.Length > PlatformMaxLen {
				t.Errorf("seed %d: platform length %d out of range", seed, p.Length)
			}
			if p.Column < first {
				t.Errorf("seed %d: platform at column %d before scan start %d", seed, p.Column, first)
			}
			if p.End() > limit {
				t.Errorf("seed %d: platform %d+%d crosses limit %d", seed, p.Column, p.Length, limit)
			}
			if p.Column < prevEnd {
				t.Errorf("seed %d: platform at %d overlaps previous ending at %d", seed, p.Column, prevEnd)
			}
			prevEnd = p.End()

			band := p.Row - RowOffset
			if band < MinHeight || band > ForceHeight {
				t.Errorf("seed %d: platform band row %d outside [%d, %d]", seed, band, MinHeight, ForceHeight)
			}
		}
	}
}

func TestGenerateHazardPlacement(t *testing.T) {
	hazards := 0
	for seed := int64(1); seed <= 100; seed++ {
		m := generate(seed)

		owned := make(map[[2]int]bool)
		for _, p := range m.Platforms() {
			if !p.HasHazard() {
				continue
			}
			hazards++
			if p.Length <= 7 {
				t.Errorf("seed %d: hazard on platform of length %d", seed, p.Length)
			}
			if p.HazardFrom < p.Column+HazardInsetMin {
				t.Errorf("seed %d: hazard starts %d cells into platform", seed, p.HazardFrom-p.Column)
			}
			if p.HazardTo > p.End()-HazardInsetMin {
				t.Errorf("seed %d: hazard ends %d cells before platform end", seed, p.End()-p.HazardTo)
			}
			for c := p.HazardFrom; c < p.HazardTo; c++ {
				owned[[2]int{p.Row, c}] = true
			}
		}

		for r := 0; r < Rows; r++ {
			for c := 0; c < m.Width(); c++ {
				if m.Cell(r, c) == block.Hazard && !owned[[2]int{r, c}] {
					t.Fatalf("seed %d: stray hazard at (%d, %d)", seed, r, c)
				}
			}
		}
	}
	if hazards == 0 {
		t.Error("expected at least one hazard run over 100 seeds")
	}
}

func TestGenerateFixedWidthScan(t *testing.T) {
	first, last := scanRange(400)
	if first != 26 || last != 373 {
		t.Fatalf("scanRange(400) = (%d, %d), expected (26, 373)", first, last)
	}

	for seed := int64(1); seed <= 30; seed++ {
		g := NewGenerator(GenParams{MinWidth: 400, MaxWidth: 400, Seed: seed})
		m := g.Generate()
		if m.Width() != 400 {
			t.Fatalf("width = %d, expected 400", m.Width())
		}

		for _, p := range m.Platforms() {
			if p.Column < 26 || p.Column > 373 {
				t.Errorf("seed %d: platform starts at column %d outside scan", seed, p.Column)
			}
			if p.End() > 374 {
				t.Errorf("seed %d: platform ends at %d past 374", seed, p.End())
			}
		}

		// Only the border and the finish platform live past the scan
		for r := 1; r < Rows-1; r++ {
			for c := 374; c < 399; c++ {
				finish := r == FinishHeight+RowOffset && c >= 374 && c < 380
				if got := m.Cell(r, c); got != block.Air && !finish {
					t.Fatalf("seed %d: unexpected %v at (%d, %d)", seed, got, r, c)
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := generate(777)
	b := generate(777)

	if a.Width() != b.Width() {
		t.Fatalf("widths differ: %d vs %d", a.Width(), b.Width())
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < a.Width(); c++ {
			if a.Cell(r, c) != b.Cell(r, c) {
				t.Fatalf("cell (%d, %d) differs", r, c)
			}
		}
	}
	if a.Seed() != 777 {
		t.Errorf("Seed() = %d, expected 777", a.Seed())
	}
}

func TestDecidePartition(t *testing.T) {
	expected := []decision{
		decideOpen, decideOpen, decideOpen, decideOpen, decideOpen,
		decideNormal, decideNormal,
		decideBounce,
	}
	for r, want := range expected {
		if got := decide(r); got != want {
			t.Errorf("decide(%d) = %d, expected %d", r, got, want)
		}
	}
}

// scriptedSource replays fixed draws, then falls back to a seeded source.
type scriptedSource struct {
	draws []int
	rest  *rand.Rand
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.draws) > 0 {
		v := s.draws[0]
		s.draws = s.draws[1:]
		return v % n
	}
	return s.rest.Intn(n)
}

func TestGenerateScriptedBounce(t *testing.T) {
	src := &scriptedSource{
		draws: []int{
			100, // width: 300 + 100
			2,   // start height: 12 + 2 = 14, first current = 8
			7,   // decision: bounce
			3,   // bounce height: 15 + 3
			7,   // length: 3 + 7 = 10
			0,   // hazard: yes
			0,   // hazard from inset: 2
			1,   // hazard to inset: 3
		},
		rest: rand.New(rand.NewSource(1)),
	}
	m := NewGenerator(GenParams{MinWidth: 300, MaxWidth: 500, Source: src}).Generate()

	if m.Width() != 400 {
		t.Fatalf("width = %d, expected 400", m.Width())
	}
	first := m.Platforms()[0]
	expected := Platform{
		Column:     26,
		Row:        18 + RowOffset,
		Length:     10,
		Kind:       block.Bounce,
		HazardFrom: 28,
		HazardTo:   33,
	}
	if first != expected {
		t.Fatalf("first platform = %+v, expected %+v", first, expected)
	}
	for c := 26; c < 36; c++ {
		want := block.Bounce
		if c >= 28 && c < 33 {
			want = block.Hazard
		}
		if got := m.Cell(first.Row, c); got != want {
			t.Errorf("column %d = %v, expected %v", c, got, want)
		}
	}
}

func TestNewGeneratorRaisesTinyWidths(t *testing.T) {
	g := NewGenerator(GenParams{MinWidth: 10, MaxWidth: 5})
	p := g.Params()
	if p.MinWidth != 2*(Margin+PlatformWidth)+1 {
		t.Errorf("MinWidth = %d, expected smallest usable width", p.MinWidth)
	}
	if p.MaxWidth != p.MinWidth {
		t.Errorf("MaxWidth = %d, expected %d", p.MaxWidth, p.MinWidth)
	}
	m := g.Generate()
	if m.Width() != p.MinWidth {
		t.Errorf("width = %d, expected %d", m.Width(), p.MinWidth)
	}
}
