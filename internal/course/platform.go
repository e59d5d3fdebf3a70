package course

import "github.com/vovakirdan/blockrun/internal/block"

// Platform records one horizontal run of blocks placed by the generator.
type Platform struct {
	Column int        // First column of the run
	Row    int        // Grid row (including RowOffset)
	Length int        // Number of columns
	Kind   block.Kind // Solid or Bounce

	// Hazard run inside the platform, [HazardFrom, HazardTo).
	// Both are zero when the platform has no hazard.
	HazardFrom int
	HazardTo   int
}

// End returns the column just past the platform.
func (p Platform) End() int {
	return p.Column + p.Length
}

// HasHazard reports whether a hazard run was carved into the platform.
func (p Platform) HasHazard() bool {
	return p.HazardTo > p.HazardFrom
}

// Stats summarizes the contents of a map.
type Stats struct {
	Width     int
	Platforms int
	Bounce    int // Bounce platforms
	Hazards   int // Platforms carrying a hazard run
	Blocks    map[block.Kind]int
}

// Stats counts platforms and blocks inside the border ring.
func (m *Map) Stats() Stats {
	s := Stats{
		Width:     m.width,
		Platforms: len(m.platforms),
		Blocks:    make(map[block.Kind]int),
	}
	for _, p := range m.platforms {
		if p.Kind == block.Bounce {
			s.Bounce++
		}
		if p.HasHazard() {
			s.Hazards++
		}
	}
	for r := 1; r < len(m.grid)-1; r++ {
		for c := 1; c < m.width-1; c++ {
			s.Blocks[m.grid[r][c]]++
		}
	}
	return s
}
