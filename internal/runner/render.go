package runner

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/blockrun/internal/block"
	"github.com/vovakirdan/blockrun/internal/core"
	"github.com/vovakirdan/blockrun/internal/course"
	"github.com/vovakirdan/blockrun/internal/player"
)

// Visual characters for rendering
const (
	SolidChar  = '█'
	BounceChar = '▒'
	HazardChar = '▲'
	FinishChar = '┊'
	RingChar   = '·'
	AboveChar  = '▴'
	BelowChar  = '▾'

	TrackChar    = '─'
	ProgressChar = '━'
)

// rollGlyphs are the player frames, one per quarter turn.
var rollGlyphs = [4]rune{'◐', '◓', '◑', '◒'}

// bandTop is the screen row of the first course row; row 0 holds the HUD.
const bandTop = 1

// BlockGlyph returns the character and color a block kind is drawn with.
func BlockGlyph(k block.Kind) (rune, core.Color) {
	switch k {
	case block.Air:
		return ' ', core.ColorDefault
	case block.Bounce:
		return BounceChar, core.ColorBrightBlue
	case block.Hazard:
		return HazardChar, core.ColorBrightRed
	default:
		return SolidChar, core.ColorGray
	}
}

// DrawCourse draws the visible band of m with leftCol as the first grid
// column, cellWidth screen columns per grid column, starting at screen row top.
func DrawCourse(dst *core.Screen, m *course.Map, leftCol, cellWidth, top int) {
	cols := dst.Width() / cellWidth
	finishCol := gridCol(m.Finish())

	for r := 0; r < course.VisibleRows; r++ {
		y := top + r
		if y >= dst.Height() {
			break
		}
		row := r + course.RowOffset
		for i := 0; i < cols; i++ {
			col := leftCol + i
			if col >= m.Width() {
				break
			}
			ch, color := BlockGlyph(m.Cell(row, col))
			if ch == ' ' && col == finishCol {
				ch, color = FinishChar, core.ColorGreen
			}
			for k := 0; k < cellWidth; k++ {
				dst.SetColored(i*cellWidth+k, y, ch, color)
			}
		}
	}
}

// gridCol returns the grid column containing world x.
func gridCol(x float64) int {
	_, col := course.CellIndex(x, 0)
	return col
}

// bandRow returns the band row (0 = first visible row) containing world y.
func bandRow(y float64) int {
	return course.WorldRow(y)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.p == nil {
		g.drawLoading(dst)
		return
	}

	cw := core.Max(g.cfg.Camera.CellWidth, 1)
	cols := dst.Width() / cw
	left := g.leftColumn(cols)

	DrawCourse(dst, g.m, left, cw, bandTop)
	g.drawPlayer(dst, left, cw)
	g.drawHUD(dst)

	switch {
	case g.won:
		g.drawMessage(dst, core.ColorGreen,
			"COURSE CLEARED",
			fmt.Sprintf("Time %s  |  Deaths %d", FormatDuration(g.elapsed), g.deaths),
			"Space: new course  R: retry  Q: quit")
	case g.paused:
		g.drawMessage(dst, core.ColorYellow, "PAUSED", "Press P to resume")
	}
}

// leftColumn picks the first visible grid column for the camera.
func (g *Game) leftColumn(cols int) int {
	left := gridCol(g.camera.x) - cols/2
	return core.Clamp(left, 0, core.Max(g.m.Width()-cols, 0))
}

func (g *Game) drawPlayer(dst *core.Screen, left, cw int) {
	p := g.p
	x, y := p.Position()
	sx := (gridCol(x) - left) * cw
	sy := bandTop + bandRow(y)

	if p.State() == player.DeathAnimating {
		g.drawRing(dst, x, y, p.Radius(), left, cw)
	}

	switch {
	case sy < bandTop:
		dst.SetColored(sx, bandTop, AboveChar, core.ColorYellow)
	case sy >= bandTop+course.VisibleRows:
		dst.SetColored(sx, bandTop+course.VisibleRows-1, BelowChar, core.ColorYellow)
	default:
		color := core.ColorYellow
		if p.State() == player.DeathAnimating {
			color = core.ColorRed
		}
		dst.SetColored(sx, sy, rollGlyph(p.Rotation()), color)
	}
}

// rollGlyph picks the frame for a rotation angle in radians.
func rollGlyph(rotation float64) rune {
	quarter := int(math.Floor(rotation / (math.Pi / 2)))
	return rollGlyphs[((quarter%4)+4)%4]
}

// drawRing outlines the growing death circle.
func (g *Game) drawRing(dst *core.Screen, x, y, r float64, left, cw int) {
	const points = 64
	for i := 0; i < points; i++ {
		a := 2 * math.Pi * float64(i) / points
		px := x + r*math.Cos(a)
		py := y + r*math.Sin(a)
		row := bandRow(py)
		if row < 0 || row >= course.VisibleRows {
			continue
		}
		dst.SetColored((gridCol(px)-left)*cw, bandTop+row, RingChar, core.ColorOrange)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Deaths: %d  %3.0f%% ",
		FormatDuration(g.elapsed), g.deaths, g.progress()*100)
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)

	seed := fmt.Sprintf(" Seed %d ", g.seed)
	dst.DrawTextColored(dst.Width()-len(seed)-1, 0, seed, core.ColorGray)

	g.drawProgress(dst, bandTop+course.VisibleRows)
}

// drawProgress draws a course progress bar on row y when the screen has it.
func (g *Game) drawProgress(dst *core.Screen, y int) {
	if y >= dst.Height() {
		return
	}
	w := dst.Width()
	done := int(g.progress() * float64(w))
	dst.DrawHLine(0, y, w, TrackChar, core.ColorGray)
	dst.DrawHLine(0, y, done, ProgressChar, core.ColorGreen)
}

func (g *Game) drawLoading(dst *core.Screen) {
	h := dst.Height()
	dst.DrawTextCentered(h/2-1, "Generating course...", core.ColorCyan)
	dst.DrawTextCentered(h/2+1, fmt.Sprintf("seed %d", g.seed), core.ColorGray)
}

// drawMessage draws a message box in the center of the screen.
func (g *Game) drawMessage(dst *core.Screen, color core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	box := core.Centered(dst.Width(), dst.Height(), w+4, len(lines)*2+1)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = color
		}
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+1+i*2, l, c)
	}
}

// FormatDuration renders a run time as m:ss.cc.
func FormatDuration(d time.Duration) string {
	cs := d.Round(10*time.Millisecond).Milliseconds() / 10
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, (cs/100)%60, cs%100)
}
