package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gamebuilder/internal/catalog"
	"github.com/vovakirdan/tui-gamebuilder/internal/core"
	"github.com/vovakirdan/tui-gamebuilder/internal/sim"
)

// Glyphs used for the canvas.
const (
	glyphBody     = '█'
	glyphRoad     = '░'
	glyphSelected = '▓'
	glyphParticle = '*'
)

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2.0

// styleFor returns the lipgloss style for a hex color.
func styleFor(c core.Color) lipgloss.Style {
	if c == core.ColorDefault {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[core.Color]lipgloss.Style)
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = styleFor(startColor)
				styles[startColor] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Viewport maps canvas pixels onto a block of terminal cells.
type Viewport struct {
	X, Y  int     // top-left cell of the canvas (inside the border)
	Cols  int     // canvas width in cells
	Rows  int     // canvas height in cells
	Scale float64 // canvas pixels per cell column
}

// FitCanvas scales a canvas into an area of cols x rows cells, leaving a
// one-cell border, keeping the aspect ratio and centering it.
func FitCanvas(canvasW, canvasH float64, x, y, cols, rows int) Viewport {
	innerW := max(cols-2, 1)
	innerH := max(rows-2, 1)
	scale := math.Max(canvasW/float64(innerW), canvasH/(cellAspect*float64(innerH)))
	if scale <= 0 {
		scale = 1
	}

	v := Viewport{
		Cols:  max(int(math.Ceil(canvasW/scale)), 1),
		Rows:  max(int(math.Ceil(canvasH/(cellAspect*scale))), 1),
		Scale: scale,
	}
	v.Cols = min(v.Cols, innerW)
	v.Rows = min(v.Rows, innerH)
	v.X = x + 1 + (innerW-v.Cols)/2
	v.Y = y + 1 + (innerH-v.Rows)/2
	return v
}

// Cell returns the screen cell of a canvas point.
func (v Viewport) Cell(p core.Vec2) (int, int) {
	return v.X + int(math.Floor(p.X/v.Scale)), v.Y + int(math.Floor(p.Y/(cellAspect*v.Scale)))
}

// CanvasPoint returns the canvas point at the top-left of a screen cell.
func (v Viewport) CanvasPoint(col, row int) core.Vec2 {
	return core.Vec2{
		X: float64(col-v.X) * v.Scale,
		Y: float64(row-v.Y) * cellAspect * v.Scale,
	}
}

func (v Viewport) inside(col, row int) bool {
	return col >= v.X && col < v.X+v.Cols && row >= v.Y && row < v.Y+v.Rows
}

// fill paints the cells covered by r, clipped to the canvas.
func (v Viewport) fill(s *core.Screen, r core.Rect, ch rune, c core.Color) {
	x0, y0 := v.Cell(core.Vec2{X: r.X, Y: r.Y})
	// A rect always covers at least one cell.
	x1, y1 := v.Cell(core.Vec2{X: r.Right() - 1e-6, Y: r.Bottom() - 1e-6})
	x1, y1 = max(x1, x0), max(y1, y0)
	x0, y0 = max(x0, v.X), max(y0, v.Y)
	x1, y1 = min(x1, v.X+v.Cols-1), min(y1, v.Y+v.Rows-1)
	if x1 < x0 || y1 < y0 {
		return
	}
	s.FillRect(x0, y0, x1-x0+1, y1-y0+1, ch, c)
}

// DrawFrame draws the canvas border, the visible entities and the particles.
// Road entities are drawn first so everything else lies on top of them.
// The selected entity (0 for none) is drawn last with a distinct glyph.
func DrawFrame(s *core.Screen, v Viewport, f sim.Frame, selected sim.EntityID) {
	s.DrawBox(v.X-1, v.Y-1, v.Cols+2, v.Rows+2, core.ColorGray)

	for i := range f.Entities {
		e := &f.Entities[i]
		if e.Visible() && e.Meta[catalog.MetaRoad] != "" {
			v.fill(s, e.Rect(), glyphRoad, e.Color)
		}
	}

	var sel *sim.Entity
	for i := range f.Entities {
		e := &f.Entities[i]
		if !e.Visible() || e.Meta[catalog.MetaRoad] != "" {
			continue
		}
		if selected != 0 && e.ID == selected {
			sel = e
			continue
		}
		v.fill(s, e.Rect(), glyphBody, e.Color)
	}
	if sel != nil {
		v.fill(s, sel.Rect(), glyphSelected, sel.Color)
	}

	for _, p := range f.Particles {
		col, row := v.Cell(p.Pos)
		if v.inside(col, row) {
			s.Set(col, row, glyphParticle, p.Color)
		}
	}
}
