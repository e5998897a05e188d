package out

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"zetatrack/internal/modules/chart/domain"
	chartout "zetatrack/internal/modules/chart/port/out"
)

const (
	gridRune   = '·'
	lineRune   = '•'
	markerRune = '●'
)

type cell struct {
	r     rune
	color string
}

// TerminalCanvas maps surface pixels onto terminal cells and colors them with lipgloss.
type TerminalCanvas struct{}

func NewTerminalCanvas() chartout.TextCanvas {
	return TerminalCanvas{}
}

func (TerminalCanvas) Paint(columns, rows int, size domain.Size, palette domain.Palette, cmds []domain.Command) string {
	if columns <= 0 || rows <= 0 {
		return ""
	}
	g := newGrid(columns, rows, size)
	for _, c := range cmds {
		switch c.Kind {
		case domain.LineCommand:
			g.path(c.Points, gridRune, c.Color, false)
		case domain.PolylineCommand:
			g.path(c.Points, lineRune, c.Color, true)
		case domain.CircleCommand:
			col, row := g.cell(c.Points[0])
			g.set(col, row, markerRune, c.Color, true)
		case domain.TextCommand:
			g.text(c)
		}
	}
	return g.render()
}

type grid struct {
	cols, rows int
	size       domain.Size
	cells      [][]cell
}

func newGrid(cols, rows int, size domain.Size) *grid {
	cells := make([][]cell, rows)
	for i := range cells {
		cells[i] = make([]cell, cols)
	}
	return &grid{cols: cols, rows: rows, size: size, cells: cells}
}

func (g *grid) cell(p domain.Point) (int, int) {
	col := int(p.X / g.size.Width * float64(g.cols))
	row := int(p.Y / g.size.Height * float64(g.rows))
	return clamp(col, g.cols-1), clamp(row, g.rows-1)
}

func (g *grid) set(col, row int, r rune, color string, overwrite bool) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return
	}
	if !overwrite && g.cells[row][col].r != 0 {
		return
	}
	g.cells[row][col] = cell{r: r, color: color}
}

func (g *grid) path(points []domain.Point, r rune, color string, overwrite bool) {
	for i := 1; i < len(points); i++ {
		x0, y0 := g.cell(points[i-1])
		x1, y1 := g.cell(points[i])
		dx, dy := abs(x1-x0), -abs(y1-y0)
		sx, sy := sign(x1-x0), sign(y1-y0)
		e := dx + dy
		for {
			g.set(x0, y0, r, color, overwrite)
			if x0 == x1 && y0 == y1 {
				break
			}
			e2 := 2 * e
			if e2 >= dy {
				e += dy
				x0 += sx
			}
			if e2 <= dx {
				e += dx
				y0 += sy
			}
		}
	}
}

func (g *grid) text(c domain.Command) {
	body := []rune(c.Text)
	col, row := g.cell(c.Points[0])
	switch c.Align {
	case domain.AlignCenter:
		col -= len(body) / 2
	case domain.AlignRight:
		col -= len(body) - 1
	}
	for i, r := range body {
		g.set(col+i, row, r, c.Color, true)
	}
}

func (g *grid) render() string {
	lines := make([]string, g.rows)
	for i, row := range g.cells {
		var sb strings.Builder
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			r := c.r
			if r == 0 {
				r = ' '
			}
			if c.color != runColor {
				flush()
				runColor = c.color
			}
			run.WriteRune(r)
		}
		flush()
		lines[i] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
