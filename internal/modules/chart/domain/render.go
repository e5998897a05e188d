package domain

import "fmt"

const (
	Padding     = 20.0
	GridLines   = 5
	GridWidth   = 0.5
	LineWidth   = 2.0
	PointRadius = 2.0
	LabelSize   = 9.0
	EmptySize   = 12.0
	EmptyLabel  = "NO DATA AVAILABLE"
)

type Size struct {
	Width  float64
	Height float64
}

type Palette struct {
	Name       string
	Background string
	Grid       string
	Line       string
	Text       string
}

var (
	Dark = Palette{
		Name:       "dark",
		Background: "#1a1a1a",
		Grid:       "#404040",
		Line:       "#00ff88",
		Text:       "#e8e8e8",
	}
	Light = Palette{
		Name:       "light",
		Background: "#ffffff",
		Grid:       "#c1d9f0",
		Line:       "#4a90e2",
		Text:       "#1e3a5f",
	}
)

// PaletteFor maps a theme name to its palette; unknown names fall back to Dark.
func PaletteFor(theme string) Palette {
	if theme == Light.Name {
		return Light
	}
	return Dark
}

type Point struct {
	X float64
	Y float64
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type CommandKind int

const (
	LineCommand CommandKind = iota
	PolylineCommand
	CircleCommand
	TextCommand
)

// Command is one drawing instruction in surface pixel units. Text anchors
// sit on the baseline, as on an HTML canvas.
type Command struct {
	Kind   CommandKind
	Color  string
	Width  float64
	Points []Point
	Radius float64
	Text   string
	Size   float64
	Align  Align
}

// Render draws series onto a surface of the given size. It never fails:
// an empty series yields a single label and a flat series uses a unit range.
func Render(series []int, size Size, palette Palette) []Command {
	if len(series) == 0 {
		return []Command{{
			Kind:   TextCommand,
			Color:  palette.Text,
			Points: []Point{{X: size.Width / 2, Y: size.Height / 2}},
			Text:   EmptyLabel,
			Size:   EmptySize,
			Align:  AlignCenter,
		}}
	}

	lo, hi := series[0], series[0]
	for _, s := range series[1:] {
		lo = min(lo, s)
		hi = max(hi, s)
	}
	span := float64(hi - lo)
	if span == 0 {
		span = 1
	}

	chartW := size.Width - 2*Padding
	chartH := size.Height - 2*Padding

	cmds := make([]Command, 0, GridLines+len(series)+4)
	for i := 0; i < GridLines; i++ {
		y := Padding + chartH/float64(GridLines-1)*float64(i)
		cmds = append(cmds, Command{
			Kind:   LineCommand,
			Color:  palette.Grid,
			Width:  GridWidth,
			Points: []Point{{X: Padding, Y: y}, {X: size.Width - Padding, Y: y}},
		})
	}

	step := chartW / float64(max(len(series)-1, 1))
	points := make([]Point, len(series))
	for i, s := range series {
		points[i] = Point{
			X: Padding + step*float64(i),
			Y: Padding + chartH - float64(s-lo)/span*chartH,
		}
	}

	if len(series) == 1 {
		return append(cmds, marker(points[0], palette))
	}

	cmds = append(cmds, Command{
		Kind:   PolylineCommand,
		Color:  palette.Line,
		Width:  LineWidth,
		Points: points,
	})
	for _, p := range points {
		cmds = append(cmds, marker(p, palette))
	}
	return append(cmds,
		label(fmt.Sprintf("MIN: %d", lo), Point{X: Padding, Y: size.Height - 5}, AlignLeft, palette),
		label(fmt.Sprintf("MAX: %d", hi), Point{X: size.Width - Padding, Y: size.Height - 5}, AlignRight, palette),
		label(fmt.Sprintf("LAST %d GAMES", len(series)), Point{X: size.Width / 2, Y: 12}, AlignCenter, palette),
	)
}

func marker(p Point, palette Palette) Command {
	return Command{Kind: CircleCommand, Color: palette.Line, Points: []Point{p}, Radius: PointRadius}
}

func label(text string, at Point, align Align, palette Palette) Command {
	return Command{
		Kind:   TextCommand,
		Color:  palette.Text,
		Points: []Point{at},
		Text:   text,
		Size:   LabelSize,
		Align:  align,
	}
}
