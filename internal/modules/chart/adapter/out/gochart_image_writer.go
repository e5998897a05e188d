package out

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"zetatrack/internal/modules/chart/domain"
	chartout "zetatrack/internal/modules/chart/port/out"
)

// GoChartImageWriter replays drawing commands onto a go-chart renderer.
type GoChartImageWriter struct{}

func NewGoChartImageWriter() chartout.ImageWriter {
	return GoChartImageWriter{}
}

func (w GoChartImageWriter) WriteImage(path string, format domain.Format, size domain.Size, palette domain.Palette, cmds []domain.Command) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := Encode(f, format, size, palette, cmds); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	return nil
}

// Encode writes the commands as a PNG or SVG image to out.
func Encode(out io.Writer, format domain.Format, size domain.Size, palette domain.Palette, cmds []domain.Command) error {
	provider := chart.PNG
	if format == domain.FormatSVG {
		provider = chart.SVG
	}
	width, height := px(size.Width), px(size.Height)
	r, err := provider(width, height)
	if err != nil {
		return fmt.Errorf("create %s renderer: %w", format, err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load chart font: %w", err)
	}

	r.SetFillColor(color(palette.Background))
	r.SetStrokeColor(color(palette.Background))
	r.SetStrokeWidth(0)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	for _, c := range cmds {
		switch c.Kind {
		case domain.LineCommand, domain.PolylineCommand:
			if len(c.Points) < 2 {
				continue
			}
			r.SetStrokeColor(color(c.Color))
			r.SetStrokeWidth(c.Width)
			r.MoveTo(px(c.Points[0].X), px(c.Points[0].Y))
			for _, p := range c.Points[1:] {
				r.LineTo(px(p.X), px(p.Y))
			}
			r.Stroke()
		case domain.CircleCommand:
			r.SetFillColor(color(c.Color))
			r.SetStrokeColor(color(c.Color))
			r.SetStrokeWidth(0)
			r.Circle(c.Radius, px(c.Points[0].X), px(c.Points[0].Y))
		case domain.TextCommand:
			r.SetFont(font)
			r.SetFontColor(color(c.Color))
			r.SetFontSize(c.Size)
			x := px(c.Points[0].X)
			switch c.Align {
			case domain.AlignCenter:
				x -= r.MeasureText(c.Text).Width() / 2
			case domain.AlignRight:
				x -= r.MeasureText(c.Text).Width()
			}
			r.Text(c.Text, x, px(c.Points[0].Y))
		}
	}

	if err := r.Save(out); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func px(v float64) int {
	return int(math.Round(v))
}
