package out

import (
	"context"

	"zetatrack/internal/modules/chart/domain"
)

// SeriesSource returns the last n scores, oldest first.
type SeriesSource interface {
	Recent(ctx context.Context, n int) ([]int, error)
}

type ThemeSource interface {
	Theme(ctx context.Context) (string, error)
}

type ImageWriter interface {
	WriteImage(path string, format domain.Format, size domain.Size, palette domain.Palette, cmds []domain.Command) error
}

// TextCanvas rasterizes commands onto a grid of terminal cells.
type TextCanvas interface {
	Paint(columns, rows int, size domain.Size, palette domain.Palette, cmds []domain.Command) string
}
