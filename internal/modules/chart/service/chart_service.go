package service

import (
	"context"
	"fmt"

	"zetatrack/internal/modules/chart/domain"
	chartout "zetatrack/internal/modules/chart/port/out"
)

type ChartService struct {
	series chartout.SeriesSource
	themes chartout.ThemeSource
}

func NewChartService(series chartout.SeriesSource, themes chartout.ThemeSource) *ChartService {
	return &ChartService{series: series, themes: themes}
}

// Palette resolves an explicit theme name or, when empty, the stored preference.
func (s *ChartService) Palette(ctx context.Context, theme string) (domain.Palette, error) {
	if theme != "" {
		return domain.PaletteFor(theme), nil
	}
	stored, err := s.themes.Theme(ctx)
	if err != nil {
		return domain.Palette{}, fmt.Errorf("resolve theme: %w", err)
	}
	return domain.PaletteFor(stored), nil
}

// Plot renders the most recent window of scores.
func (s *ChartService) Plot(ctx context.Context, window int, size domain.Size, palette domain.Palette) ([]domain.Command, int, error) {
	scores, err := s.series.Recent(ctx, window)
	if err != nil {
		return nil, 0, fmt.Errorf("load series: %w", err)
	}
	return domain.Render(scores, size, palette), len(scores), nil
}
