package out

import (
	"context"

	chartout "zetatrack/internal/modules/chart/port/out"
	statsin "zetatrack/internal/modules/stats/port/in"
)

type StatsSeriesSource struct {
	stats statsin.Usecase
}

func NewStatsSeriesSource(stats statsin.Usecase) chartout.SeriesSource {
	return &StatsSeriesSource{stats: stats}
}

func (s *StatsSeriesSource) Recent(ctx context.Context, n int) ([]int, error) {
	out, err := s.stats.Recent(ctx, n)
	if err != nil {
		return nil, err
	}
	return out.Scores, nil
}
