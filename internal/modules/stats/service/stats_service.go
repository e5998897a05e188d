package service

import (
	"context"
	"time"

	"zetatrack/internal/modules/stats/domain"
	statsout "zetatrack/internal/modules/stats/port/out"
	"zetatrack/internal/platform/clock"
)

type StatsService struct {
	clock  clock.Clock
	loc    *time.Location
	source statsout.RecordSource
}

func NewStatsService(clock clock.Clock, loc *time.Location, source statsout.RecordSource) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{clock: clock, loc: loc, source: source}
}

func (s *StatsService) Summary(ctx context.Context) (domain.Summary, int, error) {
	records, malformed, err := s.source.ReadAll(ctx)
	if err != nil {
		return domain.Summary{}, 0, err
	}
	return domain.Summarize(records, s.clock.Now().In(s.loc)), malformed, nil
}

func (s *StatsService) Recent(ctx context.Context, n int) ([]domain.Record, error) {
	records, _, err := s.source.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.RecentSeries(records, n), nil
}

func (s *StatsService) History(ctx context.Context) ([]domain.Entry, error) {
	records, _, err := s.source.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ByRecency(records), nil
}
