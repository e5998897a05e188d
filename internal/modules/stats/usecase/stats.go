package usecase

import (
	"context"
	"fmt"

	"zetatrack/internal/modules/stats/domain"
	"zetatrack/internal/modules/stats/dto"
	statsin "zetatrack/internal/modules/stats/port/in"
	"zetatrack/internal/modules/stats/service"
	apperrors "zetatrack/internal/platform/errors"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	summary, malformed, err := i.svc.Summary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return dto.SummaryOutput{
		Count:      summary.Count,
		Best:       summary.Best,
		Average:    summary.Average,
		TodayCount: summary.TodayCount,
		Malformed:  malformed,
	}, nil
}

func (i *Interactor) Recent(ctx context.Context, n int) (dto.SeriesOutput, error) {
	if n <= 0 {
		n = domain.DefaultRecentWindow
	}
	records, err := i.svc.Recent(ctx, n)
	if err != nil {
		return dto.SeriesOutput{}, err
	}
	scores := make([]int, len(records))
	for idx, r := range records {
		scores[idx] = r.Score
	}
	return dto.SeriesOutput{Scores: scores}, nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.HistoryEntryOutput, error) {
	if input.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative", apperrors.ErrInvalidInput)
	}
	entries, err := i.svc.History(ctx)
	if err != nil {
		return nil, err
	}
	if input.Limit > 0 && len(entries) > input.Limit {
		entries = entries[:input.Limit]
	}
	out := make([]dto.HistoryEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntryOutput{
			Score:       e.Record.Score,
			EndedAt:     e.Record.EndedAt,
			Duration:    e.Record.Duration,
			HasDuration: e.Record.HasDuration,
			Trend:       string(e.Trend),
		})
	}
	return out, nil
}
