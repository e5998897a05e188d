package in

import (
	"context"

	"zetatrack/internal/modules/stats/dto"
)

type Usecase interface {
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	Recent(ctx context.Context, n int) (dto.SeriesOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.HistoryEntryOutput, error)
}
