package in

import (
	"context"

	statsdto "zetatrack/internal/modules/stats/dto"
	statsin "zetatrack/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context) (statsdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Recent(ctx context.Context, n int) (statsdto.SeriesOutput, error) {
	return h.usecase.Recent(ctx, n)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]statsdto.HistoryEntryOutput, error) {
	return h.usecase.History(ctx, statsdto.HistoryInput{Limit: limit})
}
