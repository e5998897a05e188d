package in

import (
	"context"

	"zetatrack/internal/modules/export/dto"
)

type Usecase interface {
	ExportCSV(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	// Notify raises the saved-score toast. It never blocks on the toast lifetime.
	Notify(ctx context.Context, input dto.NotifyInput) error
	CurrentToast(ctx context.Context) (dto.ToastOutput, error)
}
