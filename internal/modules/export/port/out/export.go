package out

import (
	"context"
	"time"

	"zetatrack/internal/modules/export/domain"
)

type RecordSource interface {
	ReadAll(ctx context.Context) ([]domain.Record, error)
}

type CSVWriter interface {
	WriteCSV(path string, records []domain.Record, loc *time.Location) error
}

type Toaster interface {
	Show(ctx context.Context, toast domain.Toast) error
}

// ToastReader reports the toast currently on display, if any.
type ToastReader interface {
	Current() (domain.Toast, bool)
}
