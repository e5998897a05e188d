package out

import (
	"context"

	"zetatrack/internal/modules/stats/domain"
)

// RecordSource returns the ledger snapshot and the number of skipped records.
type RecordSource interface {
	ReadAll(ctx context.Context) ([]domain.Record, int, error)
}
