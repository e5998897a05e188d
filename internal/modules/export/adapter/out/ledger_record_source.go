package out

import (
	"context"

	"zetatrack/internal/modules/export/domain"
	exportout "zetatrack/internal/modules/export/port/out"
	ledgerin "zetatrack/internal/modules/ledger/port/in"
)

type LedgerRecordSource struct {
	ledger ledgerin.Usecase
}

func NewLedgerRecordSource(ledger ledgerin.Usecase) exportout.RecordSource {
	return &LedgerRecordSource{ledger: ledger}
}

func (s *LedgerRecordSource) ReadAll(ctx context.Context) ([]domain.Record, error) {
	out, err := s.ledger.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]domain.Record, 0, len(out.Records))
	for _, r := range out.Records {
		records = append(records, domain.Record{
			Score:       r.Score,
			EndedAt:     r.EndedAt,
			Duration:    r.Duration,
			HasDuration: r.HasDuration,
		})
	}
	return records, nil
}
