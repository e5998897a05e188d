package out

import (
	"context"

	ledgerin "zetatrack/internal/modules/ledger/port/in"
	"zetatrack/internal/modules/stats/domain"
	statsout "zetatrack/internal/modules/stats/port/out"
)

type LedgerRecordSource struct {
	ledger ledgerin.Usecase
}

func NewLedgerRecordSource(ledger ledgerin.Usecase) statsout.RecordSource {
	return &LedgerRecordSource{ledger: ledger}
}

func (s *LedgerRecordSource) ReadAll(ctx context.Context) ([]domain.Record, int, error) {
	out, err := s.ledger.ReadAll(ctx)
	if err != nil {
		return nil, 0, err
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
	return records, out.Malformed, nil
}
