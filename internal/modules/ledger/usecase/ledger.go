package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"zetatrack/internal/modules/ledger/domain"
	"zetatrack/internal/modules/ledger/dto"
	ledgerin "zetatrack/internal/modules/ledger/port/in"
	"zetatrack/internal/modules/ledger/service"
)

// MalformedRecorder counts stored records skipped on read.
type MalformedRecorder interface {
	RecordMalformed(n int)
}

type Interactor struct {
	svc      *service.LedgerService
	recorder MalformedRecorder
	log      zerolog.Logger
}

func NewInteractor(svc *service.LedgerService, recorder MalformedRecorder, log zerolog.Logger) ledgerin.Usecase {
	return &Interactor{svc: svc, recorder: recorder, log: log}
}

func (i *Interactor) Append(ctx context.Context, input dto.AppendInput) error {
	return i.svc.Append(ctx, domain.Record{
		Score:       input.Score,
		EndedAt:     input.EndedAt,
		Duration:    input.Duration,
		HasDuration: input.HasDuration,
	})
}

func (i *Interactor) ReadAll(ctx context.Context) (dto.ReadAllOutput, error) {
	records, skipped, err := i.svc.ReadAll(ctx)
	if err != nil {
		return dto.ReadAllOutput{}, err
	}
	for _, cause := range skipped {
		i.log.Warn().Err(cause).Msg("skipping malformed record")
	}
	if i.recorder != nil {
		i.recorder.RecordMalformed(len(skipped))
	}
	out := dto.ReadAllOutput{Records: make([]dto.RecordOutput, 0, len(records)), Malformed: len(skipped)}
	for _, r := range records {
		out.Records = append(out.Records, dto.RecordOutput{
			Score:       r.Score,
			EndedAt:     r.EndedAt,
			Duration:    r.Duration,
			HasDuration: r.HasDuration,
		})
	}
	return out, nil
}
