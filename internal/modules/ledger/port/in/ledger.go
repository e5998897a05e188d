package in

import (
	"context"

	"zetatrack/internal/modules/ledger/dto"
)

type Usecase interface {
	Append(ctx context.Context, input dto.AppendInput) error
	ReadAll(ctx context.Context) (dto.ReadAllOutput, error)
}
