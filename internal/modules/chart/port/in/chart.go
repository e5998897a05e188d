package in

import (
	"context"

	"zetatrack/internal/modules/chart/dto"
)

type Usecase interface {
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	Terminal(ctx context.Context, input dto.TerminalInput) (dto.TerminalOutput, error)
}
