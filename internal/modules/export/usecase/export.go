package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"zetatrack/internal/modules/export/dto"
	exportin "zetatrack/internal/modules/export/port/in"
	"zetatrack/internal/modules/export/service"
)

type Interactor struct {
	svc *service.ExportService
	log zerolog.Logger
}

func NewInteractor(svc *service.ExportService, log zerolog.Logger) exportin.Usecase {
	return &Interactor{svc: svc, log: log}
}

func (i *Interactor) ExportCSV(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	path, rows, err := i.svc.Export(ctx, input.Path)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	i.log.Info().Str("path", path).Int("rows", rows).Msg("exported csv")
	return dto.ExportOutput{Path: path, Rows: rows}, nil
}

func (i *Interactor) Notify(ctx context.Context, input dto.NotifyInput) error {
	if err := i.svc.Notify(ctx, input.Score); err != nil {
		i.log.Warn().Err(err).Int("score", input.Score).Msg("toast not shown")
		return err
	}
	return nil
}

func (i *Interactor) CurrentToast(_ context.Context) (dto.ToastOutput, error) {
	toast, ok := i.svc.Current()
	if !ok {
		return dto.ToastOutput{}, nil
	}
	return dto.ToastOutput{Message: toast.Message, ExpiresAt: toast.ExpiresAt(), Visible: true}, nil
}
