package usecase

import (
	"context"
	"fmt"

	"zetatrack/internal/modules/chart/domain"
	"zetatrack/internal/modules/chart/dto"
	chartin "zetatrack/internal/modules/chart/port/in"
	chartout "zetatrack/internal/modules/chart/port/out"
	"zetatrack/internal/modules/chart/service"
	apperrors "zetatrack/internal/platform/errors"
)

// Terminal cells are mapped to a virtual surface of this many pixels.
const (
	cellWidth  = 8
	cellHeight = 16
)

type Interactor struct {
	svc    *service.ChartService
	images chartout.ImageWriter
	canvas chartout.TextCanvas
}

func NewInteractor(svc *service.ChartService, images chartout.ImageWriter, canvas chartout.TextCanvas) chartin.Usecase {
	return &Interactor{svc: svc, images: images, canvas: canvas}
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	if input.Path == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: output path is required", apperrors.ErrInvalidInput)
	}
	format, err := domain.FormatFromPath(input.Path)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	size := domain.Size{Width: float64(input.Width), Height: float64(input.Height)}
	if err := domain.ValidateSize(size); err != nil {
		return dto.ExportOutput{}, err
	}
	palette, err := i.svc.Palette(ctx, input.Theme)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	cmds, points, err := i.svc.Plot(ctx, window(input.Window), size, palette)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	if err := i.images.WriteImage(input.Path, format, size, palette, cmds); err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: input.Path, Format: string(format), Theme: palette.Name, Points: points}, nil
}

func (i *Interactor) Terminal(ctx context.Context, input dto.TerminalInput) (dto.TerminalOutput, error) {
	if input.Columns <= 0 || input.Rows <= 0 {
		return dto.TerminalOutput{}, fmt.Errorf("%w: terminal area must be positive", apperrors.ErrInvalidInput)
	}
	palette, err := i.svc.Palette(ctx, input.Theme)
	if err != nil {
		return dto.TerminalOutput{}, err
	}
	size := domain.Size{Width: float64(input.Columns * cellWidth), Height: float64(input.Rows * cellHeight)}
	size.Width = max(size.Width, 2*domain.Padding+cellWidth)
	size.Height = max(size.Height, 2*domain.Padding+cellHeight)
	cmds, points, err := i.svc.Plot(ctx, window(input.Window), size, palette)
	if err != nil {
		return dto.TerminalOutput{}, err
	}
	return dto.TerminalOutput{
		Text:   i.canvas.Paint(input.Columns, input.Rows, size, palette, cmds),
		Theme:  palette.Name,
		Points: points,
	}, nil
}

func window(n int) int {
	if n <= 0 {
		return domain.DefaultWindow
	}
	return n
}
