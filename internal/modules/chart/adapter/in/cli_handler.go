package in

import (
	"context"

	chartdto "zetatrack/internal/modules/chart/dto"
	chartin "zetatrack/internal/modules/chart/port/in"
)

type CLIHandler struct {
	usecase chartin.Usecase
}

func NewCLIHandler(usecase chartin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, path string, width, height int, theme string, window int) (chartdto.ExportOutput, error) {
	return h.usecase.Export(ctx, chartdto.ExportInput{
		Path:   path,
		Width:  width,
		Height: height,
		Theme:  theme,
		Window: window,
	})
}

func (h CLIHandler) Terminal(ctx context.Context, columns, rows int, theme string, window int) (chartdto.TerminalOutput, error) {
	return h.usecase.Terminal(ctx, chartdto.TerminalInput{
		Columns: columns,
		Rows:    rows,
		Theme:   theme,
		Window:  window,
	})
}
