package in

import (
	"context"

	exportdto "zetatrack/internal/modules/export/dto"
	exportin "zetatrack/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, path string) (exportdto.ExportOutput, error) {
	return h.usecase.ExportCSV(ctx, exportdto.ExportInput{Path: path})
}
