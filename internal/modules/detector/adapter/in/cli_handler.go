package in

import (
	"context"

	detectordto "zetatrack/internal/modules/detector/dto"
	detectorin "zetatrack/internal/modules/detector/port/in"
)

type CLIHandler struct {
	usecase detectorin.Usecase
}

func NewCLIHandler(usecase detectorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Watch(ctx context.Context) error {
	return h.usecase.Run(ctx)
}

func (h CLIHandler) CheckOnce(ctx context.Context) (detectordto.CheckOutput, error) {
	return h.usecase.Check(ctx)
}

func (h CLIHandler) State(ctx context.Context) (detectordto.StateOutput, error) {
	return h.usecase.State(ctx)
}
