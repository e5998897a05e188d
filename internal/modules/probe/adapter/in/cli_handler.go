package in

import (
	"context"

	probedto "zetatrack/internal/modules/probe/dto"
	probein "zetatrack/internal/modules/probe/port/in"
)

type CLIHandler struct {
	usecase probein.Usecase
}

func NewCLIHandler(usecase probein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Observe(ctx context.Context) (probedto.SignalsOutput, error) {
	return h.usecase.Observe(ctx)
}

func (h CLIHandler) CheckPlugin(ctx context.Context, binary, checksum string) (probedto.PluginMetadataOutput, error) {
	return h.usecase.CheckPlugin(ctx, probedto.PluginCheckInput{Binary: binary, SHA256: checksum})
}
