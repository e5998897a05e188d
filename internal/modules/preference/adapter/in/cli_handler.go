package in

import (
	"context"

	prefdto "zetatrack/internal/modules/preference/dto"
	prefin "zetatrack/internal/modules/preference/port/in"
)

type CLIHandler struct {
	usecase prefin.Usecase
}

func NewCLIHandler(usecase prefin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Theme(ctx context.Context) (string, error) {
	out, err := h.usecase.Theme(ctx)
	return out.Theme, err
}

func (h CLIHandler) SetTheme(ctx context.Context, theme string) (string, error) {
	out, err := h.usecase.SetTheme(ctx, prefdto.SetThemeInput{Theme: theme})
	return out.Theme, err
}

func (h CLIHandler) Toggle(ctx context.Context) (string, error) {
	out, err := h.usecase.ToggleTheme(ctx)
	return out.Theme, err
}
