package in

import (
	"context"

	"zetatrack/internal/modules/preference/dto"
)

type Usecase interface {
	Theme(ctx context.Context) (dto.ThemeOutput, error)
	SetTheme(ctx context.Context, input dto.SetThemeInput) (dto.ThemeOutput, error)
	ToggleTheme(ctx context.Context) (dto.ThemeOutput, error)
}
