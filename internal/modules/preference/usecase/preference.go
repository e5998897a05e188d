package usecase

import (
	"context"

	"zetatrack/internal/modules/preference/domain"
	"zetatrack/internal/modules/preference/dto"
	prefin "zetatrack/internal/modules/preference/port/in"
	"zetatrack/internal/modules/preference/service"
)

type Interactor struct {
	svc *service.PreferenceService
}

func NewInteractor(svc *service.PreferenceService) prefin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Theme(ctx context.Context) (dto.ThemeOutput, error) {
	theme, err := i.svc.Theme(ctx)
	if err != nil {
		return dto.ThemeOutput{}, err
	}
	return dto.ThemeOutput{Theme: string(theme)}, nil
}

func (i *Interactor) SetTheme(ctx context.Context, input dto.SetThemeInput) (dto.ThemeOutput, error) {
	theme, err := domain.ParseTheme(input.Theme)
	if err != nil {
		return dto.ThemeOutput{}, err
	}
	if err := i.svc.SetTheme(ctx, theme); err != nil {
		return dto.ThemeOutput{}, err
	}
	return dto.ThemeOutput{Theme: string(theme)}, nil
}

func (i *Interactor) ToggleTheme(ctx context.Context) (dto.ThemeOutput, error) {
	current, err := i.svc.Theme(ctx)
	if err != nil {
		return dto.ThemeOutput{}, err
	}
	next := current.Toggle()
	if err := i.svc.SetTheme(ctx, next); err != nil {
		return dto.ThemeOutput{}, err
	}
	return dto.ThemeOutput{Theme: string(next)}, nil
}
