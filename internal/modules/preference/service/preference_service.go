package service

import (
	"context"

	"zetatrack/internal/modules/preference/domain"
	prefout "zetatrack/internal/modules/preference/port/out"
)

type PreferenceService struct {
	store prefout.PreferenceStore
}

func NewPreferenceService(store prefout.PreferenceStore) *PreferenceService {
	return &PreferenceService{store: store}
}

func (s *PreferenceService) Theme(ctx context.Context) (domain.Theme, error) {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	return prefs.Normalize().Theme, nil
}

func (s *PreferenceService) SetTheme(ctx context.Context, theme domain.Theme) error {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	prefs.Theme = theme
	return s.store.Save(ctx, prefs)
}
