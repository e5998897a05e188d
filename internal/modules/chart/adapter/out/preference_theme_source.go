package out

import (
	"context"

	chartout "zetatrack/internal/modules/chart/port/out"
	prefin "zetatrack/internal/modules/preference/port/in"
)

type PreferenceThemeSource struct {
	prefs prefin.Usecase
}

func NewPreferenceThemeSource(prefs prefin.Usecase) chartout.ThemeSource {
	return &PreferenceThemeSource{prefs: prefs}
}

func (s *PreferenceThemeSource) Theme(ctx context.Context) (string, error) {
	out, err := s.prefs.Theme(ctx)
	if err != nil {
		return "", err
	}
	return out.Theme, nil
}
