package out

import (
	"context"

	"zetatrack/internal/modules/preference/domain"
)

// PreferenceStore loads defaults when nothing has been saved yet.
type PreferenceStore interface {
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}
