package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"zetatrack/internal/modules/preference/domain"
	prefout "zetatrack/internal/modules/preference/port/out"
)

type FilePreferenceStore struct {
	path string
}

func NewFilePreferenceStore(path string) prefout.PreferenceStore {
	return &FilePreferenceStore{path: path}
}

func (s *FilePreferenceStore) Save(_ context.Context, prefs domain.Preferences) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preference dir: %w", err)
	}
	payload, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

func (s *FilePreferenceStore) Load(_ context.Context) (domain.Preferences, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Preferences{Theme: domain.DefaultTheme}, nil
		}
		return domain.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	prefs := domain.Preferences{}
	if err := json.Unmarshal(payload, &prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs.Normalize(), nil
}
