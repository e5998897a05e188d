package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	prefout "zetatrack/internal/modules/preference/adapter/out"
	prefdto "zetatrack/internal/modules/preference/dto"
	prefin "zetatrack/internal/modules/preference/port/in"
	"zetatrack/internal/modules/preference/service"
	"zetatrack/internal/modules/preference/usecase"
	apperrors "zetatrack/internal/platform/errors"
)

func newPreferences(path string) prefin.Usecase {
	return usecase.NewInteractor(service.NewPreferenceService(prefout.NewFilePreferenceStore(path)))
}

func TestThemeDefaultsToDark(t *testing.T) {
	t.Parallel()
	uc := newPreferences(filepath.Join(t.TempDir(), "prefs.json"))
	got, err := uc.Theme(context.Background())
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if got.Theme != "dark" {
		t.Fatalf("expected dark, got %q", got.Theme)
	}
}

func TestSetThemePersists(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	if _, err := newPreferences(path).SetTheme(context.Background(), prefdto.SetThemeInput{Theme: " Light "}); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	got, err := newPreferences(path).Theme(context.Background())
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if got.Theme != "light" {
		t.Fatalf("expected light after reload, got %q", got.Theme)
	}
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prefs.json")
	_, err := newPreferences(path).SetTheme(context.Background(), prefdto.SetThemeInput{Theme: "solarized"})
	if !errors.Is(err, apperrors.ErrUnsupportedTheme) {
		t.Fatalf("expected unsupported theme, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("rejected theme must not write the file: %v", statErr)
	}
}

func TestToggleThemeAlternates(t *testing.T) {
	t.Parallel()
	uc := newPreferences(filepath.Join(t.TempDir(), "prefs.json"))
	for _, want := range []string{"light", "dark", "light"} {
		got, err := uc.ToggleTheme(context.Background())
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if got.Theme != want {
			t.Fatalf("expected %q, got %q", want, got.Theme)
		}
	}
}

func TestUnknownStoredThemeFallsBackToDefault(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte(`{"theme":"neon"}`), 0o644); err != nil {
		t.Fatalf("seed prefs: %v", err)
	}
	got, err := newPreferences(path).Theme(context.Background())
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if got.Theme != "dark" {
		t.Fatalf("expected dark fallback, got %q", got.Theme)
	}
}

func TestCorruptPreferencesFail(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte(`{`), 0o644); err != nil {
		t.Fatalf("seed prefs: %v", err)
	}
	if _, err := newPreferences(path).Theme(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
