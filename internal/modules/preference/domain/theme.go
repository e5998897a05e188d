package domain

import (
	"fmt"
	"strings"

	apperrors "zetatrack/internal/platform/errors"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"

	DefaultTheme = ThemeDark
)

func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("%w: %q (want dark or light)", apperrors.ErrUnsupportedTheme, raw)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Preferences is the persisted preference document.
type Preferences struct {
	Theme Theme `json:"theme"`
}

// Normalize replaces an unknown stored theme with the default.
func (p Preferences) Normalize() Preferences {
	if _, err := ParseTheme(string(p.Theme)); err != nil {
		p.Theme = DefaultTheme
	}
	return p
}
