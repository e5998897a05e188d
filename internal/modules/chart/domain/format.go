package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "zetatrack/internal/platform/errors"
)

const DefaultWindow = 20

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFromPath picks the image format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: unsupported chart file %q, use .png or .svg", apperrors.ErrInvalidInput, path)
	}
}

// ValidateSize rejects surfaces that leave no room inside the padding.
func ValidateSize(size Size) error {
	if size.Width <= 2*Padding || size.Height <= 2*Padding {
		return fmt.Errorf("%w: chart size %.0fx%.0f must exceed %.0fpx padding on both sides",
			apperrors.ErrInvalidInput, size.Width, size.Height, Padding)
	}
	return nil
}
