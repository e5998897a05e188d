package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrProbeMiss        = errors.New("probe miss")
	ErrPersistence      = errors.New("persistence failure")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrNothingToExport  = errors.New("nothing to export")
	ErrPluginChecksum   = errors.New("plugin checksum mismatch")
	ErrUnsupportedTheme = errors.New("unsupported theme")
)
