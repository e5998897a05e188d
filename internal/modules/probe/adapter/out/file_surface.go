package out

import (
	"context"
	"fmt"
	"os"

	"zetatrack/internal/modules/probe/domain"
	probeout "zetatrack/internal/modules/probe/port/out"
	apperrors "zetatrack/internal/platform/errors"
)

// FileSurface re-reads a saved page on every snapshot.
type FileSurface struct {
	path string
}

func NewFileSurface(path string) probeout.Surface {
	return &FileSurface{path: path}
}

func (s *FileSurface) Snapshot(_ context.Context) (domain.Document, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Document{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, s.path)
		}
		return domain.Document{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return ParseHTML(f)
}

func (s *FileSurface) Changes() <-chan struct{} {
	return nil
}
