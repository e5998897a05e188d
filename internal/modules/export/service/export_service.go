package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"zetatrack/internal/modules/export/domain"
	exportout "zetatrack/internal/modules/export/port/out"
	"zetatrack/internal/platform/clock"
	apperrors "zetatrack/internal/platform/errors"
)

type ExportService struct {
	clock    clock.Clock
	loc      *time.Location
	source   exportout.RecordSource
	writer   exportout.CSVWriter
	toasters []exportout.Toaster
	board    exportout.ToastReader
	duration time.Duration
}

type Options struct {
	Location      *time.Location
	ToastDuration time.Duration
	// Board is also shown every toast when it implements Toaster.
	Board    exportout.ToastReader
	Toasters []exportout.Toaster
}

func NewExportService(clock clock.Clock, source exportout.RecordSource, writer exportout.CSVWriter, opts Options) *ExportService {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	toasters := append([]exportout.Toaster(nil), opts.Toasters...)
	if t, ok := opts.Board.(exportout.Toaster); ok {
		toasters = append(toasters, t)
	}
	return &ExportService{
		clock:    clock,
		loc:      loc,
		source:   source,
		writer:   writer,
		toasters: toasters,
		board:    opts.Board,
		duration: opts.ToastDuration,
	}
}

// Export writes the ledger to path, or to the dated default name inside dir
// when path is a directory or empty.
func (s *ExportService) Export(ctx context.Context, path string) (string, int, error) {
	records, err := s.source.ReadAll(ctx)
	if err != nil {
		return "", 0, err
	}
	if len(records) == 0 {
		return "", 0, apperrors.ErrNothingToExport
	}
	if path == "" {
		path = domain.Filename(s.clock.Now().In(s.loc))
	} else if filepath.Ext(path) == "" {
		path = filepath.Join(path, domain.Filename(s.clock.Now().In(s.loc)))
	}
	if err := s.writer.WriteCSV(path, records, s.loc); err != nil {
		return "", 0, fmt.Errorf("export csv: %w", err)
	}
	return path, len(records), nil
}

func (s *ExportService) Notify(ctx context.Context, score int) error {
	toast := domain.NewToast(score, s.clock.Now(), s.duration)
	var errs []error
	for _, t := range s.toasters {
		if err := t.Show(ctx, toast); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *ExportService) Current() (domain.Toast, bool) {
	if s.board == nil {
		return domain.Toast{}, false
	}
	return s.board.Current()
}
