package out

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"zetatrack/internal/modules/export/domain"
	exportout "zetatrack/internal/modules/export/port/out"
)

type FileCSVWriter struct{}

func NewFileCSVWriter() exportout.CSVWriter {
	return FileCSVWriter{}
}

func (FileCSVWriter) WriteCSV(path string, records []domain.Record, loc *time.Location) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := domain.WriteCSV(&buf, records, loc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
