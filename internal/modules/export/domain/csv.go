package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	apperrors "zetatrack/internal/platform/errors"
)

const unknownDuration = "N/A"

var Header = []string{"Date", "Time", "Score", "Duration", "Timestamp"}

type Record struct {
	Score       int
	EndedAt     time.Time
	Duration    time.Duration
	HasDuration bool
}

// Filename is the default export name for the calendar date of now.
func Filename(now time.Time) string {
	return "zetatrack-" + now.Format("2006-01-02") + ".csv"
}

// FormatDuration renders whole seconds suffixed with "s", or N/A when unknown.
func FormatDuration(d time.Duration, known bool) string {
	if !known {
		return unknownDuration
	}
	return strconv.FormatInt(int64(math.Round(d.Seconds())), 10) + "s"
}

// WriteCSV writes one row per record in ledger order. Date and Time are
// rendered in loc.
func WriteCSV(w io.Writer, records []Record, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		local := r.EndedAt.In(loc)
		row := []string{
			local.Format("2006-01-02"),
			local.Format("15:04:05"),
			strconv.Itoa(r.Score),
			FormatDuration(r.Duration, r.HasDuration),
			strconv.FormatInt(r.EndedAt.UnixMilli(), 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ParseCSV reads an export back. Score and Timestamp are exact; Duration
// keeps only the whole seconds that were written.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty csv", apperrors.ErrInvalidInput)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if strings.Join(head, ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("%w: unexpected csv header %q", apperrors.ErrInvalidInput, strings.Join(head, ","))
	}

	records := []Record{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", apperrors.ErrInvalidInput, line, err)
		}
		records = append(records, rec)
	}
}

func parseRow(row []string) (Record, error) {
	score, err := strconv.Atoi(row[2])
	if err != nil {
		return Record{}, fmt.Errorf("score: %w", err)
	}
	millis, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("timestamp: %w", err)
	}
	rec := Record{Score: score, EndedAt: time.UnixMilli(millis).UTC()}
	if row[3] != unknownDuration {
		secs, err := strconv.ParseInt(strings.TrimSuffix(row[3], "s"), 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("duration: %w", err)
		}
		rec.Duration = time.Duration(secs) * time.Second
		rec.HasDuration = true
	}
	return rec, nil
}
