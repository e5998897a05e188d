package domain

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "zetatrack/internal/platform/errors"
)

// StorageKey is the single key holding the whole ordered record list.
const StorageKey = "scores"

// Record is one finished session. Date and time-of-day views are derived from
// EndedAt when needed and never stored.
type Record struct {
	Score       int
	EndedAt     time.Time
	Duration    time.Duration
	HasDuration bool
}

func (r Record) Validate() error {
	if r.Score < 0 {
		return fmt.Errorf("%w: score must be non-negative", apperrors.ErrInvalidInput)
	}
	if r.EndedAt.IsZero() {
		return fmt.Errorf("%w: end time is required", apperrors.ErrInvalidInput)
	}
	if r.HasDuration && r.Duration < 0 {
		return fmt.Errorf("%w: duration must be non-negative", apperrors.ErrInvalidInput)
	}
	return nil
}

type wireRecord struct {
	Score     *int   `json:"score"`
	Timestamp *int64 `json:"timestamp"`
	Duration  *int64 `json:"duration,omitempty"`
}

func Encode(r Record) (json.RawMessage, error) {
	score := r.Score
	ts := r.EndedAt.UnixMilli()
	wire := wireRecord{Score: &score, Timestamp: &ts}
	if r.HasDuration {
		ms := r.Duration.Milliseconds()
		wire.Duration = &ms
	}
	payload, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return payload, nil
}

// Decode parses one stored element. Anything that does not have the record
// shape yields ErrMalformedRecord.
func Decode(raw json.RawMessage) (Record, error) {
	wire := wireRecord{}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Record{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedRecord, err)
	}
	if wire.Score == nil || *wire.Score < 0 {
		return Record{}, fmt.Errorf("%w: missing or negative score", apperrors.ErrMalformedRecord)
	}
	if wire.Timestamp == nil || *wire.Timestamp <= 0 {
		return Record{}, fmt.Errorf("%w: missing timestamp", apperrors.ErrMalformedRecord)
	}
	record := Record{Score: *wire.Score, EndedAt: time.UnixMilli(*wire.Timestamp).UTC()}
	if wire.Duration != nil {
		if *wire.Duration < 0 {
			return Record{}, fmt.Errorf("%w: negative duration", apperrors.ErrMalformedRecord)
		}
		record.Duration = time.Duration(*wire.Duration) * time.Millisecond
		record.HasDuration = true
	}
	return record, nil
}
