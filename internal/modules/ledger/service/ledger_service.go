package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"zetatrack/internal/modules/ledger/domain"
	ledgerout "zetatrack/internal/modules/ledger/port/out"
	apperrors "zetatrack/internal/platform/errors"
)

type LedgerService struct {
	store ledgerout.KeyValueStore
	key   string
}

func NewLedgerService(store ledgerout.KeyValueStore) *LedgerService {
	return &LedgerService{store: store, key: domain.StorageKey}
}

// Append adds record at the end of the stored list in one read-modify-write.
// Stored elements are carried over verbatim, malformed ones included.
func (s *LedgerService) Append(ctx context.Context, record domain.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	encoded, err := domain.Encode(record)
	if err != nil {
		return err
	}
	err = s.store.Update(ctx, s.key, func(current []byte, exists bool) ([]byte, error) {
		items, err := decodeList(current, exists)
		if err != nil {
			return nil, err
		}
		items = append(items, encoded)
		return json.Marshal(items)
	})
	if err != nil {
		return fmt.Errorf("%w: append record: %w", apperrors.ErrPersistence, err)
	}
	return nil
}

// ReadAll returns every well-formed record in insertion order together with
// the errors of the elements that were skipped.
func (s *LedgerService) ReadAll(ctx context.Context) ([]domain.Record, []error, error) {
	current, exists, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read records: %w", apperrors.ErrPersistence, err)
	}
	items, err := decodeList(current, exists)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read records: %w", apperrors.ErrPersistence, err)
	}
	records := make([]domain.Record, 0, len(items))
	var skipped []error
	for idx, item := range items {
		record, err := domain.Decode(item)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", idx, err))
			continue
		}
		records = append(records, record)
	}
	return records, skipped, nil
}

func decodeList(current []byte, exists bool) ([]json.RawMessage, error) {
	if !exists || len(bytes.TrimSpace(current)) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(current, &items); err != nil {
		return nil, fmt.Errorf("stored value is not a record list: %w", err)
	}
	return items, nil
}
