package out

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"zetatrack/internal/modules/probe/domain"
	apperrors "zetatrack/internal/platform/errors"
)

// PushSurface holds the latest snapshot posted by a browser helper. Every
// accepted snapshot counts as a structural change.
type PushSurface struct {
	mu      sync.RWMutex
	doc     domain.Document
	ready   bool
	changes chan struct{}
}

func NewPushSurface() *PushSurface {
	return &PushSurface{changes: make(chan struct{}, 1)}
}

func (s *PushSurface) Accept(_ context.Context, payload []byte) error {
	doc, err := ParseHTML(bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	s.mu.Lock()
	s.doc = doc
	s.ready = true
	s.mu.Unlock()

	select {
	case s.changes <- struct{}{}:
	default:
	}
	return nil
}

func (s *PushSurface) Snapshot(_ context.Context) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return domain.Document{}, fmt.Errorf("%w: no snapshot received yet", apperrors.ErrProbeMiss)
	}
	return s.doc, nil
}

func (s *PushSurface) Changes() <-chan struct{} {
	return s.changes
}
