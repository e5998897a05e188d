package service

import (
	"context"
	"fmt"
	"time"

	"zetatrack/internal/modules/probe/domain"
	probeout "zetatrack/internal/modules/probe/port/out"
	"zetatrack/internal/platform/clock"
	apperrors "zetatrack/internal/platform/errors"
)

type ProbeService struct {
	clock   clock.Clock
	surface probeout.Surface
	decoder probeout.Decoder
}

func NewProbeService(clock clock.Clock, surface probeout.Surface, decoder probeout.Decoder) *ProbeService {
	return &ProbeService{clock: clock, surface: surface, decoder: decoder}
}

// Observe snapshots the surface and decodes its signals. Every failure is a
// probe miss: the caller treats it as "no signal" for this check.
func (s *ProbeService) Observe(ctx context.Context) (domain.Signals, time.Time, error) {
	if s.surface == nil {
		return domain.Signals{}, time.Time{}, fmt.Errorf("%w: no surface configured", apperrors.ErrProbeMiss)
	}
	doc, err := s.surface.Snapshot(ctx)
	if err != nil {
		return domain.Signals{}, time.Time{}, fmt.Errorf("%w: snapshot: %w", apperrors.ErrProbeMiss, err)
	}
	signals, err := s.decoder.Decode(ctx, doc)
	if err != nil {
		return domain.Signals{}, time.Time{}, fmt.Errorf("%w: decode: %w", apperrors.ErrProbeMiss, err)
	}
	return signals, s.clock.Now(), nil
}

func (s *ProbeService) Changes() <-chan struct{} {
	if s.surface == nil {
		return nil
	}
	return s.surface.Changes()
}
