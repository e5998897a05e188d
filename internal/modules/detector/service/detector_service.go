package service

import (
	"context"
	"sync"

	"zetatrack/internal/modules/detector/domain"
	detectorout "zetatrack/internal/modules/detector/port/out"
	"zetatrack/internal/platform/clock"
)

type DetectorService struct {
	clock  clock.Clock
	source detectorout.SignalSource

	checkMu sync.Mutex
	mu      sync.Mutex
	state   domain.State
}

func NewDetectorService(clock clock.Clock, source detectorout.SignalSource) *DetectorService {
	return &DetectorService{clock: clock, source: source, state: domain.NewState()}
}

// Check reads the page once and advances the state. Checks are serialized and
// the state is already Idle when a finished session is returned.
func (s *DetectorService) Check(ctx context.Context) (domain.State, *domain.SessionEnded, error) {
	s.checkMu.Lock()
	defer s.checkMu.Unlock()
	reading, err := s.source.Read(ctx)
	if err != nil {
		return s.State(), nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ended := domain.Step(s.state, reading, s.clock.Now())
	s.state = next
	return next, ended, nil
}

func (s *DetectorService) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *DetectorService) Changes() <-chan struct{} {
	return s.source.Changes()
}
