package out

import (
	"context"

	"zetatrack/internal/modules/detector/domain"
	detectorout "zetatrack/internal/modules/detector/port/out"
	probein "zetatrack/internal/modules/probe/port/in"
)

type ProbeSignalSource struct {
	probe probein.Usecase
}

func NewProbeSignalSource(probe probein.Usecase) detectorout.SignalSource {
	return &ProbeSignalSource{probe: probe}
}

func (s *ProbeSignalSource) Read(ctx context.Context) (domain.Reading, error) {
	out, err := s.probe.Observe(ctx)
	if err != nil {
		return domain.Reading{}, err
	}
	return domain.Reading{
		SecondsLeft: out.SecondsLeft,
		HasTimer:    out.HasTimer,
		Ended:       out.Ended,
		Score:       out.Score,
		HasScore:    out.HasScore,
	}, nil
}

func (s *ProbeSignalSource) Changes() <-chan struct{} {
	return s.probe.Changes()
}
