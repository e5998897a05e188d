package usecase

import (
	"context"
	"fmt"
	"strings"

	"zetatrack/internal/modules/probe/dto"
	probein "zetatrack/internal/modules/probe/port/in"
	probeout "zetatrack/internal/modules/probe/port/out"
	"zetatrack/internal/modules/probe/service"
	apperrors "zetatrack/internal/platform/errors"
)

type Interactor struct {
	svc       *service.ProbeService
	sink      probeout.SnapshotSink
	inspector probeout.PluginInspector
}

func NewInteractor(svc *service.ProbeService, sink probeout.SnapshotSink, inspector probeout.PluginInspector) probein.Usecase {
	return &Interactor{svc: svc, sink: sink, inspector: inspector}
}

func (i *Interactor) Observe(ctx context.Context) (dto.SignalsOutput, error) {
	signals, at, err := i.svc.Observe(ctx)
	if err != nil {
		return dto.SignalsOutput{}, err
	}
	return dto.SignalsOutput{
		SecondsLeft: signals.SecondsLeft,
		HasTimer:    signals.HasTimer,
		Ended:       signals.Ended,
		EndPhrase:   signals.EndPhrase,
		Score:       signals.Score,
		HasScore:    signals.HasScore,
		ObservedAt:  at,
	}, nil
}

func (i *Interactor) Changes() <-chan struct{} {
	return i.svc.Changes()
}

func (i *Interactor) Ingest(ctx context.Context, input dto.SnapshotInput) error {
	if i.sink == nil {
		return fmt.Errorf("%w: surface does not accept pushed snapshots", apperrors.ErrInvalidInput)
	}
	if len(strings.TrimSpace(string(input.HTML))) == 0 {
		return fmt.Errorf("%w: empty snapshot", apperrors.ErrInvalidInput)
	}
	return i.sink.Accept(ctx, input.HTML)
}

func (i *Interactor) CheckPlugin(ctx context.Context, input dto.PluginCheckInput) (dto.PluginMetadataOutput, error) {
	if strings.TrimSpace(input.Binary) == "" {
		return dto.PluginMetadataOutput{}, fmt.Errorf("%w: plugin binary is required", apperrors.ErrInvalidInput)
	}
	if i.inspector == nil {
		return dto.PluginMetadataOutput{}, fmt.Errorf("plugin host is not configured")
	}
	meta, err := i.inspector.Inspect(ctx, input.Binary, input.SHA256)
	if err != nil {
		return dto.PluginMetadataOutput{}, err
	}
	return dto.PluginMetadataOutput{Name: meta.Name, Version: meta.Version, Layout: meta.Layout}, nil
}
