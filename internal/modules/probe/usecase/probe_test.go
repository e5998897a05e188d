package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	probeout "zetatrack/internal/modules/probe/adapter/out"
	"zetatrack/internal/modules/probe/domain"
	probedto "zetatrack/internal/modules/probe/dto"
	"zetatrack/internal/modules/probe/service"
	"zetatrack/internal/modules/probe/usecase"
	apperrors "zetatrack/internal/platform/errors"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type failingSurface struct{}

func (failingSurface) Snapshot(context.Context) (domain.Document, error) {
	return domain.Document{}, errors.New("tab closed")
}
func (failingSurface) Changes() <-chan struct{} { return nil }

func TestObserveThroughPushedSnapshot(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	push := probeout.NewPushSurface()
	svc := service.NewProbeService(fixedClock{now: now}, push, probeout.NewLayoutDecoder(domain.DefaultLayout()))
	uc := usecase.NewInteractor(svc, push, probeout.NewPluginHost())

	if _, err := uc.Observe(context.Background()); !errors.Is(err, apperrors.ErrProbeMiss) {
		t.Fatalf("expected probe miss, got %v", err)
	}
	if err := uc.Ingest(context.Background(), probedto.SnapshotInput{HTML: []byte(`<div>Seconds left: 58</div><div>Score: 3</div>`)}); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if uc.Changes() == nil {
		t.Fatalf("push surface must expose change notifications")
	}
	out, err := uc.Observe(context.Background())
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if !out.HasTimer || out.SecondsLeft != 58 || out.Score != 3 || out.Ended {
		t.Fatalf("unexpected output: %+v", out)
	}
	if !out.ObservedAt.Equal(now) {
		t.Fatalf("unexpected observed at %s", out.ObservedAt)
	}
}

func TestObserveWrapsSurfaceFailureAsProbeMiss(t *testing.T) {
	t.Parallel()
	svc := service.NewProbeService(fixedClock{}, failingSurface{}, probeout.NewLayoutDecoder(domain.DefaultLayout()))
	uc := usecase.NewInteractor(svc, nil, nil)
	if _, err := uc.Observe(context.Background()); !errors.Is(err, apperrors.ErrProbeMiss) {
		t.Fatalf("expected probe miss, got %v", err)
	}
}

func TestIngestValidation(t *testing.T) {
	t.Parallel()
	svc := service.NewProbeService(fixedClock{}, failingSurface{}, probeout.NewLayoutDecoder(domain.DefaultLayout()))
	noSink := usecase.NewInteractor(svc, nil, nil)
	if err := noSink.Ingest(context.Background(), probedto.SnapshotInput{HTML: []byte("<p>x</p>")}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input without sink, got %v", err)
	}
	push := probeout.NewPushSurface()
	withSink := usecase.NewInteractor(svc, push, nil)
	if err := withSink.Ingest(context.Background(), probedto.SnapshotInput{HTML: []byte("   ")}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank snapshot, got %v", err)
	}
}

func TestCheckPluginRejectsMissingBinary(t *testing.T) {
	t.Parallel()
	svc := service.NewProbeService(fixedClock{}, nil, probeout.NewLayoutDecoder(domain.DefaultLayout()))
	uc := usecase.NewInteractor(svc, nil, probeout.NewPluginHost())
	if _, err := uc.CheckPlugin(context.Background(), probedto.PluginCheckInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "no-such-plugin")
	if _, err := uc.CheckPlugin(context.Background(), probedto.PluginCheckInput{Binary: missing}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
