package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"zetatrack/internal/modules/detector/domain"
	"zetatrack/internal/modules/detector/dto"
	detectorin "zetatrack/internal/modules/detector/port/in"
	"zetatrack/internal/modules/detector/service"
	exportdto "zetatrack/internal/modules/export/dto"
	exportin "zetatrack/internal/modules/export/port/in"
	ledgerdto "zetatrack/internal/modules/ledger/dto"
	ledgerin "zetatrack/internal/modules/ledger/port/in"
	"zetatrack/internal/platform/clock"
	apperrors "zetatrack/internal/platform/errors"
)

const (
	triggerTimer    = "timer"
	triggerMutation = "mutation"
	triggerManual   = "manual"
)

// Recorder receives detector metrics.
type Recorder interface {
	RecordCheck(trigger string)
	RecordSession(reason string)
	RecordProbeMiss()
	RecordAppendError()
}

type noopRecorder struct{}

func (noopRecorder) RecordCheck(string)   {}
func (noopRecorder) RecordSession(string) {}
func (noopRecorder) RecordProbeMiss()     {}
func (noopRecorder) RecordAppendError()   {}

type Options struct {
	PollInterval time.Duration
	Debounce     time.Duration
	DrainTimeout time.Duration
	Tickers      clock.TickerFactory
}

type Interactor struct {
	svc      *service.DetectorService
	ledger   ledgerin.Usecase
	notifier exportin.Usecase
	recorder Recorder
	log      zerolog.Logger
	opts     Options
}

func NewInteractor(svc *service.DetectorService, ledger ledgerin.Usecase, notifier exportin.Usecase, recorder Recorder, log zerolog.Logger, opts Options) detectorin.Usecase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.DrainTimeout <= 0 {
		opts.DrainTimeout = 5 * time.Second
	}
	if opts.Tickers == nil {
		opts.Tickers = clock.NewSystemTicker
	}
	return &Interactor{svc: svc, ledger: ledger, notifier: notifier, recorder: recorder, log: log, opts: opts}
}

func (i *Interactor) Run(ctx context.Context) error {
	persistCtx, cancelPersist := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelPersist()

	pending := make(chan domain.SessionEnded, 16)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ended := range pending {
			_ = i.persist(persistCtx, ended)
		}
	}()

	ticker := i.opts.Tickers(i.opts.PollInterval)
	defer ticker.Stop()

	changes := i.svc.Changes()
	var debounce *time.Timer
	var debounced <-chan time.Time

	i.log.Info().
		Dur("poll_interval", i.opts.PollInterval).
		Dur("debounce", i.opts.Debounce).
		Bool("change_notifications", changes != nil).
		Msg("detector started")

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			close(pending)
			i.drain(drained, cancelPersist)
			i.log.Info().Msg("detector stopped")
			return nil
		case <-ticker.C():
			i.check(ctx, triggerTimer, pending)
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			if debounced != nil {
				continue
			}
			if i.opts.Debounce <= 0 {
				i.check(ctx, triggerMutation, pending)
				continue
			}
			debounce = time.NewTimer(i.opts.Debounce)
			debounced = debounce.C
		case <-debounced:
			debounce, debounced = nil, nil
			i.check(ctx, triggerMutation, pending)
		}
	}
}

func (i *Interactor) Check(ctx context.Context) (dto.CheckOutput, error) {
	state, ended, err := i.observe(ctx, triggerManual)
	if err != nil {
		return dto.CheckOutput{Phase: string(state.Phase)}, err
	}
	if ended == nil {
		return dto.CheckOutput{Phase: string(state.Phase)}, nil
	}
	out := dto.CheckOutput{
		Phase:       string(state.Phase),
		Ended:       true,
		Score:       ended.Score,
		Reason:      string(ended.Reason),
		EndedAt:     ended.EndedAt,
		Duration:    ended.Duration,
		HasDuration: ended.HasDuration,
	}
	return out, i.persist(ctx, *ended)
}

func (i *Interactor) State(_ context.Context) (dto.StateOutput, error) {
	s := i.svc.State()
	return dto.StateOutput{
		Phase:         string(s.Phase),
		ActiveSince:   s.ActiveSince,
		HasStart:      s.HasStart,
		LastRemaining: s.LastRemaining,
		HasRemaining:  s.HasRemaining,
	}, nil
}

func (i *Interactor) check(ctx context.Context, trigger string, pending chan<- domain.SessionEnded) {
	_, ended, err := i.observe(ctx, trigger)
	if err != nil || ended == nil {
		return
	}
	select {
	case pending <- *ended:
	case <-ctx.Done():
		i.recorder.RecordAppendError()
		i.log.Error().
			Int("score", ended.Score).
			Time("ended_at", ended.EndedAt).
			Msg("session dropped: detector stopping with appends backed up")
	}
}

// observe runs one check. Probe misses are expected before the game renders
// and are only logged at debug level.
func (i *Interactor) observe(ctx context.Context, trigger string) (domain.State, *domain.SessionEnded, error) {
	i.recorder.RecordCheck(trigger)
	before := i.svc.State().Phase
	state, ended, err := i.svc.Check(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrProbeMiss) {
			i.recorder.RecordProbeMiss()
			i.log.Debug().Err(err).Str("trigger", trigger).Msg("no signal")
		} else if ctx.Err() == nil {
			i.log.Warn().Err(err).Str("trigger", trigger).Msg("check failed")
		}
		return state, nil, err
	}
	if ended != nil {
		i.recorder.RecordSession(string(ended.Reason))
		i.log.Info().
			Int("score", ended.Score).
			Str("reason", string(ended.Reason)).
			Dur("duration", ended.Duration).
			Msg("session ended")
	}
	restarted := ended != nil && state.Phase == domain.PhaseActive
	if (before == domain.PhaseIdle && state.Phase == domain.PhaseActive) || restarted {
		i.log.Info().Int("seconds_left", state.LastRemaining).Msg("session started")
	}
	return state, ended, nil
}

// persist appends a finished session. A failed append is logged and dropped.
func (i *Interactor) persist(ctx context.Context, ended domain.SessionEnded) error {
	err := i.ledger.Append(ctx, ledgerdto.AppendInput{
		Score:       ended.Score,
		EndedAt:     ended.EndedAt,
		Duration:    ended.Duration,
		HasDuration: ended.HasDuration,
	})
	if err != nil {
		i.recorder.RecordAppendError()
		i.log.Error().Err(err).Int("score", ended.Score).Msg("session not saved")
		return err
	}
	i.log.Info().Int("score", ended.Score).Time("ended_at", ended.EndedAt).Msg("session saved")
	if i.notifier != nil {
		_ = i.notifier.Notify(ctx, exportdto.NotifyInput{Score: ended.Score})
	}
	return nil
}

func (i *Interactor) drain(drained <-chan struct{}, cancel context.CancelFunc) {
	timer := time.NewTimer(i.opts.DrainTimeout)
	defer timer.Stop()
	select {
	case <-drained:
	case <-timer.C:
		i.log.Warn().Dur("timeout", i.opts.DrainTimeout).Msg("abandoning pending appends")
		cancel()
		<-drained
	}
}
