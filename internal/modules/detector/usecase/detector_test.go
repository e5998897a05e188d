package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"zetatrack/internal/modules/detector/domain"
	detectorin "zetatrack/internal/modules/detector/port/in"
	"zetatrack/internal/modules/detector/service"
	"zetatrack/internal/modules/detector/usecase"
	exportdto "zetatrack/internal/modules/export/dto"
	ledgerdto "zetatrack/internal/modules/ledger/dto"
	"zetatrack/internal/platform/clock"
	apperrors "zetatrack/internal/platform/errors"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// scriptedSource replays readings and then repeats the last one.
type scriptedSource struct {
	mu       sync.Mutex
	readings []domain.Reading
	errs     []error
	reads    int
	changes  chan struct{}
}

func (s *scriptedSource) Read(context.Context) (domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := min(s.reads, len(s.readings)-1)
	s.reads++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return domain.Reading{}, s.errs[idx]
	}
	return s.readings[idx], nil
}

func (s *scriptedSource) Changes() <-chan struct{} {
	if s.changes == nil {
		return nil
	}
	return s.changes
}

func (s *scriptedSource) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

type fakeLedger struct {
	mu      sync.Mutex
	appends []ledgerdto.AppendInput
	err     error
	// stall, when set, holds every append until it is closed or ctx ends.
	stall chan struct{}
}

func (f *fakeLedger) Append(ctx context.Context, in ledgerdto.AppendInput) error {
	if f.stall != nil {
		select {
		case <-f.stall:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.appends = append(f.appends, in)
	return nil
}

func (f *fakeLedger) ReadAll(context.Context) (ledgerdto.ReadAllOutput, error) {
	return ledgerdto.ReadAllOutput{}, nil
}

func (f *fakeLedger) Appended() []ledgerdto.AppendInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ledgerdto.AppendInput(nil), f.appends...)
}

type fakeNotifier struct {
	mu     sync.Mutex
	scores []int
}

func (f *fakeNotifier) ExportCSV(context.Context, exportdto.ExportInput) (exportdto.ExportOutput, error) {
	return exportdto.ExportOutput{}, nil
}

func (f *fakeNotifier) Notify(_ context.Context, in exportdto.NotifyInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = append(f.scores, in.Score)
	return nil
}

func (f *fakeNotifier) CurrentToast(context.Context) (exportdto.ToastOutput, error) {
	return exportdto.ToastOutput{}, nil
}

func (f *fakeNotifier) Scores() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.scores...)
}

type countingRecorder struct {
	mu        sync.Mutex
	checks    map[string]int
	sessions  map[string]int
	misses    int
	appendErr int
}

func newRecorder() *countingRecorder {
	return &countingRecorder{checks: map[string]int{}, sessions: map[string]int{}}
}

func (r *countingRecorder) RecordCheck(trigger string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[trigger]++
}

func (r *countingRecorder) RecordSession(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[reason]++
}

func (r *countingRecorder) RecordProbeMiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses++
}

func (r *countingRecorder) RecordAppendError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendErr++
}

func (r *countingRecorder) Checks(trigger string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.checks[trigger]
}

type manualTicker struct {
	c chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               {}

func timer(n int) domain.Reading { return domain.Reading{SecondsLeft: n, HasTimer: true} }

func ended(score int) domain.Reading {
	return domain.Reading{Ended: true, Score: score, HasScore: true}
}

type harness struct {
	uc       detectorin.Usecase
	source   *scriptedSource
	ledger   *fakeLedger
	notifier *fakeNotifier
	recorder *countingRecorder
	ticker   *manualTicker
}

func newHarness(source *scriptedSource, opts usecase.Options) harness {
	h := harness{
		source:   source,
		ledger:   &fakeLedger{},
		notifier: &fakeNotifier{},
		recorder: newRecorder(),
		ticker:   &manualTicker{c: make(chan time.Time)},
	}
	opts.Tickers = func(time.Duration) clock.Ticker { return h.ticker }
	svc := service.NewDetectorService(&stepClock{now: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}, source)
	h.uc = usecase.NewInteractor(svc, h.ledger, h.notifier, h.recorder, zerolog.Nop(), opts)
	return h
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestCheckSavesOneSessionAndToasts(t *testing.T) {
	t.Parallel()
	h := newHarness(&scriptedSource{readings: []domain.Reading{timer(120), timer(60), ended(55), ended(55)}}, usecase.Options{})
	ctx := context.Background()

	var last error
	for i := 0; i < 4; i++ {
		out, err := h.uc.Check(ctx)
		last = err
		if i == 2 && (!out.Ended || out.Score != 55 || out.Reason != "phrase" || out.Phase != "idle") {
			t.Fatalf("third check must end the session: %+v", out)
		}
		if i == 3 && out.Ended {
			t.Fatalf("repeated end phrase while idle must not end again: %+v", out)
		}
	}
	if last != nil {
		t.Fatalf("check: %v", last)
	}
	appends := h.ledger.Appended()
	if len(appends) != 1 || appends[0].Score != 55 || !appends[0].HasDuration || appends[0].Duration != 2*time.Second {
		t.Fatalf("unexpected appends %+v", appends)
	}
	if got := h.notifier.Scores(); len(got) != 1 || got[0] != 55 {
		t.Fatalf("expected one toast for 55, got %v", got)
	}
}

func TestProbeMissIsNoSignal(t *testing.T) {
	t.Parallel()
	miss := apperrors.ErrProbeMiss
	h := newHarness(&scriptedSource{
		readings: []domain.Reading{{}, timer(30), {}, ended(8)},
		errs:     []error{miss, nil, miss, nil},
	}, usecase.Options{})
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		_, _ = h.uc.Check(ctx)
	}
	if h.recorder.misses != 2 {
		t.Fatalf("expected two probe misses, got %d", h.recorder.misses)
	}
	if appends := h.ledger.Appended(); len(appends) != 1 || appends[0].Score != 8 {
		t.Fatalf("a miss must not disturb the session: %+v", appends)
	}
}

func TestAppendFailureIsDroppedWithoutToast(t *testing.T) {
	t.Parallel()
	h := newHarness(&scriptedSource{readings: []domain.Reading{timer(10), ended(3), timer(10), ended(4)}}, usecase.Options{})
	h.ledger.err = apperrors.ErrPersistence
	ctx := context.Background()

	_, _ = h.uc.Check(ctx)
	if _, err := h.uc.Check(ctx); !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	state, _ := h.uc.State(ctx)
	if state.Phase != "idle" {
		t.Fatalf("detector must be idle after a failed append, got %+v", state)
	}
	if len(h.notifier.Scores()) != 0 || h.recorder.appendErr != 1 {
		t.Fatalf("failed append must not toast: toasts=%v errors=%d", h.notifier.Scores(), h.recorder.appendErr)
	}

	h.ledger.mu.Lock()
	h.ledger.err = nil
	h.ledger.mu.Unlock()
	_, _ = h.uc.Check(ctx)
	if _, err := h.uc.Check(ctx); err != nil {
		t.Fatalf("next session must still be saved: %v", err)
	}
	if appends := h.ledger.Appended(); len(appends) != 1 || appends[0].Score != 4 {
		t.Fatalf("unexpected appends %+v", appends)
	}
}

func TestRunPersistsFromTickerAndDrainsOnCancel(t *testing.T) {
	t.Parallel()
	source := &scriptedSource{readings: []domain.Reading{timer(5), timer(0), ended(42)}}
	h := newHarness(source, usecase.Options{PollInterval: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.uc.Run(ctx) }()

	for i := 0; i < 5; i++ {
		h.ticker.c <- time.Now()
	}
	waitFor(t, "append", func() bool { return len(h.ledger.Appended()) == 1 })
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("run did not stop")
	}

	appends := h.ledger.Appended()
	if len(appends) != 1 || appends[0].Score != 42 {
		t.Fatalf("expected exactly one record with 42, got %+v", appends)
	}
	if h.recorder.Checks("timer") != 5 || h.recorder.sessions["phrase"] != 1 {
		t.Fatalf("unexpected metrics %+v %+v", h.recorder.checks, h.recorder.sessions)
	}
}

func TestRunCoalescesMutationBursts(t *testing.T) {
	t.Parallel()
	source := &scriptedSource{readings: []domain.Reading{{}}, changes: make(chan struct{})}
	h := newHarness(source, usecase.Options{Debounce: 50 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.uc.Run(ctx) }()

	for i := 0; i < 10; i++ {
		source.changes <- struct{}{}
	}
	waitFor(t, "debounced check", func() bool { return h.recorder.Checks("mutation") >= 1 })
	time.Sleep(100 * time.Millisecond)
	if got := h.recorder.Checks("mutation"); got != 1 {
		t.Fatalf("a burst must yield one check, got %d", got)
	}

	source.changes <- struct{}{}
	waitFor(t, "second check", func() bool { return h.recorder.Checks("mutation") == 2 })
	cancel()
	<-done
}

func TestRunStopsWhileAppendQueueIsFull(t *testing.T) {
	t.Parallel()
	const sessions = 18
	var readings []domain.Reading
	for i := 0; i < sessions; i++ {
		readings = append(readings, timer(10), ended(i))
	}
	readings = append(readings, domain.Reading{})
	source := &scriptedSource{readings: readings}
	h := newHarness(source, usecase.Options{DrainTimeout: 50 * time.Millisecond})
	h.ledger.stall = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.uc.Run(ctx) }()

	stopTicks := make(chan struct{})
	defer close(stopTicks)
	go func() {
		for {
			select {
			case h.ticker.c <- time.Now():
			case <-stopTicks:
				return
			}
		}
	}()

	// One append in flight plus a full queue: the last session cannot be handed off.
	waitFor(t, "all readings", func() bool { return source.Reads() >= 2*sessions })
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("run ignored cancellation while the append queue was full")
	}
	h.recorder.mu.Lock()
	dropped := h.recorder.appendErr
	h.recorder.mu.Unlock()
	if dropped == 0 {
		t.Fatalf("dropped sessions must be counted as append errors")
	}
	if len(h.ledger.Appended()) != 0 {
		t.Fatalf("stalled ledger must not have saved anything")
	}
}
