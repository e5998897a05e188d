package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	ledgerdto "zetatrack/internal/modules/ledger/dto"
	statsout "zetatrack/internal/modules/stats/adapter/out"
	statsdto "zetatrack/internal/modules/stats/dto"
	statsin "zetatrack/internal/modules/stats/port/in"
	"zetatrack/internal/modules/stats/service"
	"zetatrack/internal/modules/stats/usecase"
	apperrors "zetatrack/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeLedger struct {
	out ledgerdto.ReadAllOutput
	err error
}

func (f *fakeLedger) Append(context.Context, ledgerdto.AppendInput) error { return nil }
func (f *fakeLedger) ReadAll(context.Context) (ledgerdto.ReadAllOutput, error) {
	return f.out, f.err
}

func ledgerOf(start time.Time, scores ...int) *fakeLedger {
	out := ledgerdto.ReadAllOutput{}
	for i, s := range scores {
		out.Records = append(out.Records, ledgerdto.RecordOutput{Score: s, EndedAt: start.Add(time.Duration(i) * time.Hour)})
	}
	return &fakeLedger{out: out}
}

func newInteractor(ledger *fakeLedger, now time.Time) statsin.Usecase {
	return usecase.NewInteractor(service.NewStatsService(fakeClock{now: now}, time.UTC, statsout.NewLedgerRecordSource(ledger)))
}

func TestSummaryCountsTodayAndMalformed(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	ledger := ledgerOf(start, 10, 20, 30)
	ledger.out.Malformed = 1
	uc := newInteractor(ledger, start.Add(12*time.Hour))

	got, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := statsdto.SummaryOutput{Count: 3, Best: 30, Average: 20, TodayCount: 3, Malformed: 1}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestRecentDefaultsToTwentyGames(t *testing.T) {
	t.Parallel()
	scores := make([]int, 25)
	for i := range scores {
		scores[i] = i
	}
	uc := newInteractor(ledgerOf(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), scores...), time.Now())
	got, err := uc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got.Scores) != 20 || got.Scores[0] != 5 || got.Scores[19] != 24 {
		t.Fatalf("unexpected series %v", got.Scores)
	}
}

func TestHistoryLimitAndTrend(t *testing.T) {
	t.Parallel()
	uc := newInteractor(ledgerOf(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 30, 20, 20, 10), time.Now())
	got, err := uc.History(context.Background(), statsdto.HistoryInput{Limit: 2})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 2 || got[0].Score != 10 || got[0].Trend != "down" || got[1].Trend != "neutral" {
		t.Fatalf("unexpected history %+v", got)
	}
	if _, err := uc.History(context.Background(), statsdto.HistoryInput{Limit: -1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLedgerFailurePropagates(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&fakeLedger{err: apperrors.ErrPersistence}, time.Now())
	if _, err := uc.Summary(context.Background()); !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
