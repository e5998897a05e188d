package domain_test

import (
	"math/rand"
	"testing"
	"time"

	"zetatrack/internal/modules/detector/domain"
)

var t0 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func timer(n int) domain.Reading { return domain.Reading{SecondsLeft: n, HasTimer: true} }

func ended(score int) domain.Reading {
	return domain.Reading{Ended: true, Score: score, HasScore: true}
}

func run(readings ...domain.Reading) (domain.State, []domain.SessionEnded) {
	s := domain.NewState()
	var events []domain.SessionEnded
	for i, r := range readings {
		next, ev := domain.Step(s, r, t0.Add(time.Duration(i)*time.Second))
		if ev != nil {
			events = append(events, *ev)
		}
		s = next
	}
	return s, events
}

func TestIdleIgnoresEverythingButPositiveTimer(t *testing.T) {
	t.Parallel()
	s, events := run(domain.Reading{}, ended(50), timer(0), ended(50))
	if s.Phase != domain.PhaseIdle || len(events) != 0 {
		t.Fatalf("expected idle without events, got %+v %+v", s, events)
	}
	s, _ = run(timer(120))
	if s.Phase != domain.PhaseActive || !s.ActiveSince.Equal(t0) || s.LastRemaining != 120 {
		t.Fatalf("positive timer must activate, got %+v", s)
	}
}

func TestEndPhraseEndsSession(t *testing.T) {
	t.Parallel()
	s, events := run(timer(120), timer(60), ended(37), ended(37))
	if len(events) != 1 {
		t.Fatalf("expected one event, got %+v", events)
	}
	ev := events[0]
	if ev.Score != 37 || ev.Reason != domain.EndByPhrase || !ev.HasDuration || ev.Duration != 2*time.Second || !ev.EndedAt.Equal(t0.Add(2*time.Second)) {
		t.Fatalf("unexpected event %+v", ev)
	}
	if s.Phase != domain.PhaseIdle {
		t.Fatalf("repeated end must leave detector idle, got %+v", s)
	}
}

func TestEndPhraseWinsOverTimerInSameCheck(t *testing.T) {
	t.Parallel()
	both := domain.Reading{SecondsLeft: 0, HasTimer: true, Ended: true, Score: 9, HasScore: true}
	_, events := run(timer(5), both)
	if len(events) != 1 || events[0].Reason != domain.EndByPhrase || events[0].Score != 9 {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestTimerZeroNeedsConfirmation(t *testing.T) {
	t.Parallel()
	s, events := run(timer(5), timer(0))
	if len(events) != 0 || s.Phase != domain.PhaseActive || s.LastRemaining != 0 {
		t.Fatalf("first zero is only a candidate, got %+v %+v", s, events)
	}

	_, events = run(timer(5), timer(0), timer(3), timer(0))
	if len(events) != 0 {
		t.Fatalf("a positive reading cancels the candidate, got %+v", events)
	}

	zeroWithScore := domain.Reading{SecondsLeft: 0, HasTimer: true, Score: 12, HasScore: true}
	s, events = run(timer(5), timer(0), zeroWithScore)
	if len(events) != 1 || events[0].Reason != domain.EndByTimer || events[0].Score != 12 || s.Phase != domain.PhaseIdle {
		t.Fatalf("second zero confirms the end, got %+v %+v", s, events)
	}
}

func TestMissingTimerKeepsActiveState(t *testing.T) {
	t.Parallel()
	s, events := run(timer(5), domain.Reading{}, timer(4))
	if len(events) != 0 || s.Phase != domain.PhaseActive || s.LastRemaining != 4 {
		t.Fatalf("absent timer must not change an active session, got %+v %+v", s, events)
	}
}

func zeroScored(score int) domain.Reading {
	return domain.Reading{SecondsLeft: 0, HasTimer: true, Score: score, HasScore: true}
}

func TestPendingZeroFinishedWhenTimerDisappears(t *testing.T) {
	t.Parallel()
	s, events := run(timer(5), zeroScored(42), domain.Reading{}, timer(120), ended(7))
	if len(events) != 2 {
		t.Fatalf("expected two sessions, got %+v", events)
	}
	first, second := events[0], events[1]
	if first.Score != 42 || first.Reason != domain.EndByTimer || !first.EndedAt.Equal(t0.Add(time.Second)) || first.Duration != time.Second {
		t.Fatalf("unexpected first session %+v", first)
	}
	if second.Score != 7 || second.Reason != domain.EndByPhrase || second.Duration != time.Second {
		t.Fatalf("second session must start at its own timer, got %+v", second)
	}
	if s.Phase != domain.PhaseIdle {
		t.Fatalf("expected idle, got %+v", s)
	}
}

func TestPendingZeroFinishedOnTimerRestart(t *testing.T) {
	t.Parallel()
	s, events := run(timer(5), zeroScored(42), timer(120))
	if len(events) != 1 || events[0].Score != 42 || events[0].Reason != domain.EndByTimer || !events[0].EndedAt.Equal(t0.Add(time.Second)) {
		t.Fatalf("restart must finish the pending session, got %+v", events)
	}
	if s.Phase != domain.PhaseActive || !s.ActiveSince.Equal(t0.Add(2*time.Second)) || s.LastRemaining != 120 || s.ZeroPending {
		t.Fatalf("restart must open a fresh session, got %+v", s)
	}
}

func TestConfirmedZeroKeepsScoreSeenAtCandidate(t *testing.T) {
	t.Parallel()
	_, events := run(timer(5), zeroScored(42), timer(0))
	if len(events) != 1 || events[0].Score != 42 {
		t.Fatalf("score from the first zero must survive, got %+v", events)
	}
}

func TestEndPhraseAfterZeroFallsBackToCandidateScore(t *testing.T) {
	t.Parallel()
	_, events := run(timer(5), zeroScored(42), domain.Reading{Ended: true})
	if len(events) != 1 || events[0].Score != 42 || events[0].Reason != domain.EndByPhrase {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestUnreadableScoreDefaultsToZero(t *testing.T) {
	t.Parallel()
	_, events := run(timer(5), domain.Reading{Ended: true})
	if len(events) != 1 || events[0].Score != 0 {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestUnknownStartGivesUnknownDuration(t *testing.T) {
	t.Parallel()
	s := domain.State{Phase: domain.PhaseActive}
	next, ev := domain.Step(s, ended(4), t0)
	if ev == nil || ev.HasDuration || next.Phase != domain.PhaseIdle {
		t.Fatalf("unexpected result %+v %+v", next, ev)
	}
}

func TestRandomSequencesEmitOncePerActivation(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		s := domain.NewState()
		activations, events := 0, 0
		for i := 0; i < 60; i++ {
			var r domain.Reading
			switch rng.Intn(4) {
			case 0:
				r = timer(rng.Intn(3))
			case 1:
				r = ended(rng.Intn(100))
			case 2:
				r = domain.Reading{SecondsLeft: rng.Intn(2), HasTimer: true, Ended: rng.Intn(2) == 0}
			}
			before := s.Phase
			next, ev := domain.Step(s, r, t0.Add(time.Duration(i)*time.Second))
			if before == domain.PhaseIdle && next.Phase == domain.PhaseActive {
				activations++
			}
			if ev != nil {
				events++
				if before != domain.PhaseActive {
					t.Fatalf("round %d: event emitted while idle", round)
				}
				if next.Phase == domain.PhaseActive {
					if ev.Reason != domain.EndByTimer || next.ZeroPending {
						t.Fatalf("round %d: only a timer restart may end and reopen, got %+v %+v", round, ev, next)
					}
					activations++
				}
			}
			s = next
		}
		open := 0
		if s.Phase == domain.PhaseActive {
			open = 1
		}
		if events != activations-open {
			t.Fatalf("round %d: %d activations, %d events, open=%d", round, activations, events, open)
		}
	}
}
