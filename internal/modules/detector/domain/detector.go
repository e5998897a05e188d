package domain

import "time"

type Phase string

const (
	PhaseIdle   Phase = "idle"
	PhaseActive Phase = "active"
)

// State is owned by one detector instance for the lifetime of a page. It is
// never persisted.
//
// While ZeroPending is set the first zero reading has been seen and the
// session waits for confirmation. PeakBeforeZero is the last positive reading
// before that zero; ZeroScore and ZeroAt are what the page showed at the zero.
type State struct {
	Phase         Phase
	ActiveSince   time.Time
	HasStart      bool
	LastRemaining int
	HasRemaining  bool

	ZeroPending    bool
	ZeroAt         time.Time
	ZeroScore      int
	ZeroHasScore   bool
	PeakBeforeZero int
}

func NewState() State {
	return State{Phase: PhaseIdle}
}

// GameSignal is the narrow view of the game page the detector reads.
type GameSignal interface {
	RemainingSeconds() (int, bool)
	IsEnded() bool
	CurrentScore() (int, bool)
}

// Reading is one decoded observation of the page.
type Reading struct {
	SecondsLeft int
	HasTimer    bool
	Ended       bool
	Score       int
	HasScore    bool
}

func (r Reading) RemainingSeconds() (int, bool) { return r.SecondsLeft, r.HasTimer }
func (r Reading) IsEnded() bool                 { return r.Ended }
func (r Reading) CurrentScore() (int, bool)     { return r.Score, r.HasScore }

type EndReason string

const (
	EndByPhrase EndReason = "phrase"
	EndByTimer  EndReason = "timer"
)

type SessionEnded struct {
	Score       int
	EndedAt     time.Time
	Duration    time.Duration
	HasDuration bool
	Reason      EndReason
}

// Step applies one observation and returns at most one event.
//
// An end phrase ends an active session at once. A zero timer is a candidate
// end confirmed by a second consecutive zero. A pending candidate is also
// finished, dated at the zero, when the timer disappears or when the timer
// restarts above its last positive reading; a restart opens the next session
// in the returned state. A positive reading at or below that peak cancels the
// candidate.
func Step(s State, sig GameSignal, now time.Time) (State, *SessionEnded) {
	remaining, hasTimer := sig.RemainingSeconds()

	if s.Phase != PhaseActive {
		if hasTimer && remaining > 0 {
			return start(remaining, now), nil
		}
		return s, nil
	}

	if sig.IsEnded() {
		score, ok := sig.CurrentScore()
		if !ok && s.ZeroPending {
			score, ok = s.ZeroScore, s.ZeroHasScore
		}
		return NewState(), end(s, score, ok, now, EndByPhrase)
	}
	if !hasTimer {
		if s.ZeroPending {
			return NewState(), end(s, s.ZeroScore, s.ZeroHasScore, s.ZeroAt, EndByTimer)
		}
		return s, nil
	}
	if remaining > 0 {
		if s.ZeroPending {
			if remaining > s.PeakBeforeZero {
				return start(remaining, now), end(s, s.ZeroScore, s.ZeroHasScore, s.ZeroAt, EndByTimer)
			}
			s = clearZero(s)
		}
		s.LastRemaining = remaining
		s.HasRemaining = true
		return s, nil
	}
	if s.ZeroPending {
		score, ok := sig.CurrentScore()
		if !ok {
			score, ok = s.ZeroScore, s.ZeroHasScore
		}
		return NewState(), end(s, score, ok, now, EndByTimer)
	}
	s.ZeroPending = true
	s.ZeroAt = now
	s.ZeroScore, s.ZeroHasScore = sig.CurrentScore()
	s.PeakBeforeZero = s.LastRemaining
	s.LastRemaining = 0
	s.HasRemaining = true
	return s, nil
}

func start(remaining int, now time.Time) State {
	return State{
		Phase:         PhaseActive,
		ActiveSince:   now,
		HasStart:      true,
		LastRemaining: remaining,
		HasRemaining:  true,
	}
}

func clearZero(s State) State {
	s.ZeroPending = false
	s.ZeroAt = time.Time{}
	s.ZeroScore, s.ZeroHasScore = 0, false
	s.PeakBeforeZero = 0
	return s
}

func end(s State, score int, ok bool, at time.Time, reason EndReason) *SessionEnded {
	if !ok || score < 0 {
		score = 0
	}
	ended := &SessionEnded{Score: score, EndedAt: at, Reason: reason}
	if s.HasStart {
		ended.Duration = max(at.Sub(s.ActiveSince), 0)
		ended.HasDuration = true
	}
	return ended
}
