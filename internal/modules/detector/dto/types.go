package dto

import "time"

type CheckOutput struct {
	Phase       string
	Ended       bool
	Score       int
	Reason      string
	EndedAt     time.Time
	Duration    time.Duration
	HasDuration bool
}

type StateOutput struct {
	Phase         string
	ActiveSince   time.Time
	HasStart      bool
	LastRemaining int
	HasRemaining  bool
}
