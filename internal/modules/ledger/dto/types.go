package dto

import "time"

type AppendInput struct {
	Score       int
	EndedAt     time.Time
	Duration    time.Duration
	HasDuration bool
}

type RecordOutput struct {
	Score       int
	EndedAt     time.Time
	Duration    time.Duration
	HasDuration bool
}

type ReadAllOutput struct {
	Records   []RecordOutput
	Malformed int
}
