package dto

import "time"

type SummaryOutput struct {
	Count      int
	Best       int
	Average    int
	TodayCount int
	Malformed  int
}

type SeriesOutput struct {
	Scores []int
}

type HistoryInput struct {
	Limit int
}

type HistoryEntryOutput struct {
	Score       int
	EndedAt     time.Time
	Duration    time.Duration
	HasDuration bool
	Trend       string
}
