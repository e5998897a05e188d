package domain

import (
	"math"
	"sort"
	"time"
)

const DefaultRecentWindow = 20

type Record struct {
	Score       int
	EndedAt     time.Time
	Duration    time.Duration
	HasDuration bool
}

type Summary struct {
	Count      int
	Best       int
	Average    int
	TodayCount int
}

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
	TrendNone    Trend = "none"
)

type Entry struct {
	Record Record
	Trend  Trend
}

// Summarize aggregates records. TodayCount compares calendar dates in the
// location of now.
func Summarize(records []Record, now time.Time) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	loc := now.Location()
	year, month, day := now.Date()
	best := records[0].Score
	sum := 0
	today := 0
	for _, r := range records {
		sum += r.Score
		if r.Score > best {
			best = r.Score
		}
		y, m, d := r.EndedAt.In(loc).Date()
		if y == year && m == month && d == day {
			today++
		}
	}
	return Summary{
		Count:      len(records),
		Best:       best,
		Average:    int(math.Round(float64(sum) / float64(len(records)))),
		TodayCount: today,
	}
}

// RecentSeries returns the last n records in insertion order.
func RecentSeries(records []Record, n int) []Record {
	if n <= 0 {
		return []Record{}
	}
	if len(records) <= n {
		return append([]Record(nil), records...)
	}
	return append([]Record(nil), records[len(records)-n:]...)
}

// ByRecency sorts newest first, keeping insertion order for equal end times,
// and marks each entry against the next older one.
func ByRecency(records []Record) []Entry {
	sorted := append([]Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EndedAt.After(sorted[j].EndedAt)
	})
	out := make([]Entry, len(sorted))
	for i, r := range sorted {
		out[i] = Entry{Record: r, Trend: TrendNone}
		if i+1 < len(sorted) {
			out[i].Trend = compare(r.Score, sorted[i+1].Score)
		}
	}
	return out
}

func compare(current, older int) Trend {
	switch {
	case current > older:
		return TrendUp
	case current < older:
		return TrendDown
	default:
		return TrendNeutral
	}
}
