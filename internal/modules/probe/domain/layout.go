package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultTimerPattern = `Seconds left:\s*(\d+)`
	DefaultScorePattern = `Score:\s*(\d+)`
)

var DefaultEndPhrases = []string{"Time's up!", "Game over", "Final score", "Well done!"}

// Signals is what one observation of the game page yields.
type Signals struct {
	SecondsLeft int
	HasTimer    bool
	Ended       bool
	EndPhrase   string
	Score       int
	HasScore    bool
}

// Layout describes how the game renders its timer, score and end state.
type Layout struct {
	Timer      *regexp.Regexp
	Score      *regexp.Regexp
	EndPhrases []string
}

func NewLayout(timerPattern, scorePattern string, endPhrases []string) (Layout, error) {
	timer, err := compileCapture(timerPattern)
	if err != nil {
		return Layout{}, fmt.Errorf("timer pattern: %w", err)
	}
	score, err := compileCapture(scorePattern)
	if err != nil {
		return Layout{}, fmt.Errorf("score pattern: %w", err)
	}
	phrases := make([]string, 0, len(endPhrases))
	for _, phrase := range endPhrases {
		if phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	return Layout{Timer: timer, Score: score, EndPhrases: phrases}, nil
}

func DefaultLayout() Layout {
	layout, _ := NewLayout(DefaultTimerPattern, DefaultScorePattern, DefaultEndPhrases)
	return layout
}

func compileCapture(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%q needs a capture group for the number", pattern)
	}
	return re, nil
}

// Decode reads all signals from doc. Missing elements leave the matching
// Has* flag false.
func (l Layout) Decode(doc Document) Signals {
	out := Signals{}
	if seconds, ok := readInt(doc, l.Timer); ok {
		out.SecondsLeft = seconds
		out.HasTimer = true
	}
	if score, ok := readInt(doc, l.Score); ok {
		out.Score = score
		out.HasScore = true
	}
	text := doc.Text()
	for _, phrase := range l.EndPhrases {
		if strings.Contains(text, phrase) {
			out.Ended = true
			out.EndPhrase = phrase
			break
		}
	}
	return out
}

func readInt(doc Document, pattern *regexp.Regexp) (int, bool) {
	el, ok := doc.FindByText(pattern)
	if !ok {
		return 0, false
	}
	match := pattern.FindStringSubmatch(el.Text())
	if len(match) < 2 {
		return 0, false
	}
	value, err := strconv.Atoi(match[1])
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}
