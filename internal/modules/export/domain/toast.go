package domain

import (
	"fmt"
	"time"
)

const DefaultToastDuration = 3 * time.Second

type Toast struct {
	Message  string
	ShownAt  time.Time
	Duration time.Duration
}

func NewToast(score int, now time.Time, duration time.Duration) Toast {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return Toast{Message: fmt.Sprintf("Score %d saved to tracker!", score), ShownAt: now, Duration: duration}
}

func (t Toast) ExpiresAt() time.Time {
	return t.ShownAt.Add(t.Duration)
}
