package out

import (
	"context"
	"sync"
	"time"

	"zetatrack/internal/modules/export/domain"
)

// ToastBoard holds the toast on display and removes it once its duration
// elapses. A newer toast replaces the current one.
type ToastBoard struct {
	mu      sync.Mutex
	current domain.Toast
	showing bool
	gen     uint64
	timer   *time.Timer
}

func NewToastBoard() *ToastBoard {
	return &ToastBoard{}
}

func (b *ToastBoard) Show(_ context.Context, toast domain.Toast) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.current = toast
	b.showing = true
	b.timer = time.AfterFunc(toast.Duration, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen == gen {
			b.showing = false
			b.current = domain.Toast{}
		}
	})
	return nil
}

func (b *ToastBoard) Current() (domain.Toast, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.showing
}
