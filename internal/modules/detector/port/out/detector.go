package out

import (
	"context"

	"zetatrack/internal/modules/detector/domain"
)

// SignalSource reads the game page. Changes returns nil when the page cannot
// report structural mutations.
type SignalSource interface {
	Read(ctx context.Context) (domain.Reading, error)
	Changes() <-chan struct{}
}
