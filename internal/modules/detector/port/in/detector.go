package in

import (
	"context"

	"zetatrack/internal/modules/detector/dto"
)

type Usecase interface {
	// Run drives the detector from the poll ticker and surface changes until
	// ctx is cancelled, then drains pending appends.
	Run(ctx context.Context) error
	// Check performs one observation and saves a finished session before returning.
	Check(ctx context.Context) (dto.CheckOutput, error)
	State(ctx context.Context) (dto.StateOutput, error)
}
