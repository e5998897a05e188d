package in

import (
	"context"

	"zetatrack/internal/modules/probe/dto"
)

type Usecase interface {
	Observe(ctx context.Context) (dto.SignalsOutput, error)
	Changes() <-chan struct{}
	Ingest(ctx context.Context, input dto.SnapshotInput) error
	CheckPlugin(ctx context.Context, input dto.PluginCheckInput) (dto.PluginMetadataOutput, error)
}
