package out

import (
	"context"

	"zetatrack/internal/modules/probe/domain"
)

// Surface is a read-only view of the page being played. Changes returns nil
// when the surface cannot report structural mutations.
type Surface interface {
	Snapshot(ctx context.Context) (domain.Document, error)
	Changes() <-chan struct{}
}

// SnapshotSink accepts snapshots pushed by a browser helper.
type SnapshotSink interface {
	Accept(ctx context.Context, html []byte) error
}

type Decoder interface {
	Decode(ctx context.Context, doc domain.Document) (domain.Signals, error)
}

type PluginInspector interface {
	Inspect(ctx context.Context, binary, checksum string) (domain.PluginMetadata, error)
}
