package out

import (
	"context"

	"zetatrack/internal/modules/probe/domain"
	probeout "zetatrack/internal/modules/probe/port/out"
)

// LayoutDecoder decodes signals in-process with configured patterns.
type LayoutDecoder struct {
	layout domain.Layout
}

func NewLayoutDecoder(layout domain.Layout) probeout.Decoder {
	return &LayoutDecoder{layout: layout}
}

func (d *LayoutDecoder) Decode(_ context.Context, doc domain.Document) (domain.Signals, error) {
	return d.layout.Decode(doc), nil
}
