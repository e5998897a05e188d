package main

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-plugin"

	"zetatrack/internal/modules/probe/adapter/out/rpc"
	"zetatrack/internal/modules/probe/domain"
)

// server decodes pages with the stock Zetamac layout. It exists to exercise
// the plugin handshake end to end; real plugins ship their own layout.
type server struct {
	layout domain.Layout
}

func (s *server) GetMetadata(_ context.Context, _ *rpc.Empty) (*rpc.Metadata, error) {
	return &rpc.Metadata{
		Name:    "reference",
		Version: "1.0.0",
		Layout:  "zetamac-default",
	}, nil
}

func (s *server) Decode(_ context.Context, in *rpc.DecodeRequest) (*rpc.DecodeResponse, error) {
	if in == nil {
		return nil, fmt.Errorf("empty decode request")
	}
	sig := s.layout.Decode(rpc.ToDocument(in.Root))
	return &rpc.DecodeResponse{
		SecondsLeft: int32(sig.SecondsLeft),
		HasTimer:    sig.HasTimer,
		Ended:       sig.Ended,
		EndPhrase:   sig.EndPhrase,
		Score:       int32(sig.Score),
		HasScore:    sig.HasScore,
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: rpc.HandshakeConfig,
		Plugins:         rpc.PluginMap(&server{layout: domain.DefaultLayout()}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
