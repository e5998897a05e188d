package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "signal"
	serviceName       = "zetatrack.signal.v1.SignalPlugin"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodDecode      = "/" + serviceName + "/Decode"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ZETATRACK_SIGNAL_PLUGIN",
	MagicCookieValue: "zetatrack",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Layout  string `json:"layout"`
}

// Node mirrors one visible node of the page. Text nodes carry Text and no Tag.
type Node struct {
	Tag      string  `json:"tag,omitempty"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

type DecodeRequest struct {
	Root *Node `json:"root"`
}

type DecodeResponse struct {
	SecondsLeft int32  `json:"seconds_left"`
	HasTimer    bool   `json:"has_timer"`
	Ended       bool   `json:"ended"`
	EndPhrase   string `json:"end_phrase"`
	Score       int32  `json:"score"`
	HasScore    bool   `json:"has_score"`
}

type SignalPluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Decode(ctx context.Context, in *DecodeRequest) (*DecodeResponse, error)
}

type SignalPluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Decode(ctx context.Context, in *DecodeRequest) (*DecodeResponse, error)
}

type signalPluginClient struct {
	conn *grpc.ClientConn
}

func NewSignalPluginClient(conn *grpc.ClientConn) SignalPluginClient {
	return &signalPluginClient{conn: conn}
}

func (c *signalPluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *signalPluginClient) Decode(ctx context.Context, in *DecodeRequest) (*DecodeResponse, error) {
	out := &DecodeResponse{}
	if err := c.conn.Invoke(ctx, methodDecode, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterSignalPluginServer(server grpc.ServiceRegistrar, impl SignalPluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*SignalPluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Decode",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &DecodeRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Decode(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodDecode}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*DecodeRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Decode(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/signal-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl SignalPluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterSignalPluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewSignalPluginClient(conn), nil
}

func PluginMap(impl SignalPluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
