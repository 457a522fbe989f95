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
	PluginMapKey      = "summarizer"
	serviceName       = "abaterm.plugin.v1.Summarizer"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodSummarize   = "/" + serviceName + "/Summarize"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "ABATERM_PLUGIN",
	MagicCookieValue: "abaterm",
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
}

// SummarizeRequest carries the session serialized with the same JSON shape
// the spreadsheet endpoint receives, so plugins can share decoding code.
type SummarizeRequest struct {
	SessionJSON string `json:"session_json"`
	Language    string `json:"language"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type SummarizerServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Summarize(ctx context.Context, in *SummarizeRequest) (*SummarizeResponse, error)
}

type SummarizerClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Summarize(ctx context.Context, in *SummarizeRequest) (*SummarizeResponse, error)
}

type summarizerClient struct {
	conn *grpc.ClientConn
}

func NewSummarizerClient(conn *grpc.ClientConn) SummarizerClient {
	return &summarizerClient{conn: conn}
}

func (c *summarizerClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *summarizerClient) Summarize(ctx context.Context, in *SummarizeRequest) (*SummarizeResponse, error) {
	out := &SummarizeResponse{}
	if err := c.conn.Invoke(ctx, methodSummarize, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterSummarizerServer(server grpc.ServiceRegistrar, impl SummarizerServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*SummarizerServer)(nil),
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
				MethodName: "Summarize",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &SummarizeRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Summarize(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSummarize}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*SummarizeRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Summarize(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/summarizer-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl SummarizerServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterSummarizerServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewSummarizerClient(conn), nil
}

func PluginMap(impl SummarizerServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
