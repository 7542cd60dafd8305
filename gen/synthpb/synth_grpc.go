package synthpb

import (
	"context"

	"google.golang.org/grpc"
)

const qsynthDecomposeMethod = "/synth.QSynth/Decompose"

// #region client

// QSynthClient is the client API for the QSynth service.
type QSynthClient interface {
	Decompose(ctx context.Context, in *DecomposeRequest, opts ...grpc.CallOption) (*DecomposeReply, error)
}

type qsynthClient struct {
	cc grpc.ClientConnInterface
}

// NewQSynthClient creates a QSynth client over the given connection.
func NewQSynthClient(cc grpc.ClientConnInterface) QSynthClient {
	return &qsynthClient{cc: cc}
}

func (c *qsynthClient) Decompose(ctx context.Context, in *DecomposeRequest, opts ...grpc.CallOption) (*DecomposeReply, error) {
	out := new(DecomposeReply)
	if err := c.cc.Invoke(ctx, qsynthDecomposeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// #endregion client

// #region server

// QSynthServer is the server API for the QSynth service.
type QSynthServer interface {
	Decompose(ctx context.Context, in *DecomposeRequest) (*DecomposeReply, error)
}

// RegisterQSynthServer registers srv on s.
func RegisterQSynthServer(s grpc.ServiceRegistrar, srv QSynthServer) {
	s.RegisterService(&QSynth_ServiceDesc, srv)
}

func _QSynth_Decompose_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DecomposeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QSynthServer).Decompose(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: qsynthDecomposeMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QSynthServer).Decompose(ctx, req.(*DecomposeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// QSynth_ServiceDesc is the grpc.ServiceDesc for the QSynth service.
var QSynth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "synth.QSynth",
	HandlerType: (*QSynthServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Decompose",
			Handler:    _QSynth_Decompose_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proto/synth.proto",
}

// #endregion server
