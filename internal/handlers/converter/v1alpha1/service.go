package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "ddbconverter.v1alpha1.ConverterService"

const convertFullMethod = "/" + ServiceName + "/Convert"

// ConverterServiceServer is the server API for ConverterService. Requests
// and responses are google.protobuf.Struct documents.
type ConverterServiceServer interface {
	Convert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ConverterServiceDesc describes ConverterService for grpc.Server.
var ConverterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConverterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Convert",
			Handler:    convertHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ddbconverter/v1alpha1/converter.proto",
}

// RegisterConverterServiceServer registers srv with s.
func RegisterConverterServiceServer(s grpc.ServiceRegistrar, srv ConverterServiceServer) {
	s.RegisterService(&ConverterServiceDesc, srv)
}

func convertHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConverterServiceServer).Convert(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: convertFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConverterServiceServer).Convert(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ConverterServiceClient is the client API for ConverterService.
type ConverterServiceClient interface {
	Convert(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type converterServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewConverterServiceClient creates a client on cc.
func NewConverterServiceClient(cc grpc.ClientConnInterface) ConverterServiceClient {
	return &converterServiceClient{cc: cc}
}

func (c *converterServiceClient) Convert(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, convertFullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
