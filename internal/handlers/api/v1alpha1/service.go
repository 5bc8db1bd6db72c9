package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// CheckServiceName is the fully qualified gRPC service name
const CheckServiceName = "deltagreen.api.v1alpha1.CheckService"

// Full method names
const (
	CheckServiceRollCheckFullMethodName              = "/" + CheckServiceName + "/RollCheck"
	CheckServiceGetRollLogFullMethodName             = "/" + CheckServiceName + "/GetRollLog"
	CheckServiceClearRollLogFullMethodName           = "/" + CheckServiceName + "/ClearRollLog"
	CheckServiceApplySkillImprovementsFullMethodName = "/" + CheckServiceName + "/ApplySkillImprovements"
)

// CheckServiceServer is the server API for CheckService. Requests and
// responses are google.protobuf.Struct documents.
type CheckServiceServer interface {
	RollCheck(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRollLog(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearRollLog(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplySkillImprovements(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCheckServiceServer registers srv with s
func RegisterCheckServiceServer(s grpc.ServiceRegistrar, srv CheckServiceServer) {
	s.RegisterService(&CheckServiceDesc, srv)
}

type structMethod func(CheckServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a CheckServiceServer method to grpc.MethodHandler
func unaryHandler(fullMethod string, call structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CheckServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CheckServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CheckServiceDesc is the grpc.ServiceDesc for CheckService
var CheckServiceDesc = grpc.ServiceDesc{
	ServiceName: CheckServiceName,
	HandlerType: (*CheckServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RollCheck",
			Handler:    unaryHandler(CheckServiceRollCheckFullMethodName, CheckServiceServer.RollCheck),
		},
		{
			MethodName: "GetRollLog",
			Handler:    unaryHandler(CheckServiceGetRollLogFullMethodName, CheckServiceServer.GetRollLog),
		},
		{
			MethodName: "ClearRollLog",
			Handler:    unaryHandler(CheckServiceClearRollLogFullMethodName, CheckServiceServer.ClearRollLog),
		},
		{
			MethodName: "ApplySkillImprovements",
			Handler:    unaryHandler(CheckServiceApplySkillImprovementsFullMethodName, CheckServiceServer.ApplySkillImprovements),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "deltagreen/api/v1alpha1/check.proto",
}

// CheckServiceClient is the client API for CheckService
type CheckServiceClient interface {
	RollCheck(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetRollLog(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ClearRollLog(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ApplySkillImprovements(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type checkServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCheckServiceClient creates a CheckServiceClient over cc
func NewCheckServiceClient(cc grpc.ClientConnInterface) CheckServiceClient {
	return &checkServiceClient{cc: cc}
}

func (c *checkServiceClient) invoke(
	ctx context.Context,
	method string,
	in *structpb.Struct,
	opts []grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *checkServiceClient) RollCheck(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CheckServiceRollCheckFullMethodName, in, opts)
}

func (c *checkServiceClient) GetRollLog(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CheckServiceGetRollLogFullMethodName, in, opts)
}

func (c *checkServiceClient) ClearRollLog(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CheckServiceClearRollLogFullMethodName, in, opts)
}

func (c *checkServiceClient) ApplySkillImprovements(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, CheckServiceApplySkillImprovementsFullMethodName, in, opts)
}
