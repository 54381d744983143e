package main

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName    = "buildorder.Planner"
	analyzeMethod  = "/" + serviceName + "/Analyze"
	quickestMethod = "/" + serviceName + "/Quickest"
)

// PlannerServer is the server API for the Planner service. Requests and
// replies are google.protobuf.Struct messages carrying the JSON shapes of
// the converter package.
type PlannerServer interface {
	Analyze(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Quickest(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterPlannerServer registers srv on s
func RegisterPlannerServer(s grpc.ServiceRegistrar, srv PlannerServer) {
	s.RegisterService(&plannerServiceDesc, srv)
}

func analyzeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: analyzeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PlannerServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func quickestHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PlannerServer).Quickest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: quickestMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PlannerServer).Quickest(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var plannerServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PlannerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: analyzeHandler},
		{MethodName: "Quickest", Handler: quickestHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "buildorder/planner.proto",
}

// plannerClient calls the Planner service over an existing connection
type plannerClient struct {
	cc grpc.ClientConnInterface
}

func newPlannerClient(cc grpc.ClientConnInterface) *plannerClient {
	return &plannerClient{cc: cc}
}

func (c *plannerClient) Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, analyzeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *plannerClient) Quickest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, quickestMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
