package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/buildorder/internal/converter"
	"github.com/napolitain/buildorder/internal/planner"
)

// server implements PlannerServer
type server struct {
	planner *planner.Planner
	logger  *slog.Logger
}

// Analyze implements the Analyze RPC
func (s *server) Analyze(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	save, err := converter.StructToSave(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	report, err := s.planner.Analyze(ctx, save)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info("analyzed order", "creates", len(save.Creates), "violations", len(report.Diagnostics))
	return converter.ReportToStruct(report)
}

// Quickest implements the Quickest RPC
func (s *server) Quickest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q, err := converter.StructToQuickest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	reply, err := s.planner.Quickest(ctx, q)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info("quickest time", "unit", q.Unit, "parent", q.Parent, "time", reply.Time, "possible", reply.Possible)
	return converter.ToStruct(reply)
}

// toStatus maps planner errors onto gRPC codes
func toStatus(err error) error {
	switch {
	case errors.Is(err, planner.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// loggingInterceptor logs every unary call with its outcome and latency
func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Debug("rpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"elapsed", time.Since(start))
		return resp, err
	}
}

func newGRPCServer(s *server) *grpc.Server {
	g := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(s.logger)))
	RegisterPlannerServer(g, s)
	return g
}
