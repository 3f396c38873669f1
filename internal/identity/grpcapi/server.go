// Package grpcapi serves token introspection over gRPC.
package grpcapi

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"github.com/dmitrijs2005/coursekeeper/internal/identity/services"
	"github.com/dmitrijs2005/coursekeeper/internal/logging"
	pb "github.com/dmitrijs2005/coursekeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCServer struct {
	address string
	users   *services.UserService
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us *services.UserService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
	}
}

// Introspect validates the assertion in req.
func (s *GRPCServer) Introspect(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	p, err := s.users.Introspect(ctx, req.GetValue())
	if err != nil {
		return nil, status.Error(codeOf(common.KindOf(err)), common.MessageOf(err))
	}
	return pb.NewIntrospectResponse(p.Role.String(), p.SubjectID), nil
}

func codeOf(k common.Kind) codes.Code {
	switch k {
	case common.KindValidation:
		return codes.InvalidArgument
	case common.KindInvalidToken, common.KindExpiredToken:
		return codes.PermissionDenied
	default:
		return codes.Internal
	}
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "grpc request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, err
}

// NewServer returns a grpc.Server with the introspection service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	pb.RegisterIntrospectionServer(srv, s)
	return srv
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}
