package gate

import (
	"context"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	pb "github.com/dmitrijs2005/coursekeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// GRPCIntrospector calls the identity service's gRPC introspection
// endpoint.
type GRPCIntrospector struct {
	conn   *grpc.ClientConn
	client *pb.IntrospectionClient
}

func NewGRPCIntrospector(address string, opts ...grpc.DialOption) (*GRPCIntrospector, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCIntrospector{conn: conn, client: pb.NewIntrospectionClient(conn)}, nil
}

func (g *GRPCIntrospector) Introspect(ctx context.Context, token string) (*common.Principal, error) {
	resp, err := g.client.Introspect(ctx, token)
	if err != nil {
		return nil, err
	}
	scope, userID, err := pb.ParseIntrospectResponse(resp)
	if err != nil {
		return nil, err
	}
	return principalOf(scope, userID)
}

func (g *GRPCIntrospector) Close() error {
	return g.conn.Close()
}
