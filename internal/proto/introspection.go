// Package proto describes the gRPC introspection contract shared by the
// identity service (server) and the resource service (client).
//
// The contract uses well-known protobuf types, so it needs no generated
// code: the request is a google.protobuf.StringValue holding the
// assertion, the response a google.protobuf.Struct with "scope" and
// "user_id" string fields.
package proto

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	IntrospectionServiceName = "coursekeeper.identity.Introspection"
	IntrospectFullMethod     = "/" + IntrospectionServiceName + "/Introspect"

	FieldScope  = "scope"
	FieldUserID = "user_id"
)

// IntrospectionServer is implemented by the identity service.
type IntrospectionServer interface {
	Introspect(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

func introspectHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IntrospectionServer).Introspect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: IntrospectFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IntrospectionServer).Introspect(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// IntrospectionServiceDesc is the grpc.ServiceDesc for the introspection
// service.
var IntrospectionServiceDesc = grpc.ServiceDesc{
	ServiceName: IntrospectionServiceName,
	HandlerType: (*IntrospectionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Introspect",
			Handler:    introspectHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coursekeeper/identity/introspection",
}

func RegisterIntrospectionServer(s grpc.ServiceRegistrar, srv IntrospectionServer) {
	s.RegisterService(&IntrospectionServiceDesc, srv)
}

// IntrospectionClient calls the introspection service.
type IntrospectionClient struct {
	cc grpc.ClientConnInterface
}

func NewIntrospectionClient(cc grpc.ClientConnInterface) *IntrospectionClient {
	return &IntrospectionClient{cc: cc}
}

func (c *IntrospectionClient) Introspect(ctx context.Context, token string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IntrospectFullMethod, wrapperspb.String(token), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// NewIntrospectResponse builds the response struct.
func NewIntrospectResponse(scope, userID string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldScope:  structpb.NewStringValue(scope),
		FieldUserID: structpb.NewStringValue(userID),
	}}
}

// ErrMalformedResponse is returned when a response lacks a string field.
var ErrMalformedResponse = errors.New("malformed introspection response")

// ParseIntrospectResponse extracts scope and user id; both must be
// non-empty strings.
func ParseIntrospectResponse(s *structpb.Struct) (scope, userID string, err error) {
	if s == nil {
		return "", "", ErrMalformedResponse
	}
	scope = s.GetFields()[FieldScope].GetStringValue()
	userID = s.GetFields()[FieldUserID].GetStringValue()
	if scope == "" || userID == "" {
		return "", "", ErrMalformedResponse
	}
	return scope, userID, nil
}
