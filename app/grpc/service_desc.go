package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "payments.PaymentsService"

// PaymentsServiceServer is the server API for payments.PaymentsService.
// Messages are google.protobuf.Struct values carrying the same JSON shapes
// as the HTTP API.
type PaymentsServiceServer interface {
	CreatePayment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetPayment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetPaymentByOrderNumber(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RegisterWebhook(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv PaymentsServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PaymentsServiceServer), ctx, req.(*structpb.Struct))
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		return interceptor(ctx, in, info, handler)
	}
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PaymentsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreatePayment",
			Handler: unaryHandler("CreatePayment", func(srv PaymentsServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.CreatePayment(ctx, req)
			}),
		},
		{
			MethodName: "GetPayment",
			Handler: unaryHandler("GetPayment", func(srv PaymentsServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetPayment(ctx, req)
			}),
		},
		{
			MethodName: "GetPaymentByOrderNumber",
			Handler: unaryHandler("GetPaymentByOrderNumber", func(srv PaymentsServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetPaymentByOrderNumber(ctx, req)
			}),
		},
		{
			MethodName: "RegisterWebhook",
			Handler: unaryHandler("RegisterWebhook", func(srv PaymentsServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.RegisterWebhook(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "payments.proto",
}

func RegisterPaymentsServiceServer(s grpc.ServiceRegistrar, srv PaymentsServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client is a thin caller for payments.PaymentsService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePayment(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "CreatePayment", req, opts...)
}

func (c *Client) GetPayment(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetPayment", req, opts...)
}

func (c *Client) GetPaymentByOrderNumber(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetPaymentByOrderNumber", req, opts...)
}

func (c *Client) RegisterWebhook(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "RegisterWebhook", req, opts...)
}
