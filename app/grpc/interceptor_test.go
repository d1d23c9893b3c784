package grpc

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const createPaymentMethod = "/" + ServiceName + "/CreatePayment"

func TestRequestIDFromMetadataTrimsValue(t *testing.T) {
	cases := map[string]struct {
		ctx  context.Context
		want string
	}{
		"no metadata":  {ctx: context.Background(), want: ""},
		"missing key":  {ctx: metadata.NewIncomingContext(context.Background(), metadata.Pairs("other", "x")), want: ""},
		"padded value": {ctx: metadata.NewIncomingContext(context.Background(), metadata.Pairs(requestIDHeader, "  req-7 ")), want: "req-7"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := requestIDFromMetadata(tc.ctx); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRequestIDInterceptorRejectsBlankHeader(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(requestIDHeader, "   "))
	called := false

	_, err := RequestIDInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: createPaymentMethod}, func(context.Context, interface{}) (interface{}, error) {
		called = true
		return nil, nil
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if called {
		t.Fatal("handler must not run without a request id")
	}
}

func TestRequestIDInterceptorStoresIDInContext(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(requestIDHeader, "notify-123"))

	resp, err := RequestIDInterceptor()(ctx, "payload", &grpc.UnaryServerInfo{FullMethod: createPaymentMethod}, func(ctx context.Context, req interface{}) (interface{}, error) {
		return RequestIDFromContext(ctx) + ":" + req.(string), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "notify-123:payload" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestRequestIDFromContextWithoutInterceptor(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}

func TestRecoveryInterceptorHidesPanicValue(t *testing.T) {
	_, err := RecoveryInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: createPaymentMethod}, func(context.Context, interface{}) (interface{}, error) {
		panic("card store exploded")
	})

	st, _ := status.FromError(err)
	if st.Code() != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
	if st.Message() != "internal server error" {
		t.Fatalf("panic value leaked into status message: %q", st.Message())
	}
}

func TestLoggingInterceptorReturnsHandlerError(t *testing.T) {
	want := status.Error(codes.NotFound, "payment not found")

	resp, err := LoggingInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/" + ServiceName + "/GetPayment"}, func(context.Context, interface{}) (interface{}, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if resp != nil {
		t.Fatalf("expected nil response, got %v", resp)
	}
}
