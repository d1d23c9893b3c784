package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vibast-solutions/ms-go-payment-notifier/app/mapper"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/service"
	"github.com/vibast-solutions/ms-go-payment-notifier/app/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type Server struct {
	paymentService *service.PaymentService
	webhookService *service.WebhookService
}

func NewServer(paymentService *service.PaymentService, webhookService *service.WebhookService) *Server {
	return &Server{
		paymentService: paymentService,
		webhookService: webhookService,
	}
}

// createPaymentResponse adds the created flag the HTTP API expresses with
// 201/200.
type createPaymentResponse struct {
	types.PaymentResponse
	Created bool `json:"created"`
}

func (s *Server) CreatePayment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	l := loggerWithContext(ctx)

	var req types.CreatePaymentRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed request")
	}
	if err := req.Validate(); err != nil {
		l.WithError(err).Debug("Create payment validation failed")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, created, err := s.paymentService.CreateOrGetPayment(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		l.WithError(err).Error("Create payment failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return encodeStruct(&createPaymentResponse{
		PaymentResponse: *mapper.PaymentToResponse(item),
		Created:         created,
	})
}

func (s *Server) GetPayment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req struct {
		TransactionID uint64 `json:"transactionId"`
	}
	if err := decodeStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "transactionId must be a non-negative integer")
	}

	item, err := s.paymentService.GetByTransactionID(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return nil, status.Error(codes.NotFound, "payment not found")
		}
		loggerWithContext(ctx).WithError(err).Error("Get payment failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return encodeStruct(mapper.PaymentToResponse(item))
}

func (s *Server) GetPaymentByOrderNumber(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := types.GetPaymentByOrderNumberRequest{
		OrderNumber: in.GetFields()["orderNumber"].GetStringValue(),
	}
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.paymentService.GetByOrderNumber(ctx, req.OrderNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return nil, status.Error(codes.NotFound, "payment not found")
		case errors.Is(err, service.ErrInvalidRequest):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		default:
			loggerWithContext(ctx).WithError(err).Error("Get payment by order number failed")
			return nil, status.Error(codes.Internal, "internal server error")
		}
	}

	return encodeStruct(mapper.PaymentToResponse(item))
}

func (s *Server) RegisterWebhook(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := types.RegisterWebhookRequest{
		URL: in.GetFields()["url"].GetStringValue(),
	}
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.webhookService.Register(ctx, req.GetURL())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWebhookAlreadyExists):
			return nil, status.Error(codes.AlreadyExists, "webhook with the given URL already exists")
		case errors.Is(err, service.ErrInvalidRequest):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		default:
			loggerWithContext(ctx).WithError(err).Error("Register webhook failed")
			return nil, status.Error(codes.Internal, "internal server error")
		}
	}

	return encodeStruct(mapper.WebhookToResponse(item))
}

func decodeStruct(in *structpb.Struct, out any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func encodeStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}
