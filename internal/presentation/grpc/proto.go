package grpc

// proto.go defines the gRPC server interface for killbill.moneris.v1.PaymentPluginService.
// It stands in for generated code; messages travel with the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "killbill.moneris.v1.PaymentPluginService"

// PaymentPluginServiceServer is the server API for PaymentPluginService.
type PaymentPluginServiceServer interface {
	Authorize(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error)
	Capture(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error)
	Purchase(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error)
	Void(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error)
	Credit(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error)
	Refund(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error)
	GetPaymentInfo(context.Context, *GetPaymentInfoRequest) (*GetPaymentInfoResponse, error)
	SearchPayments(context.Context, *SearchRequest) (*SearchPaymentsResponse, error)
	AddPaymentMethod(context.Context, *AddPaymentMethodRequest) (*PaymentMethodResponse, error)
	DeletePaymentMethod(context.Context, *PaymentMethodRef) (*Empty, error)
	GetPaymentMethodDetail(context.Context, *PaymentMethodRef) (*GetPaymentMethodDetailResponse, error)
	SetDefaultPaymentMethod(context.Context, *PaymentMethodRef) (*Empty, error)
	GetPaymentMethods(context.Context, *GetPaymentMethodsRequest) (*GetPaymentMethodsResponse, error)
	SearchPaymentMethods(context.Context, *SearchRequest) (*SearchPaymentMethodsResponse, error)
	ResetPaymentMethods(context.Context, *ResetPaymentMethodsRequest) (*Empty, error)
	BuildFormDescriptor(context.Context, *BuildFormDescriptorRequest) (*Empty, error)
	ProcessNotification(context.Context, *ProcessNotificationRequest) (*Empty, error)
	mustEmbedUnimplementedPaymentPluginServiceServer()
}

// UnimplementedPaymentPluginServiceServer provides forward-compatible default implementations.
type UnimplementedPaymentPluginServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedPaymentPluginServiceServer) Authorize(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return nil, unimplemented("Authorize")
}
func (UnimplementedPaymentPluginServiceServer) Capture(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return nil, unimplemented("Capture")
}
func (UnimplementedPaymentPluginServiceServer) Purchase(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return nil, unimplemented("Purchase")
}
func (UnimplementedPaymentPluginServiceServer) Void(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return nil, unimplemented("Void")
}
func (UnimplementedPaymentPluginServiceServer) Credit(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return nil, unimplemented("Credit")
}
func (UnimplementedPaymentPluginServiceServer) Refund(context.Context, *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return nil, unimplemented("Refund")
}
func (UnimplementedPaymentPluginServiceServer) GetPaymentInfo(context.Context, *GetPaymentInfoRequest) (*GetPaymentInfoResponse, error) {
	return nil, unimplemented("GetPaymentInfo")
}
func (UnimplementedPaymentPluginServiceServer) SearchPayments(context.Context, *SearchRequest) (*SearchPaymentsResponse, error) {
	return nil, unimplemented("SearchPayments")
}
func (UnimplementedPaymentPluginServiceServer) AddPaymentMethod(context.Context, *AddPaymentMethodRequest) (*PaymentMethodResponse, error) {
	return nil, unimplemented("AddPaymentMethod")
}
func (UnimplementedPaymentPluginServiceServer) DeletePaymentMethod(context.Context, *PaymentMethodRef) (*Empty, error) {
	return nil, unimplemented("DeletePaymentMethod")
}
func (UnimplementedPaymentPluginServiceServer) GetPaymentMethodDetail(context.Context, *PaymentMethodRef) (*GetPaymentMethodDetailResponse, error) {
	return nil, unimplemented("GetPaymentMethodDetail")
}
func (UnimplementedPaymentPluginServiceServer) SetDefaultPaymentMethod(context.Context, *PaymentMethodRef) (*Empty, error) {
	return nil, unimplemented("SetDefaultPaymentMethod")
}
func (UnimplementedPaymentPluginServiceServer) GetPaymentMethods(context.Context, *GetPaymentMethodsRequest) (*GetPaymentMethodsResponse, error) {
	return nil, unimplemented("GetPaymentMethods")
}
func (UnimplementedPaymentPluginServiceServer) SearchPaymentMethods(context.Context, *SearchRequest) (*SearchPaymentMethodsResponse, error) {
	return nil, unimplemented("SearchPaymentMethods")
}
func (UnimplementedPaymentPluginServiceServer) ResetPaymentMethods(context.Context, *ResetPaymentMethodsRequest) (*Empty, error) {
	return nil, unimplemented("ResetPaymentMethods")
}
func (UnimplementedPaymentPluginServiceServer) BuildFormDescriptor(context.Context, *BuildFormDescriptorRequest) (*Empty, error) {
	return nil, unimplemented("BuildFormDescriptor")
}
func (UnimplementedPaymentPluginServiceServer) ProcessNotification(context.Context, *ProcessNotificationRequest) (*Empty, error) {
	return nil, unimplemented("ProcessNotification")
}
func (UnimplementedPaymentPluginServiceServer) mustEmbedUnimplementedPaymentPluginServiceServer() {}

// RegisterPaymentPluginServiceServer registers the PaymentPluginServiceServer with the gRPC server.
func RegisterPaymentPluginServiceServer(s grpclib.ServiceRegistrar, srv PaymentPluginServiceServer) {
	s.RegisterService(&paymentPluginServiceDesc, srv)
}

var paymentPluginServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PaymentPluginServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		unaryMethod("Authorize", PaymentPluginServiceServer.Authorize),
		unaryMethod("Capture", PaymentPluginServiceServer.Capture),
		unaryMethod("Purchase", PaymentPluginServiceServer.Purchase),
		unaryMethod("Void", PaymentPluginServiceServer.Void),
		unaryMethod("Credit", PaymentPluginServiceServer.Credit),
		unaryMethod("Refund", PaymentPluginServiceServer.Refund),
		unaryMethod("GetPaymentInfo", PaymentPluginServiceServer.GetPaymentInfo),
		unaryMethod("SearchPayments", PaymentPluginServiceServer.SearchPayments),
		unaryMethod("AddPaymentMethod", PaymentPluginServiceServer.AddPaymentMethod),
		unaryMethod("DeletePaymentMethod", PaymentPluginServiceServer.DeletePaymentMethod),
		unaryMethod("GetPaymentMethodDetail", PaymentPluginServiceServer.GetPaymentMethodDetail),
		unaryMethod("SetDefaultPaymentMethod", PaymentPluginServiceServer.SetDefaultPaymentMethod),
		unaryMethod("GetPaymentMethods", PaymentPluginServiceServer.GetPaymentMethods),
		unaryMethod("SearchPaymentMethods", PaymentPluginServiceServer.SearchPaymentMethods),
		unaryMethod("ResetPaymentMethods", PaymentPluginServiceServer.ResetPaymentMethods),
		unaryMethod("BuildFormDescriptor", PaymentPluginServiceServer.BuildFormDescriptor),
		unaryMethod("ProcessNotification", PaymentPluginServiceServer.ProcessNotification),
	},
	Streams: []grpclib.StreamDesc{},
}

// FullMethod returns the gRPC full method name of a PaymentPluginService method.
func FullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

// unaryMethod builds the descriptor entry that generated code would spell
// out per method: decode the request, then run it through the interceptor.
func unaryMethod[Req, Resp any](
	name string,
	call func(PaymentPluginServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodDesc {
	fullMethod := FullMethod(name)
	return grpclib.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PaymentPluginServiceServer), ctx, in)
			}
			info := &grpclib.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PaymentPluginServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
