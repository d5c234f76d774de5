package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/killbill/killbill-moneris-plugin/internal/application/dto"
	"github.com/killbill/killbill-moneris-plugin/internal/application/usecase"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/pkg/auth"
)

// Metadata keys the billing platform uses for audit fields.
const (
	reasonCodeHeader = "x-killbill-reason-code"
	commentsHeader   = "x-killbill-comments"
)

// writeRoles may move money or change stored payment methods.
var writeRoles = []string{auth.RoleBillingPlatform, auth.RoleAdmin}

// readRoles may only look.
var readRoles = []string{auth.RoleBillingPlatform, auth.RoleAdmin, auth.RoleReadOnly}

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// tenantIDFromContext extracts the tenant ID from JWT claims in the context.
func tenantIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	if claims.TenantID == uuid.Nil {
		return uuid.Nil, status.Error(codes.PermissionDenied, "token carries no tenant")
	}
	return claims.TenantID, nil
}

// callContextFromContext builds the audit context for a mutating call from
// the caller's claims and the optional reason/comment metadata.
func callContextFromContext(ctx context.Context, now time.Time) (valueobject.CallContext, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return valueobject.CallContext{}, status.Error(codes.Unauthenticated, "authentication required")
	}
	userName := claims.UserName
	if userName == "" {
		userName = claims.Subject
	}
	cc, err := valueobject.NewCallContext(claims.TenantID, userName, now)
	if err != nil {
		return valueobject.CallContext{}, status.Error(codes.PermissionDenied, "token carries no tenant")
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(reasonCodeHeader); len(v) > 0 {
			cc.ReasonCode = v[0]
		}
		if v := md.Get(commentsHeader); len(v) > 0 {
			cc.Comments = v[0]
		}
	}
	return cc, nil
}

// Compile-time assertion that PluginHandler implements PaymentPluginServiceServer.
var _ PaymentPluginServiceServer = (*PluginHandler)(nil)

// PluginHandler implements the gRPC PaymentPluginService server.
type PluginHandler struct {
	UnimplementedPaymentPluginServiceServer
	processTransaction      *usecase.ProcessTransaction
	getPaymentInfo          *usecase.GetPaymentInfo
	searchPayments          *usecase.SearchPayments
	addPaymentMethod        *usecase.AddPaymentMethod
	deletePaymentMethod     *usecase.DeletePaymentMethod
	getPaymentMethodDetail  *usecase.GetPaymentMethodDetail
	setDefaultPaymentMethod *usecase.SetDefaultPaymentMethod
	getPaymentMethods       *usecase.GetPaymentMethods
	searchPaymentMethods    *usecase.SearchPaymentMethods
	resetPaymentMethods     *usecase.ResetPaymentMethods
	buildFormDescriptor     *usecase.BuildFormDescriptor
	processNotification     *usecase.ProcessNotification

	logger *slog.Logger
	now    func() time.Time
}

// UseCases groups the application services the handler delegates to.
type UseCases struct {
	ProcessTransaction      *usecase.ProcessTransaction
	GetPaymentInfo          *usecase.GetPaymentInfo
	SearchPayments          *usecase.SearchPayments
	AddPaymentMethod        *usecase.AddPaymentMethod
	DeletePaymentMethod     *usecase.DeletePaymentMethod
	GetPaymentMethodDetail  *usecase.GetPaymentMethodDetail
	SetDefaultPaymentMethod *usecase.SetDefaultPaymentMethod
	GetPaymentMethods       *usecase.GetPaymentMethods
	SearchPaymentMethods    *usecase.SearchPaymentMethods
	ResetPaymentMethods     *usecase.ResetPaymentMethods
	BuildFormDescriptor     *usecase.BuildFormDescriptor
	ProcessNotification     *usecase.ProcessNotification
}

func NewPluginHandler(uc UseCases, logger *slog.Logger) *PluginHandler {
	return &PluginHandler{
		processTransaction:      uc.ProcessTransaction,
		getPaymentInfo:          uc.GetPaymentInfo,
		searchPayments:          uc.SearchPayments,
		addPaymentMethod:        uc.AddPaymentMethod,
		deletePaymentMethod:     uc.DeletePaymentMethod,
		getPaymentMethodDetail:  uc.GetPaymentMethodDetail,
		setDefaultPaymentMethod: uc.SetDefaultPaymentMethod,
		getPaymentMethods:       uc.GetPaymentMethods,
		searchPaymentMethods:    uc.SearchPaymentMethods,
		resetPaymentMethods:     uc.ResetPaymentMethods,
		buildFormDescriptor:     uc.BuildFormDescriptor,
		processNotification:     uc.ProcessNotification,

		logger: logger,
		now:    time.Now,
	}
}

func (h *PluginHandler) Authorize(ctx context.Context, req *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return h.handleTransaction(ctx, valueobject.TransactionTypeAuthorize, req)
}

func (h *PluginHandler) Capture(ctx context.Context, req *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return h.handleTransaction(ctx, valueobject.TransactionTypeCapture, req)
}

func (h *PluginHandler) Purchase(ctx context.Context, req *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return h.handleTransaction(ctx, valueobject.TransactionTypePurchase, req)
}

func (h *PluginHandler) Void(ctx context.Context, req *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return h.handleTransaction(ctx, valueobject.TransactionTypeVoid, req)
}

func (h *PluginHandler) Credit(ctx context.Context, req *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return h.handleTransaction(ctx, valueobject.TransactionTypeCredit, req)
}

func (h *PluginHandler) Refund(ctx context.Context, req *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	return h.handleTransaction(ctx, valueobject.TransactionTypeRefund, req)
}

func (h *PluginHandler) handleTransaction(ctx context.Context, txType valueobject.TransactionType, req *PaymentTransactionRequest) (*PaymentTransactionResponse, error) {
	if err := requireRole(ctx, writeRoles...); err != nil {
		return nil, err
	}
	cc, err := callContextFromContext(ctx, h.now())
	if err != nil {
		return nil, err
	}

	in := dto.PaymentTransactionRequest{
		CallContext: cc,
		Currency:    req.Currency,
		Properties:  fromPropertyMsgs(req.Properties),
	}
	if in.KbAccountID, err = parseID("kb_account_id", req.KbAccountID); err != nil {
		return nil, err
	}
	if in.KbPaymentID, err = parseID("kb_payment_id", req.KbPaymentID); err != nil {
		return nil, err
	}
	if in.KbTransactionID, err = parseID("kb_transaction_id", req.KbTransactionID); err != nil {
		return nil, err
	}
	if in.KbPaymentMethodID, err = parseID("kb_payment_method_id", req.KbPaymentMethodID); err != nil {
		return nil, err
	}
	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
		}
		in.Amount = &amount
	}

	resp, err := h.processTransaction.Execute(ctx, txType, in)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &PaymentTransactionResponse{Transaction: toTransactionInfoMsg(resp)}, nil
}

func (h *PluginHandler) GetPaymentInfo(ctx context.Context, req *GetPaymentInfoRequest) (*GetPaymentInfoResponse, error) {
	if err := requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	paymentID, err := parseID("kb_payment_id", req.KbPaymentID)
	if err != nil {
		return nil, err
	}
	accountID, err := parseOptionalID("kb_account_id", req.KbAccountID)
	if err != nil {
		return nil, err
	}

	infos, err := h.getPaymentInfo.Execute(ctx, dto.GetPaymentInfoRequest{
		Properties:  fromPropertyMsgs(req.Properties),
		KbAccountID: accountID,
		KbPaymentID: paymentID,
		TenantID:    tenantID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	out := make([]*PaymentTransactionInfoMsg, 0, len(infos))
	for _, info := range infos {
		out = append(out, toTransactionInfoMsg(info))
	}
	return &GetPaymentInfoResponse{Transactions: out}, nil
}

func (h *PluginHandler) SearchPayments(ctx context.Context, req *SearchRequest) (*SearchPaymentsResponse, error) {
	if err := requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	page, err := h.searchPayments.Execute(ctx, dto.SearchRequest{
		SearchKey: req.SearchKey,
		Offset:    req.Offset,
		Limit:     req.Limit,
		TenantID:  tenantID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	out := make([]*PaymentTransactionInfoMsg, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, toTransactionInfoMsg(item))
	}
	return &SearchPaymentsResponse{Transactions: out, Offset: page.Offset, TotalCount: page.TotalCount}, nil
}

func (h *PluginHandler) AddPaymentMethod(ctx context.Context, req *AddPaymentMethodRequest) (*PaymentMethodResponse, error) {
	if err := requireRole(ctx, writeRoles...); err != nil {
		return nil, err
	}
	cc, err := callContextFromContext(ctx, h.now())
	if err != nil {
		return nil, err
	}
	accountID, err := parseID("kb_account_id", req.KbAccountID)
	if err != nil {
		return nil, err
	}
	methodID, err := parseID("kb_payment_method_id", req.KbPaymentMethodID)
	if err != nil {
		return nil, err
	}

	pm, err := h.addPaymentMethod.Execute(ctx, dto.AddPaymentMethodRequest{
		CallContext:             cc,
		ExternalPaymentMethodID: req.ExternalPaymentMethodID,
		Properties:              fromPropertyMsgs(req.Properties),
		KbAccountID:             accountID,
		KbPaymentMethodID:       methodID,
		SetDefault:              req.SetDefault,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &PaymentMethodResponse{PaymentMethod: toPaymentMethodMsg(pm)}, nil
}

func (h *PluginHandler) DeletePaymentMethod(ctx context.Context, req *PaymentMethodRef) (*Empty, error) {
	if err := requireRole(ctx, writeRoles...); err != nil {
		return nil, err
	}
	cc, err := callContextFromContext(ctx, h.now())
	if err != nil {
		return nil, err
	}
	accountID, methodID, err := parseRef(req)
	if err != nil {
		return nil, err
	}

	err = h.deletePaymentMethod.Execute(ctx, dto.DeletePaymentMethodRequest{
		CallContext:       cc,
		KbAccountID:       accountID,
		KbPaymentMethodID: methodID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

func (h *PluginHandler) GetPaymentMethodDetail(ctx context.Context, req *PaymentMethodRef) (*GetPaymentMethodDetailResponse, error) {
	if err := requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	accountID, methodID, err := parseRef(req)
	if err != nil {
		return nil, err
	}

	pm, err := h.getPaymentMethodDetail.Execute(ctx, dto.GetPaymentMethodRequest{
		KbAccountID:       accountID,
		KbPaymentMethodID: methodID,
		TenantID:          tenantID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	if pm == nil {
		return &GetPaymentMethodDetailResponse{Found: false}, nil
	}
	return &GetPaymentMethodDetailResponse{Found: true, PaymentMethod: toPaymentMethodMsg(*pm)}, nil
}

func (h *PluginHandler) SetDefaultPaymentMethod(ctx context.Context, req *PaymentMethodRef) (*Empty, error) {
	if err := requireRole(ctx, writeRoles...); err != nil {
		return nil, err
	}
	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	accountID, methodID, err := parseRef(req)
	if err != nil {
		return nil, err
	}

	err = h.setDefaultPaymentMethod.Execute(ctx, dto.SetDefaultPaymentMethodRequest{
		KbAccountID:       accountID,
		KbPaymentMethodID: methodID,
		TenantID:          tenantID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

func (h *PluginHandler) GetPaymentMethods(ctx context.Context, req *GetPaymentMethodsRequest) (*GetPaymentMethodsResponse, error) {
	if err := requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := parseID("kb_account_id", req.KbAccountID)
	if err != nil {
		return nil, err
	}

	methods, err := h.getPaymentMethods.Execute(ctx, dto.ListPaymentMethodsRequest{
		Properties:  fromPropertyMsgs(req.Properties),
		KbAccountID: accountID,
		TenantID:    tenantID,
		Refresh:     req.Refresh,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	out := make([]*PaymentMethodMsg, 0, len(methods))
	for _, pm := range methods {
		out = append(out, toPaymentMethodMsg(pm))
	}
	return &GetPaymentMethodsResponse{PaymentMethods: out}, nil
}

func (h *PluginHandler) SearchPaymentMethods(ctx context.Context, req *SearchRequest) (*SearchPaymentMethodsResponse, error) {
	if err := requireRole(ctx, readRoles...); err != nil {
		return nil, err
	}
	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	page, err := h.searchPaymentMethods.Execute(ctx, dto.SearchRequest{
		SearchKey: req.SearchKey,
		Offset:    req.Offset,
		Limit:     req.Limit,
		TenantID:  tenantID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}

	out := make([]*PaymentMethodMsg, 0, len(page.Items))
	for _, pm := range page.Items {
		out = append(out, toPaymentMethodMsg(pm))
	}
	return &SearchPaymentMethodsResponse{PaymentMethods: out, Offset: page.Offset, TotalCount: page.TotalCount}, nil
}

func (h *PluginHandler) ResetPaymentMethods(ctx context.Context, req *ResetPaymentMethodsRequest) (*Empty, error) {
	if err := requireRole(ctx, writeRoles...); err != nil {
		return nil, err
	}
	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := parseID("kb_account_id", req.KbAccountID)
	if err != nil {
		return nil, err
	}

	methods := make([]dto.PaymentMethodResponse, 0, len(req.PaymentMethods))
	for _, msg := range req.PaymentMethods {
		if msg == nil {
			continue
		}
		methodID, err := parseID("payment_methods.kb_payment_method_id", msg.KbPaymentMethodID)
		if err != nil {
			return nil, err
		}
		methods = append(methods, dto.PaymentMethodResponse{
			ExternalPaymentMethodID: msg.ExternalPaymentMethodID,
			Properties:              fromPropertyMsgs(msg.Properties),
			KbAccountID:             accountID,
			KbPaymentMethodID:       methodID,
			IsDefault:               msg.IsDefault,
		})
	}

	err = h.resetPaymentMethods.Execute(ctx, dto.ResetPaymentMethodsRequest{
		PaymentMethods: methods,
		KbAccountID:    accountID,
		TenantID:       tenantID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

func (h *PluginHandler) BuildFormDescriptor(ctx context.Context, req *BuildFormDescriptorRequest) (*Empty, error) {
	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := parseOptionalID("kb_account_id", req.KbAccountID)
	if err != nil {
		return nil, err
	}

	err = h.buildFormDescriptor.Execute(ctx, dto.FormDescriptorRequest{
		CustomFields: fromPropertyMsgs(req.CustomFields),
		Properties:   fromPropertyMsgs(req.Properties),
		KbAccountID:  accountID,
		TenantID:     tenantID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

func (h *PluginHandler) ProcessNotification(ctx context.Context, req *ProcessNotificationRequest) (*Empty, error) {
	tenantID, err := tenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	err = h.processNotification.Execute(ctx, dto.NotificationRequest{
		Notification: req.Notification,
		Properties:   fromPropertyMsgs(req.Properties),
		TenantID:     tenantID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &Empty{}, nil
}

// toStatus maps application errors onto gRPC codes. Unrecognized errors are
// logged and reported as Internal without their details.
func (h *PluginHandler) toStatus(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrUnsupportedOperation):
		return status.Error(codes.Unimplemented, err.Error())
	case errors.Is(err, model.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrOriginalTransactionNotFound):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrGatewayFailure):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "plugin call failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return id, nil
}

func parseOptionalID(field, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	return parseID(field, raw)
}

func parseRef(req *PaymentMethodRef) (uuid.UUID, uuid.UUID, error) {
	accountID, err := parseOptionalID("kb_account_id", req.KbAccountID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	methodID, err := parseID("kb_payment_method_id", req.KbPaymentMethodID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return accountID, methodID, nil
}
