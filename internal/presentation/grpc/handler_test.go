package grpc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/killbill/killbill-moneris-plugin/internal/application/usecase"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/service"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/pkg/auth"
	"github.com/killbill/killbill-moneris-plugin/pkg/events"
)

// --- Mock implementations ---

type mockTransactionRepo struct {
	records []model.TransactionRecord
}

func (m *mockTransactionRepo) Create(_ context.Context, record model.TransactionRecord) error {
	m.records = append(m.records, record)
	return nil
}

func (m *mockTransactionRepo) ListByPayment(_ context.Context, paymentID, tenantID uuid.UUID) ([]model.TransactionRecord, error) {
	var out []model.TransactionRecord
	for _, r := range m.records {
		if r.Info().KbPaymentID() == paymentID && r.TenantID() == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockTransactionRepo) Search(_ context.Context, _ string, offset, _ int64, _ uuid.UUID) (model.Page[model.TransactionInfo], error) {
	return model.EmptyPage[model.TransactionInfo](offset), nil
}

type mockPaymentMethodRepo struct {
	methods []model.PaymentMethod
	deleted map[uuid.UUID]bool
}

func (m *mockPaymentMethodRepo) Create(_ context.Context, pm model.PaymentMethod) error {
	m.methods = append(m.methods, pm)
	return nil
}

func (m *mockPaymentMethodRepo) SoftDelete(_ context.Context, id uuid.UUID, _ valueobject.CallContext) error {
	if m.deleted == nil {
		m.deleted = make(map[uuid.UUID]bool)
	}
	m.deleted[id] = true
	return nil
}

func (m *mockPaymentMethodRepo) FindByID(_ context.Context, id, tenantID uuid.UUID) (*model.PaymentMethod, error) {
	for _, pm := range m.methods {
		if pm.KbPaymentMethodID() == id && pm.TenantID() == tenantID && !m.deleted[id] {
			found := pm
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockPaymentMethodRepo) ListByAccount(_ context.Context, accountID, tenantID uuid.UUID) ([]model.PaymentMethod, error) {
	var out []model.PaymentMethod
	for _, pm := range m.methods {
		if pm.KbAccountID() == accountID && pm.TenantID() == tenantID && !m.deleted[pm.KbPaymentMethodID()] {
			out = append(out, pm)
		}
	}
	return out, nil
}

func (m *mockPaymentMethodRepo) Search(_ context.Context, _ string, offset, _ int64, _ uuid.UUID) (model.Page[model.PaymentMethod], error) {
	return model.EmptyPage[model.PaymentMethod](offset), nil
}

type mockGateway struct {
	err      error
	requests []model.GatewayRequest
}

func (m *mockGateway) Send(_ context.Context, req model.GatewayRequest) (model.Receipt, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return model.Receipt{}, m.err
	}
	code, txn := "027", "txn-"+req.OrderID
	transType := gatewayTransTypes[req.Kind]
	return model.Receipt{
		ReceiptID:    &req.OrderID,
		ResponseCode: &code,
		TransType:    &transType,
		TxnNumber:    &txn,
		TransAmount:  req.Amount,
	}, nil
}

var gatewayTransTypes = map[model.RequestKind]string{
	model.RequestPurchase:           "00",
	model.RequestPreAuth:            "01",
	model.RequestReAuth:             "01",
	model.RequestCompletion:         "02",
	model.RequestRefund:             "04",
	model.RequestIndependentRefund:  "04",
	model.RequestPurchaseCorrection: "11",
}

type mockEventPublisher struct{}

func (m *mockEventPublisher) Publish(_ context.Context, _ string, _ ...events.DomainEvent) error {
	return nil
}

// --- Helpers ---

type testHandler struct {
	*PluginHandler
	transactions *mockTransactionRepo
	methods      *mockPaymentMethodRepo
	gateway      *mockGateway
}

func buildTestHandler() testHandler {
	transactions := &mockTransactionRepo{}
	methods := &mockPaymentMethodRepo{}
	gateway := &mockGateway{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	builder := service.NewRequestBuilder(service.NewChainResolver(transactions))

	h := NewPluginHandler(UseCases{
		ProcessTransaction:      usecase.NewProcessTransaction(transactions, gateway, &mockEventPublisher{}, builder, logger),
		GetPaymentInfo:          usecase.NewGetPaymentInfo(transactions, logger),
		SearchPayments:          usecase.NewSearchPayments(transactions),
		AddPaymentMethod:        usecase.NewAddPaymentMethod(methods, logger),
		DeletePaymentMethod:     usecase.NewDeletePaymentMethod(methods, logger),
		GetPaymentMethodDetail:  usecase.NewGetPaymentMethodDetail(methods),
		SetDefaultPaymentMethod: usecase.NewSetDefaultPaymentMethod(logger),
		GetPaymentMethods:       usecase.NewGetPaymentMethods(methods),
		SearchPaymentMethods:    usecase.NewSearchPaymentMethods(methods),
		ResetPaymentMethods:     usecase.NewResetPaymentMethods(logger),
		BuildFormDescriptor:     usecase.NewBuildFormDescriptor(),
		ProcessNotification:     usecase.NewProcessNotification(),
	}, logger)

	return testHandler{PluginHandler: h, transactions: transactions, methods: methods, gateway: gateway}
}

var testTenantID = uuid.MustParse("7d6f0c1e-2b4a-4c3d-9e8f-0a1b2c3d4e5f")

func contextWithClaims(roles ...string) context.Context {
	return contextWithTenant(testTenantID, roles...)
}

func contextWithTenant(tenantID uuid.UUID, roles ...string) context.Context {
	if len(roles) == 0 {
		roles = []string{auth.RoleBillingPlatform}
	}
	claims := &auth.Claims{
		TenantID: tenantID,
		UserName: "killbill",
		Roles:    roles,
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

func requireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %v", err)
	assert.Equal(t, code, st.Code())
}

func transactionRequest(paymentID uuid.UUID, amount string) *PaymentTransactionRequest {
	return &PaymentTransactionRequest{
		KbAccountID:       uuid.New().String(),
		KbPaymentID:       paymentID.String(),
		KbTransactionID:   uuid.New().String(),
		KbPaymentMethodID: uuid.New().String(),
		Amount:            amount,
		Currency:          "CAD",
	}
}

// --- Tests ---

func TestAuthorize(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		h := buildTestHandler()
		paymentID := uuid.New()

		resp, err := h.Authorize(contextWithClaims(), transactionRequest(paymentID, "10.5"))
		require.NoError(t, err)
		require.NotNil(t, resp.Transaction)
		assert.Equal(t, paymentID.String(), resp.Transaction.KbPaymentID)
		assert.Equal(t, "AUTHORIZE", resp.Transaction.TransactionType)
		assert.Equal(t, "PROCESSED", resp.Transaction.Status)
		assert.NotEmpty(t, resp.Transaction.SecondPaymentReferenceID)
		assert.NotNil(t, resp.Transaction.CreatedDate)
		require.Len(t, h.gateway.requests, 1)
		assert.Equal(t, model.RequestPreAuth, h.gateway.requests[0].Kind)
	})

	t.Run("invalid amount returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.Authorize(contextWithClaims(), transactionRequest(uuid.New(), "ten"))
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "invalid amount")
		assert.Empty(t, h.gateway.requests)
	})

	t.Run("invalid kb_payment_id returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler()
		req := transactionRequest(uuid.New(), "1")
		req.KbPaymentID = "bad-uuid"
		_, err := h.Authorize(contextWithClaims(), req)
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "invalid kb_payment_id")
	})

	t.Run("missing amount returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.Authorize(contextWithClaims(), transactionRequest(uuid.New(), ""))
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("read-only caller is denied", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.Authorize(contextWithClaims(auth.RoleReadOnly), transactionRequest(uuid.New(), "1"))
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("missing claims returns Unauthenticated", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.Authorize(context.Background(), transactionRequest(uuid.New(), "1"))
		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("token without tenant is denied", func(t *testing.T) {
		h := buildTestHandler()
		_, err := h.Authorize(contextWithTenant(uuid.Nil), transactionRequest(uuid.New(), "1"))
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("gateway failure returns Unavailable", func(t *testing.T) {
		h := buildTestHandler()
		h.gateway.err = errors.New("connection reset")
		_, err := h.Authorize(contextWithClaims(), transactionRequest(uuid.New(), "1"))
		requireGRPCCode(t, err, codes.Unavailable)
		assert.Empty(t, h.transactions.records)
	})
}

func TestCaptureWithoutAuthorization(t *testing.T) {
	h := buildTestHandler()
	_, err := h.Capture(contextWithClaims(), transactionRequest(uuid.New(), "1"))
	requireGRPCCode(t, err, codes.FailedPrecondition)
	assert.Empty(t, h.gateway.requests)
}

func TestVoidAfterAuthorize(t *testing.T) {
	h := buildTestHandler()
	paymentID := uuid.New()

	_, err := h.Authorize(contextWithClaims(), transactionRequest(paymentID, "20"))
	require.NoError(t, err)

	resp, err := h.Void(contextWithClaims(), transactionRequest(paymentID, ""))
	require.NoError(t, err)
	assert.Equal(t, "VOID", resp.Transaction.TransactionType)
	assert.Empty(t, resp.Transaction.Amount)
	require.Len(t, h.gateway.requests, 2)
	assert.Equal(t, model.RequestPurchaseCorrection, h.gateway.requests[1].Kind)
}

func TestPurchaseRecordsAuditContext(t *testing.T) {
	h := buildTestHandler()
	ctx := metadata.NewIncomingContext(contextWithClaims(), metadata.Pairs(
		reasonCodeHeader, "RETRY",
		commentsHeader, "second attempt",
	))

	_, err := h.Purchase(ctx, transactionRequest(uuid.New(), "5"))
	require.NoError(t, err)
	require.Len(t, h.transactions.records, 1)
	assert.Equal(t, testTenantID, h.transactions.records[0].TenantID())
}

func TestGetPaymentInfo(t *testing.T) {
	h := buildTestHandler()
	paymentID := uuid.New()
	_, err := h.Purchase(contextWithClaims(), transactionRequest(paymentID, "12.34"))
	require.NoError(t, err)

	t.Run("read-only caller sees the payment", func(t *testing.T) {
		resp, err := h.GetPaymentInfo(contextWithClaims(auth.RoleReadOnly), &GetPaymentInfoRequest{KbPaymentID: paymentID.String()})
		require.NoError(t, err)
		require.Len(t, resp.Transactions, 1)
		assert.Equal(t, "PURCHASE", resp.Transactions[0].TransactionType)
	})

	t.Run("other tenant sees nothing", func(t *testing.T) {
		resp, err := h.GetPaymentInfo(contextWithTenant(uuid.New()), &GetPaymentInfoRequest{KbPaymentID: paymentID.String()})
		require.NoError(t, err)
		assert.Empty(t, resp.Transactions)
	})

	t.Run("invalid kb_account_id returns InvalidArgument", func(t *testing.T) {
		_, err := h.GetPaymentInfo(contextWithClaims(), &GetPaymentInfoRequest{KbPaymentID: paymentID.String(), KbAccountID: "nope"})
		requireGRPCCode(t, err, codes.InvalidArgument)
	})
}

func TestSearchPayments(t *testing.T) {
	h := buildTestHandler()
	resp, err := h.SearchPayments(contextWithClaims(), &SearchRequest{SearchKey: "anything", Offset: 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Transactions)
	assert.Equal(t, int64(5), resp.Offset)
	assert.Zero(t, resp.TotalCount)

	_, err = h.SearchPayments(contextWithClaims(), &SearchRequest{Offset: -1})
	requireGRPCCode(t, err, codes.InvalidArgument)
}

func TestPaymentMethodLifecycle(t *testing.T) {
	h := buildTestHandler()
	accountID, methodID := uuid.New(), uuid.New()
	ref := &PaymentMethodRef{KbAccountID: accountID.String(), KbPaymentMethodID: methodID.String()}
	token := "tok-1"

	added, err := h.AddPaymentMethod(contextWithClaims(), &AddPaymentMethodRequest{
		KbAccountID:       accountID.String(),
		KbPaymentMethodID: methodID.String(),
		Properties:        []*PluginPropertyMsg{{Key: "token", Value: &token}},
	})
	require.NoError(t, err)
	assert.Equal(t, methodID.String(), added.PaymentMethod.KbPaymentMethodID)
	assert.False(t, added.PaymentMethod.IsDefault)

	detail, err := h.GetPaymentMethodDetail(contextWithClaims(), ref)
	require.NoError(t, err)
	assert.True(t, detail.Found)

	list, err := h.GetPaymentMethods(contextWithClaims(), &GetPaymentMethodsRequest{KbAccountID: accountID.String()})
	require.NoError(t, err)
	assert.Len(t, list.PaymentMethods, 1)

	_, err = h.SetDefaultPaymentMethod(contextWithClaims(), ref)
	require.NoError(t, err)

	_, err = h.DeletePaymentMethod(contextWithClaims(), ref)
	require.NoError(t, err)

	detail, err = h.GetPaymentMethodDetail(contextWithClaims(), ref)
	require.NoError(t, err)
	assert.False(t, detail.Found)
	assert.Nil(t, detail.PaymentMethod)
}

func TestDeletePaymentMethodRequiresWriteRole(t *testing.T) {
	h := buildTestHandler()
	_, err := h.DeletePaymentMethod(contextWithClaims(auth.RoleReadOnly), &PaymentMethodRef{KbPaymentMethodID: uuid.New().String()})
	requireGRPCCode(t, err, codes.PermissionDenied)
}

func TestResetPaymentMethods(t *testing.T) {
	h := buildTestHandler()
	_, err := h.ResetPaymentMethods(contextWithClaims(), &ResetPaymentMethodsRequest{
		KbAccountID:    uuid.New().String(),
		PaymentMethods: []*PaymentMethodMsg{{KbPaymentMethodID: uuid.New().String()}},
	})
	require.NoError(t, err)
	assert.Empty(t, h.methods.methods)

	_, err = h.ResetPaymentMethods(contextWithClaims(), &ResetPaymentMethodsRequest{
		KbAccountID:    uuid.New().String(),
		PaymentMethods: []*PaymentMethodMsg{{KbPaymentMethodID: "bad"}},
	})
	requireGRPCCode(t, err, codes.InvalidArgument)
}

func TestUnsupportedOperations(t *testing.T) {
	h := buildTestHandler()

	_, err := h.BuildFormDescriptor(contextWithClaims(), &BuildFormDescriptorRequest{KbAccountID: uuid.New().String()})
	requireGRPCCode(t, err, codes.Unimplemented)

	_, err = h.ProcessNotification(contextWithClaims(), &ProcessNotificationRequest{Notification: "<xml/>"})
	requireGRPCCode(t, err, codes.Unimplemented)
}

func TestToStatus(t *testing.T) {
	h := buildTestHandler()
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"invalid request", errors.Join(model.ErrInvalidRequest, errors.New("x")), codes.InvalidArgument},
		{"missing original", model.ErrOriginalTransactionNotFound, codes.FailedPrecondition},
		{"gateway", model.ErrGatewayFailure, codes.Unavailable},
		{"unsupported", model.ErrUnsupportedOperation, codes.Unimplemented},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"other", errors.New("disk full"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireGRPCCode(t, h.toStatus(ctx, tt.err), tt.code)
		})
	}

	assert.NoError(t, h.toStatus(ctx, nil))
	assert.NotContains(t, h.toStatus(ctx, errors.New("disk full")).Error(), "disk full")
}
