package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/pkg/events"
)

// --- Mock implementations ---

type mockTransactionRepository struct {
	records   []model.TransactionRecord
	createErr error
	listErr   error
}

func (m *mockTransactionRepository) Create(_ context.Context, record model.TransactionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockTransactionRepository) ListByPayment(_ context.Context, kbPaymentID, tenantID uuid.UUID) ([]model.TransactionRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.TransactionRecord
	for _, r := range m.records {
		if r.Info().KbPaymentID() == kbPaymentID && r.TenantID() == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockTransactionRepository) Search(_ context.Context, _ string, offset, _ int64, _ uuid.UUID) (model.Page[model.TransactionInfo], error) {
	return model.EmptyPage[model.TransactionInfo](offset), nil
}

type mockPaymentMethodRepository struct {
	methods   []model.PaymentMethod
	deleted   []uuid.UUID
	createErr error
	findErr   error
}

func (m *mockPaymentMethodRepository) Create(_ context.Context, pm model.PaymentMethod) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.methods = append(m.methods, pm)
	return nil
}

func (m *mockPaymentMethodRepository) SoftDelete(_ context.Context, id uuid.UUID, _ valueobject.CallContext) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockPaymentMethodRepository) FindByID(_ context.Context, id, tenantID uuid.UUID) (*model.PaymentMethod, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, pm := range m.methods {
		if pm.KbPaymentMethodID() == id && pm.TenantID() == tenantID && !m.isDeleted(id) {
			found := pm
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockPaymentMethodRepository) ListByAccount(_ context.Context, accountID, tenantID uuid.UUID) ([]model.PaymentMethod, error) {
	var out []model.PaymentMethod
	for _, pm := range m.methods {
		if pm.KbAccountID() == accountID && pm.TenantID() == tenantID && !m.isDeleted(pm.KbPaymentMethodID()) {
			out = append(out, pm)
		}
	}
	return out, nil
}

func (m *mockPaymentMethodRepository) Search(_ context.Context, _ string, offset, _ int64, _ uuid.UUID) (model.Page[model.PaymentMethod], error) {
	return model.EmptyPage[model.PaymentMethod](offset), nil
}

func (m *mockPaymentMethodRepository) isDeleted(id uuid.UUID) bool {
	for _, d := range m.deleted {
		if d == id {
			return true
		}
	}
	return false
}

type mockGatewayClient struct {
	sendFunc func(ctx context.Context, req model.GatewayRequest) (model.Receipt, error)
	requests []model.GatewayRequest
}

func (m *mockGatewayClient) Send(ctx context.Context, req model.GatewayRequest) (model.Receipt, error) {
	m.requests = append(m.requests, req)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, req)
	}
	return approved(req), nil
}

type mockEventPublisher struct {
	publishErr      error
	publishedEvents []events.DomainEvent
	topics          []string
}

func (m *mockEventPublisher) Publish(_ context.Context, topic string, evts ...events.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.topics = append(m.topics, topic)
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// approved answers like the gateway does for an accepted request, echoing
// the request kind as the gateway's transaction type code.
func approved(req model.GatewayRequest) model.Receipt {
	codes := map[model.RequestKind]string{
		model.RequestPurchase:           "00",
		model.RequestPreAuth:            "01",
		model.RequestReAuth:             "01",
		model.RequestCompletion:         "02",
		model.RequestRefund:             "04",
		model.RequestIndependentRefund:  "04",
		model.RequestPurchaseCorrection: "11",
	}
	code := codes[req.Kind]
	txn := "txn-" + req.OrderID
	amount := "0.00"
	if req.Amount != nil {
		amount = *req.Amount
	}
	return model.Receipt{
		ReceiptID:    &req.OrderID,
		ResponseCode: strPtr("027"),
		AuthCode:     strPtr("123456"),
		TransType:    &code,
		TransDate:    strPtr("2014-03-10"),
		TransTime:    strPtr("12:42:01"),
		TransAmount:  &amount,
		TxnNumber:    &txn,
		Message:      strPtr("APPROVED"),
	}
}

func strPtr(s string) *string { return &s }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
