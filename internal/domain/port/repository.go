package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/pkg/events"
)

// TransactionRepository stores gateway outcomes. It never updates a row.
type TransactionRepository interface {
	// Create appends one transaction row.
	Create(ctx context.Context, record model.TransactionRecord) error
	// ListByPayment returns a payment's transactions for one tenant, oldest first.
	ListByPayment(ctx context.Context, kbPaymentID, tenantID uuid.UUID) ([]model.TransactionRecord, error)
	// Search is reserved; it currently returns an empty page.
	Search(ctx context.Context, searchKey string, offset, limit int64, tenantID uuid.UUID) (model.Page[model.TransactionInfo], error)
}

// PaymentMethodRepository stores payment methods. Deleted rows are kept but
// never returned.
type PaymentMethodRepository interface {
	Create(ctx context.Context, pm model.PaymentMethod) error
	// SoftDelete flags the payment method deleted within callCtx's tenant.
	SoftDelete(ctx context.Context, kbPaymentMethodID uuid.UUID, callCtx valueobject.CallContext) error
	// FindByID returns nil when the payment method is missing or deleted.
	FindByID(ctx context.Context, kbPaymentMethodID, tenantID uuid.UUID) (*model.PaymentMethod, error)
	ListByAccount(ctx context.Context, kbAccountID, tenantID uuid.UUID) ([]model.PaymentMethod, error)
	// Search is reserved; it currently returns an empty page.
	Search(ctx context.Context, searchKey string, offset, limit int64, tenantID uuid.UUID) (model.Page[model.PaymentMethod], error)
}

// GatewayClient submits one request to the payment gateway and returns its
// receipt. Transport and protocol failures are returned as errors.
type GatewayClient interface {
	Send(ctx context.Context, req model.GatewayRequest) (model.Receipt, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}
