package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
)

// PaymentTransactionRequest is the input DTO for authorize, capture,
// purchase, void, credit and refund.
type PaymentTransactionRequest struct {
	CallContext       valueobject.CallContext
	Amount            *decimal.Decimal
	Currency          string `validate:"omitempty,len=3,alpha"`
	Properties        []valueobject.PluginProperty
	KbAccountID       uuid.UUID `validate:"required"`
	KbPaymentID       uuid.UUID `validate:"required"`
	KbTransactionID   uuid.UUID `validate:"required"`
	KbPaymentMethodID uuid.UUID `validate:"required"`
}

// PaymentTransactionResponse is the output DTO describing one gateway
// transaction as the billing platform sees it.
type PaymentTransactionResponse struct {
	CreatedDate              time.Time
	EffectiveDate            *time.Time
	Amount                   *decimal.Decimal
	GatewayError             *string
	GatewayErrorCode         *string
	FirstPaymentReferenceID  *string
	SecondPaymentReferenceID *string
	TransactionType          string
	Status                   string
	Currency                 string
	Properties               []valueobject.PluginProperty
	KbPaymentID              uuid.UUID
	KbTransactionID          uuid.UUID
}

// GetPaymentInfoRequest is the input DTO for listing a payment's transactions.
type GetPaymentInfoRequest struct {
	Properties  []valueobject.PluginProperty
	KbAccountID uuid.UUID
	KbPaymentID uuid.UUID `validate:"required"`
	TenantID    uuid.UUID `validate:"required"`
}

// SearchRequest is the input DTO for payment and payment method searches.
type SearchRequest struct {
	SearchKey string
	Offset    int64     `validate:"gte=0"`
	Limit     int64     `validate:"gte=0"`
	TenantID  uuid.UUID `validate:"required"`
}

// PaymentPageResponse is one page of payment transactions.
type PaymentPageResponse struct {
	Items      []PaymentTransactionResponse
	Offset     int64
	TotalCount int64
}

// FormDescriptorRequest is the input DTO for hosted payment page creation.
type FormDescriptorRequest struct {
	CustomFields []valueobject.PluginProperty
	Properties   []valueobject.PluginProperty
	KbAccountID  uuid.UUID
	TenantID     uuid.UUID
}

// NotificationRequest is the input DTO for gateway notifications.
type NotificationRequest struct {
	Notification string
	Properties   []valueobject.PluginProperty
	TenantID     uuid.UUID
}
