package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
)

// AddPaymentMethodRequest is the input DTO for registering a payment method.
type AddPaymentMethodRequest struct {
	CallContext             valueobject.CallContext
	ExternalPaymentMethodID string `validate:"max=255"`
	Properties              []valueobject.PluginProperty
	KbAccountID             uuid.UUID `validate:"required"`
	KbPaymentMethodID       uuid.UUID `validate:"required"`
	SetDefault              bool
}

// DeletePaymentMethodRequest is the input DTO for removing a payment method.
type DeletePaymentMethodRequest struct {
	CallContext       valueobject.CallContext
	KbAccountID       uuid.UUID
	KbPaymentMethodID uuid.UUID `validate:"required"`
}

// GetPaymentMethodRequest is the input DTO for one payment method's details.
type GetPaymentMethodRequest struct {
	KbAccountID       uuid.UUID
	KbPaymentMethodID uuid.UUID `validate:"required"`
	TenantID          uuid.UUID `validate:"required"`
}

// ListPaymentMethodsRequest is the input DTO for an account's payment methods.
type ListPaymentMethodsRequest struct {
	Properties  []valueobject.PluginProperty
	KbAccountID uuid.UUID `validate:"required"`
	TenantID    uuid.UUID `validate:"required"`
	Refresh     bool
}

// SetDefaultPaymentMethodRequest is the input DTO for choosing a default.
type SetDefaultPaymentMethodRequest struct {
	KbAccountID       uuid.UUID
	KbPaymentMethodID uuid.UUID
	TenantID          uuid.UUID
}

// ResetPaymentMethodsRequest is the input DTO for replacing an account's
// payment methods with the billing platform's list.
type ResetPaymentMethodsRequest struct {
	PaymentMethods []PaymentMethodResponse
	KbAccountID    uuid.UUID
	TenantID       uuid.UUID
}

// PaymentMethodResponse is the output DTO for a payment method.
type PaymentMethodResponse struct {
	CreatedAt               time.Time
	UpdatedAt               time.Time
	ExternalPaymentMethodID string
	Properties              []valueobject.PluginProperty
	KbAccountID             uuid.UUID
	KbPaymentMethodID       uuid.UUID
	IsDefault               bool
}

// PaymentMethodPageResponse is one page of payment methods.
type PaymentMethodPageResponse struct {
	Items      []PaymentMethodResponse
	Offset     int64
	TotalCount int64
}
