package grpc

import "google.golang.org/protobuf/types/known/timestamppb"

// Request and response messages for PaymentPluginService. Identifiers are
// UUID strings and amounts are decimal strings so values survive JSON intact.

type PluginPropertyMsg struct {
	Key         string  `json:"key"`
	Value       *string `json:"value,omitempty"`
	IsUpdatable bool    `json:"is_updatable,omitempty"`
}

type PaymentTransactionRequest struct {
	KbAccountID       string               `json:"kb_account_id"`
	KbPaymentID       string               `json:"kb_payment_id"`
	KbTransactionID   string               `json:"kb_transaction_id"`
	KbPaymentMethodID string               `json:"kb_payment_method_id"`
	Amount            string               `json:"amount,omitempty"`
	Currency          string               `json:"currency,omitempty"`
	Properties        []*PluginPropertyMsg `json:"properties,omitempty"`
}

type PaymentTransactionInfoMsg struct {
	KbPaymentID              string                 `json:"kb_payment_id"`
	KbTransactionID          string                 `json:"kb_transaction_id"`
	TransactionType          string                 `json:"transaction_type"`
	Amount                   string                 `json:"amount,omitempty"`
	Currency                 string                 `json:"currency,omitempty"`
	CreatedDate              *timestamppb.Timestamp `json:"created_date"`
	EffectiveDate            *timestamppb.Timestamp `json:"effective_date,omitempty"`
	Status                   string                 `json:"status"`
	GatewayError             string                 `json:"gateway_error,omitempty"`
	GatewayErrorCode         string                 `json:"gateway_error_code,omitempty"`
	FirstPaymentReferenceID  string                 `json:"first_payment_reference_id,omitempty"`
	SecondPaymentReferenceID string                 `json:"second_payment_reference_id,omitempty"`
	Properties               []*PluginPropertyMsg   `json:"properties,omitempty"`
}

type PaymentTransactionResponse struct {
	Transaction *PaymentTransactionInfoMsg `json:"transaction"`
}

type GetPaymentInfoRequest struct {
	KbAccountID string               `json:"kb_account_id,omitempty"`
	KbPaymentID string               `json:"kb_payment_id"`
	Properties  []*PluginPropertyMsg `json:"properties,omitempty"`
}

type GetPaymentInfoResponse struct {
	Transactions []*PaymentTransactionInfoMsg `json:"transactions"`
}

type SearchRequest struct {
	SearchKey  string               `json:"search_key"`
	Offset     int64                `json:"offset"`
	Limit      int64                `json:"limit"`
	Properties []*PluginPropertyMsg `json:"properties,omitempty"`
}

type SearchPaymentsResponse struct {
	Transactions []*PaymentTransactionInfoMsg `json:"transactions"`
	Offset       int64                        `json:"offset"`
	TotalCount   int64                        `json:"total_count"`
}

type AddPaymentMethodRequest struct {
	KbAccountID             string               `json:"kb_account_id"`
	KbPaymentMethodID       string               `json:"kb_payment_method_id"`
	ExternalPaymentMethodID string               `json:"external_payment_method_id,omitempty"`
	SetDefault              bool                 `json:"set_default,omitempty"`
	Properties              []*PluginPropertyMsg `json:"properties,omitempty"`
}

type PaymentMethodMsg struct {
	KbAccountID             string                 `json:"kb_account_id"`
	KbPaymentMethodID       string                 `json:"kb_payment_method_id"`
	ExternalPaymentMethodID string                 `json:"external_payment_method_id,omitempty"`
	IsDefault               bool                   `json:"is_default"`
	Properties              []*PluginPropertyMsg   `json:"properties,omitempty"`
	CreatedAt               *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt               *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type PaymentMethodResponse struct {
	PaymentMethod *PaymentMethodMsg `json:"payment_method"`
}

// PaymentMethodRef addresses a single payment method of an account.
type PaymentMethodRef struct {
	KbAccountID       string `json:"kb_account_id,omitempty"`
	KbPaymentMethodID string `json:"kb_payment_method_id"`
}

type GetPaymentMethodDetailResponse struct {
	Found         bool              `json:"found"`
	PaymentMethod *PaymentMethodMsg `json:"payment_method,omitempty"`
}

type GetPaymentMethodsRequest struct {
	KbAccountID string               `json:"kb_account_id"`
	Refresh     bool                 `json:"refresh,omitempty"`
	Properties  []*PluginPropertyMsg `json:"properties,omitempty"`
}

type GetPaymentMethodsResponse struct {
	PaymentMethods []*PaymentMethodMsg `json:"payment_methods"`
}

type SearchPaymentMethodsResponse struct {
	PaymentMethods []*PaymentMethodMsg `json:"payment_methods"`
	Offset         int64               `json:"offset"`
	TotalCount     int64               `json:"total_count"`
}

type ResetPaymentMethodsRequest struct {
	KbAccountID    string              `json:"kb_account_id"`
	PaymentMethods []*PaymentMethodMsg `json:"payment_methods"`
}

type BuildFormDescriptorRequest struct {
	KbAccountID  string               `json:"kb_account_id"`
	CustomFields []*PluginPropertyMsg `json:"custom_fields,omitempty"`
	Properties   []*PluginPropertyMsg `json:"properties,omitempty"`
}

type ProcessNotificationRequest struct {
	Notification string               `json:"notification"`
	Properties   []*PluginPropertyMsg `json:"properties,omitempty"`
}

type Empty struct{}
