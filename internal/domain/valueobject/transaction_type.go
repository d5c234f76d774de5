package valueobject

import (
	"fmt"
	"strings"
)

// TransactionType is the billing platform's kind of payment transaction.
type TransactionType struct {
	value string
}

var (
	TransactionTypeAuthorize = TransactionType{"AUTHORIZE"}
	TransactionTypeCapture   = TransactionType{"CAPTURE"}
	TransactionTypePurchase  = TransactionType{"PURCHASE"}
	TransactionTypeVoid      = TransactionType{"VOID"}
	TransactionTypeCredit    = TransactionType{"CREDIT"}
	TransactionTypeRefund    = TransactionType{"REFUND"}
	// TransactionTypeUnknown is what an unrecognized gateway type maps to.
	TransactionTypeUnknown = TransactionType{"UNKNOWN"}
)

var billingTransactionTypes = map[string]TransactionType{
	"AUTHORIZE": TransactionTypeAuthorize,
	"CAPTURE":   TransactionTypeCapture,
	"PURCHASE":  TransactionTypePurchase,
	"VOID":      TransactionTypeVoid,
	"CREDIT":    TransactionTypeCredit,
	"REFUND":    TransactionTypeRefund,
}

// gatewayTransactionTypes maps the gateway's receipt TransType codes.
// Independent refunds report "04" like plain refunds do.
var gatewayTransactionTypes = map[string]TransactionType{
	"00": TransactionTypePurchase,
	"01": TransactionTypeAuthorize,
	"02": TransactionTypeCapture,
	"04": TransactionTypeRefund,
	"11": TransactionTypeVoid,
}

// NewTransactionType validates and creates a TransactionType from a billing
// platform name such as "AUTHORIZE".
func NewTransactionType(s string) (TransactionType, error) {
	if t, ok := billingTransactionTypes[s]; ok {
		return t, nil
	}
	return TransactionType{}, fmt.Errorf("invalid transaction type: %q", s)
}

// TransactionTypeFromGateway interprets a receipt's TransType. Both gateway
// codes and billing names are accepted; anything else, including a missing
// value, is TransactionTypeUnknown.
func TransactionTypeFromGateway(raw *string) TransactionType {
	if raw == nil {
		return TransactionTypeUnknown
	}
	s := strings.TrimSpace(*raw)
	if t, ok := gatewayTransactionTypes[s]; ok {
		return t
	}
	if t, ok := billingTransactionTypes[strings.ToUpper(s)]; ok {
		return t
	}
	return TransactionTypeUnknown
}

func (t TransactionType) String() string {
	return t.value
}

// IsUnknown reports whether t is TransactionTypeUnknown.
func (t TransactionType) IsUnknown() bool {
	return t == TransactionTypeUnknown
}

// IsZero returns true if the transaction type is uninitialized.
func (t TransactionType) IsZero() bool {
	return t.value == ""
}
