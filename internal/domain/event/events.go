package event

import (
	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/pkg/events"
)

const (
	AggregateTypePayment = "Payment"

	// TopicTransactions carries every recorded gateway transaction.
	TopicTransactions = "killbill.moneris.transactions"

	EventTypeTransactionRecorded = "moneris.transaction.recorded"
)

// TransactionRecorded is emitted after a gateway outcome has been stored.
type TransactionRecorded struct {
	events.BaseEvent
	KbAccountID     string  `json:"kb_account_id"`
	KbPaymentID     string  `json:"kb_payment_id"`
	KbTransactionID string  `json:"kb_transaction_id"`
	BillingType     string  `json:"billing_type"`
	GatewayType     string  `json:"gateway_type"`
	Status          string  `json:"status"`
	Amount          *string `json:"amount,omitempty"`
	Currency        string  `json:"currency,omitempty"`
	TxnNumber       *string `json:"txn_number,omitempty"`
	ResponseCode    *string `json:"response_code,omitempty"`
}

// NewTransactionRecorded builds the event for a stored record. Card data is
// never part of a receipt, so nothing sensitive is copied.
func NewTransactionRecorded(record model.TransactionRecord) TransactionRecorded {
	info := record.Info()
	receipt := info.Receipt()

	var amount *string
	if a := info.Amount(); a != nil {
		s := a.StringFixed(2)
		amount = &s
	}

	return TransactionRecorded{
		BaseEvent: events.NewBaseEvent(
			EventTypeTransactionRecorded,
			info.KbPaymentID().String(),
			AggregateTypePayment,
			record.TenantID().String(),
		),
		KbAccountID:     record.KbAccountID().String(),
		KbPaymentID:     info.KbPaymentID().String(),
		KbTransactionID: info.KbTransactionID().String(),
		BillingType:     record.BillingType().String(),
		GatewayType:     info.TransactionType().String(),
		Status:          info.Status().String(),
		Amount:          amount,
		Currency:        info.Currency(),
		TxnNumber:       receipt.TxnNumber,
		ResponseCode:    receipt.ResponseCode,
	}
}
