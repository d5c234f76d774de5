package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/pkg/money"
)

const effectiveDateLayout = "2006-01-02T15:04:05Z"

// TransactionInfo is the outcome of one gateway call tied to the billing
// identifiers it was made for. It is immutable once created.
type TransactionInfo struct {
	kbPaymentID     uuid.UUID
	kbTransactionID uuid.UUID
	currency        string
	receipt         Receipt
}

// NewTransactionInfo wraps a gateway receipt. currency may be empty.
func NewTransactionInfo(kbPaymentID, kbTransactionID uuid.UUID, currency string, receipt Receipt) TransactionInfo {
	return TransactionInfo{
		kbPaymentID:     kbPaymentID,
		kbTransactionID: kbTransactionID,
		currency:        currency,
		receipt:         copyReceipt(receipt),
	}
}

func (t TransactionInfo) KbPaymentID() uuid.UUID     { return t.kbPaymentID }
func (t TransactionInfo) KbTransactionID() uuid.UUID { return t.kbTransactionID }
func (t TransactionInfo) Currency() string           { return t.currency }

// Receipt returns a copy of the raw receipt.
func (t TransactionInfo) Receipt() Receipt { return copyReceipt(t.receipt) }

// Amount is the transaction amount the gateway reported, or nil when it is
// missing or not a number.
func (t TransactionInfo) Amount() *decimal.Decimal {
	if t.receipt.TransAmount == nil {
		return nil
	}
	d, ok := money.ParseGatewayAmount(*t.receipt.TransAmount)
	if !ok {
		return nil
	}
	return &d
}

// EffectiveDate combines the receipt's date and time, read as UTC. It is nil
// when either part is missing or the pair does not parse.
func (t TransactionInfo) EffectiveDate() *time.Time {
	if t.receipt.TransDate == nil || t.receipt.TransTime == nil {
		return nil
	}
	ts, err := time.Parse(effectiveDateLayout, *t.receipt.TransDate+"T"+*t.receipt.TransTime+"Z")
	if err != nil {
		return nil
	}
	return &ts
}

// TransactionType interprets the receipt's TransType.
func (t TransactionInfo) TransactionType() valueobject.TransactionType {
	return valueobject.TransactionTypeFromGateway(t.receipt.TransType)
}

// Status classifies the receipt's response code.
func (t TransactionInfo) Status() valueobject.PluginStatus {
	return valueobject.PluginStatusFromResponseCode(t.receipt.ResponseCode)
}

func (t TransactionInfo) GatewayError() *string     { return t.receipt.Message }
func (t TransactionInfo) GatewayErrorCode() *string { return t.receipt.StatusCode }

// FirstPaymentReferenceID is the issuer's authorization code.
func (t TransactionInfo) FirstPaymentReferenceID() *string { return t.receipt.AuthCode }

// SecondPaymentReferenceID is the gateway transaction number, which chained
// operations must quote.
func (t TransactionInfo) SecondPaymentReferenceID() *string { return t.receipt.TxnNumber }

// TxnNumber is the gateway transaction number.
func (t TransactionInfo) TxnNumber() *string { return t.receipt.TxnNumber }

// Properties lists every raw receipt field in a fixed order.
func (t TransactionInfo) Properties() []valueobject.PluginProperty {
	fields := t.receipt.fields()
	props := make([]valueobject.PluginProperty, 0, len(fields))
	for _, f := range fields {
		props = append(props, valueobject.PluginProperty{Key: f.name, Value: cloneString(f.value)})
	}
	return props
}

// Equal is structural equality over the identifiers, the currency and every
// raw receipt field.
func (t TransactionInfo) Equal(other TransactionInfo) bool {
	return t.kbPaymentID == other.kbPaymentID &&
		t.kbTransactionID == other.kbTransactionID &&
		t.currency == other.currency &&
		t.receipt.Equal(other.receipt)
}

func copyReceipt(r Receipt) Receipt {
	return Receipt{
		ReceiptID:      cloneString(r.ReceiptID),
		ReferenceNum:   cloneString(r.ReferenceNum),
		ResponseCode:   cloneString(r.ResponseCode),
		ISO:            cloneString(r.ISO),
		AuthCode:       cloneString(r.AuthCode),
		TransTime:      cloneString(r.TransTime),
		TransDate:      cloneString(r.TransDate),
		TransType:      cloneString(r.TransType),
		Complete:       cloneString(r.Complete),
		Message:        cloneString(r.Message),
		TransAmount:    cloneString(r.TransAmount),
		CardType:       cloneString(r.CardType),
		TxnNumber:      cloneString(r.TxnNumber),
		TimedOut:       cloneString(r.TimedOut),
		Ticket:         cloneString(r.Ticket),
		RecurSuccess:   cloneString(r.RecurSuccess),
		AvsResultCode:  cloneString(r.AvsResultCode),
		CvdResultCode:  cloneString(r.CvdResultCode),
		CavvResultCode: cloneString(r.CavvResultCode),
		StatusCode:     cloneString(r.StatusCode),
		StatusMessage:  cloneString(r.StatusMessage),
		IsVisaDebit:    cloneString(r.IsVisaDebit),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
