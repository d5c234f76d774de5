package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
)

// TransactionRecord is a TransactionInfo as stored: the gateway outcome plus
// the billing call that produced it. The billing transaction type is kept
// next to the type the gateway reported; the two may disagree.
type TransactionRecord struct {
	recordID          int64
	info              TransactionInfo
	kbAccountID       uuid.UUID
	kbPaymentMethodID uuid.UUID
	billingType       valueobject.TransactionType
	amount            *decimal.Decimal
	tenantID          uuid.UUID
	createdBy         string
	createdAt         time.Time
	updatedBy         string
	updatedAt         time.Time
}

// NewTransactionRecord prepares info for insertion on behalf of callCtx.
// amount is the billing amount and is nil for voids.
func NewTransactionRecord(
	info TransactionInfo,
	kbAccountID, kbPaymentMethodID uuid.UUID,
	billingType valueobject.TransactionType,
	amount *decimal.Decimal,
	callCtx valueobject.CallContext,
) TransactionRecord {
	return TransactionRecord{
		info:              info,
		kbAccountID:       kbAccountID,
		kbPaymentMethodID: kbPaymentMethodID,
		billingType:       billingType,
		amount:            amount,
		tenantID:          callCtx.TenantID,
		createdBy:         callCtx.UserName,
		createdAt:         callCtx.CreatedDate,
		updatedBy:         callCtx.UserName,
		updatedAt:         callCtx.CreatedDate,
	}
}

// ReconstructTransactionRecord recreates a TransactionRecord from persistence.
func ReconstructTransactionRecord(
	recordID int64,
	info TransactionInfo,
	kbAccountID, kbPaymentMethodID uuid.UUID,
	billingType valueobject.TransactionType,
	amount *decimal.Decimal,
	tenantID uuid.UUID,
	createdBy string, createdAt time.Time,
	updatedBy string, updatedAt time.Time,
) TransactionRecord {
	return TransactionRecord{
		recordID:          recordID,
		info:              info,
		kbAccountID:       kbAccountID,
		kbPaymentMethodID: kbPaymentMethodID,
		billingType:       billingType,
		amount:            amount,
		tenantID:          tenantID,
		createdBy:         createdBy,
		createdAt:         createdAt,
		updatedBy:         updatedBy,
		updatedAt:         updatedAt,
	}
}

func (r TransactionRecord) RecordID() int64                          { return r.recordID }
func (r TransactionRecord) Info() TransactionInfo                    { return r.info }
func (r TransactionRecord) KbAccountID() uuid.UUID                   { return r.kbAccountID }
func (r TransactionRecord) KbPaymentMethodID() uuid.UUID             { return r.kbPaymentMethodID }
func (r TransactionRecord) BillingType() valueobject.TransactionType { return r.billingType }
func (r TransactionRecord) Amount() *decimal.Decimal                 { return r.amount }
func (r TransactionRecord) TenantID() uuid.UUID                      { return r.tenantID }
func (r TransactionRecord) CreatedBy() string                        { return r.createdBy }
func (r TransactionRecord) CreatedAt() time.Time                     { return r.createdAt }
func (r TransactionRecord) UpdatedBy() string                        { return r.updatedBy }
func (r TransactionRecord) UpdatedAt() time.Time                     { return r.updatedAt }

// EffectiveType is the gateway-reported type, or the billing type when the
// gateway's value is missing or unrecognized.
func (r TransactionRecord) EffectiveType() valueobject.TransactionType {
	if t := r.info.TransactionType(); !t.IsUnknown() {
		return t
	}
	if r.billingType.IsZero() {
		return valueobject.TransactionTypeUnknown
	}
	return r.billingType
}
