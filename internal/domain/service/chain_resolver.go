package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
)

// TransactionLister is the slice of the transaction repository the resolver reads.
type TransactionLister interface {
	ListByPayment(ctx context.Context, kbPaymentID, tenantID uuid.UUID) ([]model.TransactionRecord, error)
}

// ChainResolver finds the prior transaction a chained operation (capture,
// re-authorization, void, refund) has to reference.
type ChainResolver struct {
	transactions TransactionLister
}

func NewChainResolver(transactions TransactionLister) *ChainResolver {
	return &ChainResolver{transactions: transactions}
}

// FindLatest returns the most recent transaction of txType for the payment,
// or nil when there is none.
func (r *ChainResolver) FindLatest(
	ctx context.Context,
	kbPaymentID, tenantID uuid.UUID,
	txType valueobject.TransactionType,
) (*model.TransactionRecord, error) {
	records, err := r.transactions.ListByPayment(ctx, kbPaymentID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list transactions for payment %s: %w", kbPaymentID, err)
	}
	return LatestOfType(records, txType), nil
}

// FindRefundable returns the transaction a refund applies to: the latest
// purchase, or the latest capture when the payment was never purchased.
func (r *ChainResolver) FindRefundable(ctx context.Context, kbPaymentID, tenantID uuid.UUID) (*model.TransactionRecord, error) {
	records, err := r.transactions.ListByPayment(ctx, kbPaymentID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list transactions for payment %s: %w", kbPaymentID, err)
	}
	if rec := LatestOfType(records, valueobject.TransactionTypePurchase); rec != nil {
		return rec, nil
	}
	return LatestOfType(records, valueobject.TransactionTypeCapture), nil
}

// LatestOfType scans records, oldest first, and keeps the last one whose
// type matches. It returns nil when nothing matches.
func LatestOfType(records []model.TransactionRecord, txType valueobject.TransactionType) *model.TransactionRecord {
	var latest *model.TransactionRecord
	for i := range records {
		if records[i].EffectiveType() == txType {
			latest = &records[i]
		}
	}
	return latest
}
