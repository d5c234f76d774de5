package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/killbill/killbill-moneris-plugin/internal/application/dto"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/port"
)

// GetPaymentInfo lists the stored gateway transactions of one payment.
type GetPaymentInfo struct {
	transactions port.TransactionRepository
	logger       *slog.Logger
}

func NewGetPaymentInfo(transactions port.TransactionRepository, logger *slog.Logger) *GetPaymentInfo {
	return &GetPaymentInfo{transactions: transactions, logger: logger}
}

// Execute returns the transactions oldest first. An unknown payment yields
// an empty list.
func (uc *GetPaymentInfo) Execute(ctx context.Context, req dto.GetPaymentInfoRequest) ([]dto.PaymentTransactionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	records, err := uc.transactions.ListByPayment(ctx, req.KbPaymentID, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := make([]dto.PaymentTransactionResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, toTransactionResponse(r))
	}

	uc.logger.Debug("payment info loaded", "kb_payment_id", req.KbPaymentID, "transactions", len(resp))
	return resp, nil
}

// SearchPayments searches stored transactions. Search is not implemented by
// the store yet, so every result is an empty page.
type SearchPayments struct {
	transactions port.TransactionRepository
}

func NewSearchPayments(transactions port.TransactionRepository) *SearchPayments {
	return &SearchPayments{transactions: transactions}
}

func (uc *SearchPayments) Execute(ctx context.Context, req dto.SearchRequest) (dto.PaymentPageResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.PaymentPageResponse{}, err
	}

	page, err := uc.transactions.Search(ctx, req.SearchKey, req.Offset, req.Limit, req.TenantID)
	if err != nil {
		return dto.PaymentPageResponse{}, fmt.Errorf("failed to search payments: %w", err)
	}

	items := make([]dto.PaymentTransactionResponse, 0, len(page.Items))
	for _, info := range page.Items {
		items = append(items, toInfoResponse(info))
	}

	return dto.PaymentPageResponse{
		Items:      items,
		Offset:     page.Offset,
		TotalCount: page.TotalCount,
	}, nil
}
