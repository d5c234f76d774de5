package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/killbill/killbill-moneris-plugin/internal/application/dto"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/event"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/port"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/service"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/pkg/money"
)

// ProcessTransaction runs one billing payment operation against the gateway:
// it picks the request variant, sends it, stores the receipt and announces
// it. Authorize, capture, purchase, void, credit and refund all go through it.
type ProcessTransaction struct {
	transactions port.TransactionRepository
	gateway      port.GatewayClient
	publisher    port.EventPublisher
	builder      *service.RequestBuilder
	logger       *slog.Logger
}

func NewProcessTransaction(
	transactions port.TransactionRepository,
	gateway port.GatewayClient,
	publisher port.EventPublisher,
	builder *service.RequestBuilder,
	logger *slog.Logger,
) *ProcessTransaction {
	return &ProcessTransaction{
		transactions: transactions,
		gateway:      gateway,
		publisher:    publisher,
		builder:      builder,
		logger:       logger,
	}
}

func (uc *ProcessTransaction) Execute(ctx context.Context, txType valueobject.TransactionType, req dto.PaymentTransactionRequest) (dto.PaymentTransactionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.PaymentTransactionResponse{}, err
	}
	if err := checkAmount(txType, req.Amount); err != nil {
		return dto.PaymentTransactionResponse{}, err
	}
	if err := checkCurrency(txType, req.Currency); err != nil {
		return dto.PaymentTransactionResponse{}, err
	}
	tenantID := req.CallContext.TenantID
	if err := requireTenant(tenantID); err != nil {
		return dto.PaymentTransactionResponse{}, err
	}

	op, err := uc.builder.Plan(ctx, txType, req.KbPaymentID, tenantID)
	if err != nil {
		return dto.PaymentTransactionResponse{}, fmt.Errorf("plan %s: %w", txType, err)
	}

	amount, currency := req.Amount, req.Currency
	if txType == valueobject.TransactionTypeVoid {
		amount, currency = nil, ""
	}

	gwReq := service.Build(op, service.PaymentCall{
		KbAccountID:       req.KbAccountID,
		KbPaymentID:       req.KbPaymentID,
		KbTransactionID:   req.KbTransactionID,
		KbPaymentMethodID: req.KbPaymentMethodID,
		Amount:            amount,
		Currency:          currency,
		Properties:        valueobject.NewMonerisProperties(req.Properties),
	})

	uc.logger.Info("sending gateway request",
		"transaction_type", txType.String(),
		"request_kind", string(gwReq.Kind),
		"kb_payment_id", req.KbPaymentID,
		"kb_transaction_id", req.KbTransactionID,
		"order_id", gwReq.OrderID,
	)

	receipt, err := uc.gateway.Send(ctx, gwReq)
	if err != nil {
		uc.logger.Error("gateway request failed",
			"transaction_type", txType.String(),
			"kb_payment_id", req.KbPaymentID,
			"error", err,
		)
		return dto.PaymentTransactionResponse{}, fmt.Errorf("%s of payment %s: %w: %w", txType, req.KbPaymentID, model.ErrGatewayFailure, err)
	}

	info := model.NewTransactionInfo(req.KbPaymentID, req.KbTransactionID, currency, receipt)
	record := model.NewTransactionRecord(info, req.KbAccountID, req.KbPaymentMethodID, op.BillingType(), amount, req.CallContext)

	if err := uc.transactions.Create(ctx, record); err != nil {
		return dto.PaymentTransactionResponse{}, fmt.Errorf("failed to save %s transaction: %w", txType, err)
	}

	uc.logger.Info("gateway transaction recorded",
		"transaction_type", txType.String(),
		"kb_payment_id", req.KbPaymentID,
		"kb_transaction_id", req.KbTransactionID,
		"status", info.Status().String(),
		"response_code", deref(receipt.ResponseCode),
	)

	// Publish failures are logged only: the row is already committed.
	if err := uc.publisher.Publish(ctx, event.TopicTransactions, event.NewTransactionRecorded(record)); err != nil {
		uc.logger.Warn("failed to publish transaction event",
			"kb_payment_id", req.KbPaymentID,
			"kb_transaction_id", req.KbTransactionID,
			"error", err,
		)
	}

	return toTransactionResponse(record), nil
}

// checkAmount requires a non-negative amount within the gateway limit for
// everything but voids.
func checkAmount(txType valueobject.TransactionType, amount *decimal.Decimal) error {
	if txType == valueobject.TransactionTypeVoid {
		return nil
	}
	if amount == nil {
		return fmt.Errorf("%w: amount is required for %s", model.ErrInvalidRequest, txType)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", model.ErrInvalidRequest)
	}
	if !money.WithinGatewayLimit(*amount) {
		return fmt.Errorf("%w: amount %s exceeds the gateway maximum of %s", model.ErrInvalidRequest, amount, money.MaxGatewayAmount)
	}
	return nil
}

// checkCurrency accepts an empty currency or an upper-case ISO 4217 code.
// Voids drop the currency, so it is not checked for them.
func checkCurrency(txType valueobject.TransactionType, currency string) error {
	if txType == valueobject.TransactionTypeVoid || currency == "" {
		return nil
	}
	if _, err := money.NewCurrency(currency); err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidRequest, err)
	}
	return nil
}

func requireTenant(tenantID uuid.UUID) error {
	if tenantID == uuid.Nil {
		return fmt.Errorf("%w: tenant ID is required", model.ErrInvalidRequest)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
