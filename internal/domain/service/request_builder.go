package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/pkg/money"
)

// PaymentCall is the billing input common to every payment operation.
type PaymentCall struct {
	KbAccountID       uuid.UUID
	KbPaymentID       uuid.UUID
	KbTransactionID   uuid.UUID
	KbPaymentMethodID uuid.UUID
	Amount            *decimal.Decimal
	Currency          string
	Properties        valueobject.MonerisProperties
}

// Operation is one of Authorize, ReAuthorize, Capture, Purchase, Void,
// Credit or Refund. Chained variants carry the transaction they reference.
type Operation interface {
	// BillingType is the transaction type recorded for the billing platform.
	BillingType() valueobject.TransactionType
	operation()
}

type (
	Authorize   struct{}
	ReAuthorize struct{ Prior model.TransactionInfo }
	Capture     struct{ Prior model.TransactionInfo }
	Purchase    struct{}
	Void        struct{ Prior model.TransactionInfo }
	Credit      struct{}
	Refund      struct{ Prior model.TransactionInfo }
)

func (Authorize) BillingType() valueobject.TransactionType {
	return valueobject.TransactionTypeAuthorize
}
func (ReAuthorize) BillingType() valueobject.TransactionType {
	return valueobject.TransactionTypeAuthorize
}
func (Capture) BillingType() valueobject.TransactionType  { return valueobject.TransactionTypeCapture }
func (Purchase) BillingType() valueobject.TransactionType { return valueobject.TransactionTypePurchase }
func (Void) BillingType() valueobject.TransactionType     { return valueobject.TransactionTypeVoid }
func (Credit) BillingType() valueobject.TransactionType   { return valueobject.TransactionTypeCredit }
func (Refund) BillingType() valueobject.TransactionType   { return valueobject.TransactionTypeRefund }

func (Authorize) operation()   {}
func (ReAuthorize) operation() {}
func (Capture) operation()     {}
func (Purchase) operation()    {}
func (Void) operation()        {}
func (Credit) operation()      {}
func (Refund) operation()      {}

// RequestBuilder turns billing calls into gateway requests.
type RequestBuilder struct {
	resolver *ChainResolver
}

func NewRequestBuilder(resolver *ChainResolver) *RequestBuilder {
	return &RequestBuilder{resolver: resolver}
}

// Plan picks the operation variant for a billing call of type txType and
// resolves the prior transaction it needs. Captures, voids and refunds
// without a prior transaction fail with model.ErrOriginalTransactionNotFound.
func (b *RequestBuilder) Plan(
	ctx context.Context,
	txType valueobject.TransactionType,
	kbPaymentID, tenantID uuid.UUID,
) (Operation, error) {
	switch txType {
	case valueobject.TransactionTypeAuthorize:
		prior, err := b.resolver.FindLatest(ctx, kbPaymentID, tenantID, valueobject.TransactionTypeAuthorize)
		if err != nil {
			return nil, err
		}
		if prior == nil {
			return Authorize{}, nil
		}
		return ReAuthorize{Prior: prior.Info()}, nil

	case valueobject.TransactionTypeCapture, valueobject.TransactionTypeVoid:
		prior, err := b.resolver.FindLatest(ctx, kbPaymentID, tenantID, valueobject.TransactionTypeAuthorize)
		if err != nil {
			return nil, err
		}
		if prior == nil {
			return nil, fmt.Errorf("%s of payment %s: no authorization: %w", txType, kbPaymentID, model.ErrOriginalTransactionNotFound)
		}
		if txType == valueobject.TransactionTypeCapture {
			return Capture{Prior: prior.Info()}, nil
		}
		return Void{Prior: prior.Info()}, nil

	case valueobject.TransactionTypeRefund:
		prior, err := b.resolver.FindRefundable(ctx, kbPaymentID, tenantID)
		if err != nil {
			return nil, err
		}
		if prior == nil {
			return nil, fmt.Errorf("refund of payment %s: no purchase or capture: %w", kbPaymentID, model.ErrOriginalTransactionNotFound)
		}
		return Refund{Prior: prior.Info()}, nil

	case valueobject.TransactionTypePurchase:
		return Purchase{}, nil

	case valueobject.TransactionTypeCredit:
		return Credit{}, nil

	default:
		return nil, fmt.Errorf("transaction type %q: %w", txType, model.ErrInvalidRequest)
	}
}

// Build assembles the gateway request for op.
func Build(op Operation, call PaymentCall) model.GatewayRequest {
	switch o := op.(type) {
	case Authorize:
		return buildPreAuth(call)
	case ReAuthorize:
		return buildReAuth(call, o.Prior)
	case Capture:
		return buildCompletion(call, o.Prior)
	case Purchase:
		return buildPurchase(call)
	case Void:
		return buildCorrection(call, o.Prior)
	case Credit:
		return buildIndependentRefund(call)
	case Refund:
		return buildRefund(call, o.Prior)
	default:
		panic(fmt.Sprintf("service: unknown operation %T", op))
	}
}

func buildPreAuth(call PaymentCall) model.GatewayRequest {
	return model.GatewayRequest{
		Kind:              model.RequestPreAuth,
		OrderID:           money.SafeIdentifier(call.KbTransactionID),
		CustID:            money.SafeIdentifier(call.KbAccountID),
		Amount:            money.GatewayAmount(call.Amount),
		PAN:               call.Properties.PAN(),
		ExpDate:           call.Properties.ExpDate(),
		Crypt:             call.Properties.Crypt(),
		DynamicDescriptor: descriptor(call),
		Avs:               call.Properties.AvsInfo(),
		Cvd:               call.Properties.CvdInfo(),
	}
}

func buildReAuth(call PaymentCall, prior model.TransactionInfo) model.GatewayRequest {
	return model.GatewayRequest{
		Kind:              model.RequestReAuth,
		OrderID:           money.SafeIdentifier(call.KbTransactionID),
		CustID:            money.SafeIdentifier(call.KbAccountID),
		Amount:            money.GatewayAmount(call.Amount),
		OrigOrderID:       originalOrderID(prior),
		TxnNumber:         prior.TxnNumber(),
		Crypt:             call.Properties.Crypt(),
		DynamicDescriptor: descriptor(call),
		Avs:               call.Properties.AvsInfo(),
		Cvd:               call.Properties.CvdInfo(),
	}
}

func buildCompletion(call PaymentCall, prior model.TransactionInfo) model.GatewayRequest {
	return model.GatewayRequest{
		Kind:              model.RequestCompletion,
		OrderID:           originalOrderID(prior),
		TxnNumber:         prior.TxnNumber(),
		Amount:            money.GatewayAmount(call.Amount),
		Crypt:             call.Properties.Crypt(),
		DynamicDescriptor: descriptor(call),
	}
}

func buildPurchase(call PaymentCall) model.GatewayRequest {
	req := buildPreAuth(call)
	req.Kind = model.RequestPurchase
	return req
}

func buildCorrection(call PaymentCall, prior model.TransactionInfo) model.GatewayRequest {
	return model.GatewayRequest{
		Kind:              model.RequestPurchaseCorrection,
		OrderID:           originalOrderID(prior),
		TxnNumber:         prior.TxnNumber(),
		Crypt:             call.Properties.Crypt(),
		DynamicDescriptor: descriptor(call),
	}
}

func buildIndependentRefund(call PaymentCall) model.GatewayRequest {
	return model.GatewayRequest{
		Kind:              model.RequestIndependentRefund,
		OrderID:           money.SafeIdentifier(call.KbTransactionID),
		CustID:            money.SafeIdentifier(call.KbAccountID),
		Amount:            money.GatewayAmount(call.Amount),
		PAN:               call.Properties.PAN(),
		ExpDate:           call.Properties.ExpDate(),
		Crypt:             call.Properties.Crypt(),
		DynamicDescriptor: descriptor(call),
	}
}

func buildRefund(call PaymentCall, prior model.TransactionInfo) model.GatewayRequest {
	return model.GatewayRequest{
		Kind:              model.RequestRefund,
		OrderID:           originalOrderID(prior),
		TxnNumber:         prior.TxnNumber(),
		Amount:            money.GatewayAmount(call.Amount),
		Crypt:             call.Properties.Crypt(),
		DynamicDescriptor: descriptor(call),
	}
}

// originalOrderID is the order id the prior request was sent with, which is
// always derived from its billing transaction id.
func originalOrderID(prior model.TransactionInfo) string {
	return money.SafeIdentifier(prior.KbTransactionID())
}

func descriptor(call PaymentCall) string {
	return call.Properties.DynamicDescriptor(money.SafeIdentifier(call.KbTransactionID))
}
