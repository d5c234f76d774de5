package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/killbill/killbill-moneris-plugin/internal/application/dto"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/port"
)

// AddPaymentMethod registers a payment method for an account.
type AddPaymentMethod struct {
	methods port.PaymentMethodRepository
	logger  *slog.Logger
}

func NewAddPaymentMethod(methods port.PaymentMethodRepository, logger *slog.Logger) *AddPaymentMethod {
	return &AddPaymentMethod{methods: methods, logger: logger}
}

func (uc *AddPaymentMethod) Execute(ctx context.Context, req dto.AddPaymentMethodRequest) (dto.PaymentMethodResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.PaymentMethodResponse{}, err
	}

	pm, err := model.NewPaymentMethod(req.KbAccountID, req.KbPaymentMethodID, req.ExternalPaymentMethodID, req.Properties, req.CallContext)
	if err != nil {
		return dto.PaymentMethodResponse{}, fmt.Errorf("%w: %w", model.ErrInvalidRequest, err)
	}

	if err := uc.methods.Create(ctx, pm); err != nil {
		return dto.PaymentMethodResponse{}, fmt.Errorf("failed to save payment method: %w", err)
	}

	uc.logger.Info("payment method added",
		"kb_account_id", req.KbAccountID,
		"kb_payment_method_id", req.KbPaymentMethodID,
		"set_default", req.SetDefault,
	)
	return toPaymentMethodResponse(pm), nil
}

// DeletePaymentMethod soft-deletes a payment method.
type DeletePaymentMethod struct {
	methods port.PaymentMethodRepository
	logger  *slog.Logger
}

func NewDeletePaymentMethod(methods port.PaymentMethodRepository, logger *slog.Logger) *DeletePaymentMethod {
	return &DeletePaymentMethod{methods: methods, logger: logger}
}

func (uc *DeletePaymentMethod) Execute(ctx context.Context, req dto.DeletePaymentMethodRequest) error {
	if err := dto.Validate(req); err != nil {
		return err
	}
	if err := requireTenant(req.CallContext.TenantID); err != nil {
		return err
	}

	if err := uc.methods.SoftDelete(ctx, req.KbPaymentMethodID, req.CallContext); err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	uc.logger.Info("payment method deleted", "kb_payment_method_id", req.KbPaymentMethodID)
	return nil
}

// GetPaymentMethodDetail loads one live payment method.
type GetPaymentMethodDetail struct {
	methods port.PaymentMethodRepository
}

func NewGetPaymentMethodDetail(methods port.PaymentMethodRepository) *GetPaymentMethodDetail {
	return &GetPaymentMethodDetail{methods: methods}
}

// Execute returns nil when the payment method is unknown or deleted.
func (uc *GetPaymentMethodDetail) Execute(ctx context.Context, req dto.GetPaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	pm, err := uc.methods.FindByID(ctx, req.KbPaymentMethodID, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	if pm == nil {
		return nil, nil
	}

	resp := toPaymentMethodResponse(*pm)
	return &resp, nil
}

// GetPaymentMethods lists an account's live payment methods.
type GetPaymentMethods struct {
	methods port.PaymentMethodRepository
}

func NewGetPaymentMethods(methods port.PaymentMethodRepository) *GetPaymentMethods {
	return &GetPaymentMethods{methods: methods}
}

func (uc *GetPaymentMethods) Execute(ctx context.Context, req dto.ListPaymentMethodsRequest) ([]dto.PaymentMethodResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	methods, err := uc.methods.ListByAccount(ctx, req.KbAccountID, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	resp := make([]dto.PaymentMethodResponse, 0, len(methods))
	for _, pm := range methods {
		resp = append(resp, toPaymentMethodResponse(pm))
	}
	return resp, nil
}

// SearchPaymentMethods searches stored payment methods. Search is not
// implemented by the store yet, so every result is an empty page.
type SearchPaymentMethods struct {
	methods port.PaymentMethodRepository
}

func NewSearchPaymentMethods(methods port.PaymentMethodRepository) *SearchPaymentMethods {
	return &SearchPaymentMethods{methods: methods}
}

func (uc *SearchPaymentMethods) Execute(ctx context.Context, req dto.SearchRequest) (dto.PaymentMethodPageResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.PaymentMethodPageResponse{}, err
	}

	page, err := uc.methods.Search(ctx, req.SearchKey, req.Offset, req.Limit, req.TenantID)
	if err != nil {
		return dto.PaymentMethodPageResponse{}, fmt.Errorf("failed to search payment methods: %w", err)
	}

	items := make([]dto.PaymentMethodResponse, 0, len(page.Items))
	for _, pm := range page.Items {
		items = append(items, toPaymentMethodResponse(pm))
	}
	return dto.PaymentMethodPageResponse{
		Items:      items,
		Offset:     page.Offset,
		TotalCount: page.TotalCount,
	}, nil
}

// SetDefaultPaymentMethod accepts the call and changes nothing: the gateway
// has no default payment method.
type SetDefaultPaymentMethod struct {
	logger *slog.Logger
}

func NewSetDefaultPaymentMethod(logger *slog.Logger) *SetDefaultPaymentMethod {
	return &SetDefaultPaymentMethod{logger: logger}
}

func (uc *SetDefaultPaymentMethod) Execute(_ context.Context, req dto.SetDefaultPaymentMethodRequest) error {
	uc.logger.Debug("set default payment method ignored", "kb_payment_method_id", req.KbPaymentMethodID)
	return nil
}

// ResetPaymentMethods accepts the call and changes nothing.
type ResetPaymentMethods struct {
	logger *slog.Logger
}

func NewResetPaymentMethods(logger *slog.Logger) *ResetPaymentMethods {
	return &ResetPaymentMethods{logger: logger}
}

func (uc *ResetPaymentMethods) Execute(_ context.Context, req dto.ResetPaymentMethodsRequest) error {
	uc.logger.Debug("reset payment methods ignored",
		"kb_account_id", req.KbAccountID,
		"payment_methods", len(req.PaymentMethods),
	)
	return nil
}
