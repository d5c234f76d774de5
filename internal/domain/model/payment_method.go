package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
)

// PaymentMethod is a payment method the billing platform registered with the
// plugin. Rows are soft-deleted only.
type PaymentMethod struct {
	recordID                int64
	kbAccountID             uuid.UUID
	kbPaymentMethodID       uuid.UUID
	externalPaymentMethodID string
	isDeleted               bool
	properties              []valueobject.PluginProperty
	tenantID                uuid.UUID
	createdBy               string
	createdAt               time.Time
	updatedBy               string
	updatedAt               time.Time
}

// NewPaymentMethod creates a live payment method on behalf of callCtx.
func NewPaymentMethod(
	kbAccountID, kbPaymentMethodID uuid.UUID,
	externalPaymentMethodID string,
	properties []valueobject.PluginProperty,
	callCtx valueobject.CallContext,
) (PaymentMethod, error) {
	if kbAccountID == uuid.Nil {
		return PaymentMethod{}, fmt.Errorf("account ID is required")
	}
	if kbPaymentMethodID == uuid.Nil {
		return PaymentMethod{}, fmt.Errorf("payment method ID is required")
	}
	if callCtx.TenantID == uuid.Nil {
		return PaymentMethod{}, fmt.Errorf("tenant ID is required")
	}

	return PaymentMethod{
		kbAccountID:             kbAccountID,
		kbPaymentMethodID:       kbPaymentMethodID,
		externalPaymentMethodID: externalPaymentMethodID,
		properties:              valueobject.WithoutCardData(properties),
		tenantID:                callCtx.TenantID,
		createdBy:               callCtx.UserName,
		createdAt:               callCtx.CreatedDate,
		updatedBy:               callCtx.UserName,
		updatedAt:               callCtx.CreatedDate,
	}, nil
}

// ReconstructPaymentMethod recreates a PaymentMethod from persistence.
func ReconstructPaymentMethod(
	recordID int64,
	kbAccountID, kbPaymentMethodID uuid.UUID,
	externalPaymentMethodID string,
	isDeleted bool,
	properties []valueobject.PluginProperty,
	tenantID uuid.UUID,
	createdBy string, createdAt time.Time,
	updatedBy string, updatedAt time.Time,
) PaymentMethod {
	return PaymentMethod{
		recordID:                recordID,
		kbAccountID:             kbAccountID,
		kbPaymentMethodID:       kbPaymentMethodID,
		externalPaymentMethodID: externalPaymentMethodID,
		isDeleted:               isDeleted,
		properties:              properties,
		tenantID:                tenantID,
		createdBy:               createdBy,
		createdAt:               createdAt,
		updatedBy:               updatedBy,
		updatedAt:               updatedAt,
	}
}

func (p PaymentMethod) RecordID() int64                          { return p.recordID }
func (p PaymentMethod) KbAccountID() uuid.UUID                   { return p.kbAccountID }
func (p PaymentMethod) KbPaymentMethodID() uuid.UUID             { return p.kbPaymentMethodID }
func (p PaymentMethod) ExternalPaymentMethodID() string          { return p.externalPaymentMethodID }
func (p PaymentMethod) IsDeleted() bool                          { return p.isDeleted }
func (p PaymentMethod) Properties() []valueobject.PluginProperty { return p.properties }
func (p PaymentMethod) TenantID() uuid.UUID                      { return p.tenantID }
func (p PaymentMethod) CreatedBy() string                        { return p.createdBy }
func (p PaymentMethod) CreatedAt() time.Time                     { return p.createdAt }
func (p PaymentMethod) UpdatedBy() string                        { return p.updatedBy }
func (p PaymentMethod) UpdatedAt() time.Time                     { return p.updatedAt }

// IsDefault is always false: the gateway keeps no notion of a default card.
func (p PaymentMethod) IsDefault() bool { return false }
