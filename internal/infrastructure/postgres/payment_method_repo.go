package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/port"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	pgpkg "github.com/killbill/killbill-moneris-plugin/pkg/postgres"
)

// Compile-time interface check.
var _ port.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

// PaymentMethodRepo implements PaymentMethodRepository using PostgreSQL.
type PaymentMethodRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentMethodRepo(pool *pgxpool.Pool) *PaymentMethodRepo {
	return &PaymentMethodRepo{pool: pool}
}

const paymentMethodColumns = `
	record_id, kb_account_id, kb_payment_method_id, external_payment_method_id, is_deleted,
	properties, created_by, created_date, updated_by, updated_date, kb_tenant_id`

func (r *PaymentMethodRepo) Create(ctx context.Context, pm model.PaymentMethod) error {
	props := pm.Properties()
	if props == nil {
		props = []valueobject.PluginProperty{}
	}
	payload, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("marshal payment method properties: %w", err)
	}

	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO moneris_payment_methods (
				kb_account_id, kb_payment_method_id, external_payment_method_id, is_deleted,
				properties, created_by, created_date, updated_by, updated_date, kb_tenant_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			pm.KbAccountID(), pm.KbPaymentMethodID(), nullString(pm.ExternalPaymentMethodID()), pm.IsDeleted(),
			payload, pm.CreatedBy(), pm.CreatedAt(), pm.UpdatedBy(), pm.UpdatedAt(), pm.TenantID(),
		)
		if err != nil {
			return fmt.Errorf("insert moneris payment method: %w", err)
		}
		return nil
	})
}

// SoftDelete flags every live row of the payment method in the caller's
// tenant. Deleting an unknown payment method is not an error.
func (r *PaymentMethodRepo) SoftDelete(ctx context.Context, kbPaymentMethodID uuid.UUID, callCtx valueobject.CallContext) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE moneris_payment_methods
			SET is_deleted = TRUE, updated_by = $1, updated_date = $2
			WHERE kb_payment_method_id = $3 AND kb_tenant_id = $4 AND NOT is_deleted`,
			callCtx.UserName, callCtx.UpdatedDate, kbPaymentMethodID, callCtx.TenantID,
		)
		if err != nil {
			return fmt.Errorf("soft delete moneris payment method: %w", err)
		}
		return nil
	})
}

func (r *PaymentMethodRepo) FindByID(ctx context.Context, kbPaymentMethodID, tenantID uuid.UUID) (*model.PaymentMethod, error) {
	var found *model.PaymentMethod

	err := pgpkg.WithReadOnlyTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+paymentMethodColumns+`
			FROM moneris_payment_methods
			WHERE kb_payment_method_id = $1 AND kb_tenant_id = $2 AND NOT is_deleted
			ORDER BY record_id DESC
			LIMIT 1`,
			kbPaymentMethodID, tenantID,
		)
		if err != nil {
			return fmt.Errorf("query moneris payment method: %w", err)
		}

		pm, err := pgx.CollectOneRow(rows, scanPaymentMethod)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan moneris payment method: %w", err)
		}
		found = &pm
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func (r *PaymentMethodRepo) ListByAccount(ctx context.Context, kbAccountID, tenantID uuid.UUID) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod

	err := pgpkg.WithReadOnlyTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+paymentMethodColumns+`
			FROM moneris_payment_methods
			WHERE kb_account_id = $1 AND kb_tenant_id = $2 AND NOT is_deleted
			ORDER BY created_date ASC, updated_date ASC, record_id ASC`,
			kbAccountID, tenantID,
		)
		if err != nil {
			return fmt.Errorf("query moneris payment methods: %w", err)
		}

		methods, err = pgx.CollectRows(rows, scanPaymentMethod)
		if err != nil {
			return fmt.Errorf("scan moneris payment methods: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return methods, nil
}

// Search is reserved for a future search API.
func (r *PaymentMethodRepo) Search(_ context.Context, _ string, offset, _ int64, _ uuid.UUID) (model.Page[model.PaymentMethod], error) {
	return model.EmptyPage[model.PaymentMethod](offset), nil
}

func scanPaymentMethod(row pgx.CollectableRow) (model.PaymentMethod, error) {
	var (
		recordID             int64
		accountID, methodID  uuid.UUID
		externalID           *string
		isDeleted            bool
		payload              []byte
		createdBy, updatedBy string
		createdAt, updatedAt time.Time
		tenantID             uuid.UUID
	)

	err := row.Scan(
		&recordID, &accountID, &methodID, &externalID, &isDeleted,
		&payload, &createdBy, &createdAt, &updatedBy, &updatedAt, &tenantID,
	)
	if err != nil {
		return model.PaymentMethod{}, err
	}

	var props []valueobject.PluginProperty
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &props); err != nil {
			return model.PaymentMethod{}, fmt.Errorf("unmarshal payment method properties: %w", err)
		}
	}

	var ext string
	if externalID != nil {
		ext = *externalID
	}

	return model.ReconstructPaymentMethod(
		recordID, accountID, methodID, ext, isDeleted, props,
		tenantID, createdBy, createdAt, updatedBy, updatedAt,
	), nil
}
