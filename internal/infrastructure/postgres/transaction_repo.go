package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/port"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	pgpkg "github.com/killbill/killbill-moneris-plugin/pkg/postgres"
)

// Compile-time interface check.
var _ port.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implements TransactionRepository using PostgreSQL.
type TransactionRepo struct {
	pool *pgxpool.Pool
}

func NewTransactionRepo(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const transactionColumns = `
	record_id, kb_account_id, kb_payment_id, kb_payment_transaction_id, kb_payment_method_id,
	transaction_type, amount, currency,
	receipt_id, receipt_reference_num, receipt_response_code, receipt_iso, receipt_auth_code,
	receipt_trans_time, receipt_trans_date, receipt_trans_type, receipt_complete, receipt_message,
	receipt_trans_amount, receipt_card_type, receipt_txn_number, receipt_timed_out, receipt_ticket,
	receipt_recur_success, receipt_avs_result_code, receipt_cvd_result_code, receipt_cavv_result_code,
	receipt_status_code, receipt_status_message, receipt_is_visa_debit,
	created_by, created_date, updated_by, updated_date, kb_tenant_id`

func (r *TransactionRepo) Create(ctx context.Context, record model.TransactionRecord) error {
	info := record.Info()
	rc := info.Receipt()

	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO moneris_transactions (
				kb_account_id, kb_payment_id, kb_payment_transaction_id, kb_payment_method_id,
				transaction_type, amount, currency,
				transaction_amount, effective_date, status,
				gateway_error, gateway_error_code, first_payment_reference_id, second_payment_reference_id,
				receipt_id, receipt_reference_num, receipt_response_code, receipt_iso, receipt_auth_code,
				receipt_trans_time, receipt_trans_date, receipt_trans_type, receipt_complete, receipt_message,
				receipt_trans_amount, receipt_card_type, receipt_txn_number, receipt_timed_out, receipt_ticket,
				receipt_recur_success, receipt_avs_result_code, receipt_cvd_result_code, receipt_cavv_result_code,
				receipt_status_code, receipt_status_message, receipt_is_visa_debit,
				created_by, created_date, updated_by, updated_date, kb_tenant_id
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
				$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
				$31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41
			)`,
			record.KbAccountID(), info.KbPaymentID(), info.KbTransactionID(), record.KbPaymentMethodID(),
			record.BillingType().String(), record.Amount(), nullString(info.Currency()),
			info.Amount(), info.EffectiveDate(), info.Status().String(),
			info.GatewayError(), info.GatewayErrorCode(), info.FirstPaymentReferenceID(), info.SecondPaymentReferenceID(),
			rc.ReceiptID, rc.ReferenceNum, rc.ResponseCode, rc.ISO, rc.AuthCode,
			rc.TransTime, rc.TransDate, rc.TransType, rc.Complete, rc.Message,
			rc.TransAmount, rc.CardType, rc.TxnNumber, rc.TimedOut, rc.Ticket,
			rc.RecurSuccess, rc.AvsResultCode, rc.CvdResultCode, rc.CavvResultCode,
			rc.StatusCode, rc.StatusMessage, rc.IsVisaDebit,
			record.CreatedBy(), record.CreatedAt(), record.UpdatedBy(), record.UpdatedAt(), record.TenantID(),
		)
		if err != nil {
			return fmt.Errorf("insert moneris transaction: %w", err)
		}
		return nil
	})
}

func (r *TransactionRepo) ListByPayment(ctx context.Context, kbPaymentID, tenantID uuid.UUID) ([]model.TransactionRecord, error) {
	var records []model.TransactionRecord

	err := pgpkg.WithReadOnlyTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+transactionColumns+`
			FROM moneris_transactions
			WHERE kb_payment_id = $1 AND kb_tenant_id = $2
			ORDER BY created_date ASC, updated_date ASC, record_id ASC`,
			kbPaymentID, tenantID,
		)
		if err != nil {
			return fmt.Errorf("query moneris transactions: %w", err)
		}

		records, err = pgx.CollectRows(rows, scanTransaction)
		if err != nil {
			return fmt.Errorf("scan moneris transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Search is reserved for a future search API.
func (r *TransactionRepo) Search(_ context.Context, _ string, offset, _ int64, _ uuid.UUID) (model.Page[model.TransactionInfo], error) {
	return model.EmptyPage[model.TransactionInfo](offset), nil
}

func scanTransaction(row pgx.CollectableRow) (model.TransactionRecord, error) {
	var (
		recordID                int64
		accountID, paymentID    uuid.UUID
		transactionID, methodID uuid.UUID
		billingType             string
		amount                  decimal.NullDecimal
		currency                *string
		rc                      model.Receipt
		createdBy, updatedBy    string
		createdAt, updatedAt    time.Time
		tenantID                uuid.UUID
	)

	err := row.Scan(
		&recordID, &accountID, &paymentID, &transactionID, &methodID,
		&billingType, &amount, &currency,
		&rc.ReceiptID, &rc.ReferenceNum, &rc.ResponseCode, &rc.ISO, &rc.AuthCode,
		&rc.TransTime, &rc.TransDate, &rc.TransType, &rc.Complete, &rc.Message,
		&rc.TransAmount, &rc.CardType, &rc.TxnNumber, &rc.TimedOut, &rc.Ticket,
		&rc.RecurSuccess, &rc.AvsResultCode, &rc.CvdResultCode, &rc.CavvResultCode,
		&rc.StatusCode, &rc.StatusMessage, &rc.IsVisaDebit,
		&createdBy, &createdAt, &updatedBy, &updatedAt, &tenantID,
	)
	if err != nil {
		return model.TransactionRecord{}, err
	}

	txType, err := valueobject.NewTransactionType(billingType)
	if err != nil {
		txType = valueobject.TransactionTypeUnknown
	}

	var amt *decimal.Decimal
	if amount.Valid {
		amt = &amount.Decimal
	}

	var cur string
	if currency != nil {
		cur = *currency
	}

	info := model.NewTransactionInfo(paymentID, transactionID, cur, rc)
	return model.ReconstructTransactionRecord(
		recordID, info, accountID, methodID, txType, amt,
		tenantID, createdBy, createdAt, updatedBy, updatedAt,
	), nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
