//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/internal/infrastructure/postgres"
	"github.com/killbill/killbill-moneris-plugin/pkg/testutil"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pg := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pg.Cleanup(t) })

	pg.RunMigrations(t, postgres.Migrations, postgres.MigrationsDir)

	return pg.Pool
}

func callContext(t *testing.T, tenantID uuid.UUID, at time.Time) valueobject.CallContext {
	t.Helper()
	cc, err := valueobject.NewCallContext(tenantID, "integration", at)
	require.NoError(t, err)
	return cc
}

func receipt(transType, txnNumber string) model.Receipt {
	return model.Receipt{
		ReceiptID:    testutil.Ptr("order-" + txnNumber),
		ReferenceNum: testutil.Ptr("660123450010690030"),
		ResponseCode: testutil.Ptr("027"),
		ISO:          testutil.Ptr("01"),
		AuthCode:     testutil.Ptr("123456"),
		TransTime:    testutil.Ptr(testutil.TestTransTime),
		TransDate:    testutil.Ptr(testutil.TestTransDate),
		TransType:    testutil.Ptr(transType),
		Complete:     testutil.Ptr("true"),
		Message:      testutil.Ptr("APPROVED"),
		TransAmount:  testutil.Ptr("10.00"),
		CardType:     testutil.Ptr("V"),
		TxnNumber:    testutil.Ptr(txnNumber),
		TimedOut:     testutil.Ptr("false"),
		Ticket:       testutil.Ptr(""),
		IsVisaDebit:  testutil.Ptr("false"),
	}
}

func newRecord(t *testing.T, tenantID uuid.UUID, billingType valueobject.TransactionType, rc model.Receipt, at time.Time) model.TransactionRecord {
	t.Helper()
	amount := decimal.RequireFromString("10.00")
	info := model.NewTransactionInfo(testutil.TestPaymentID, uuid.New(), "CAD", rc)
	return model.NewTransactionRecord(info, testutil.TestAccountID, testutil.TestPaymentMethodID,
		billingType, &amount, callContext(t, tenantID, at))
}

func TestTransactionRepo(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewTransactionRepo(pool)
	ctx := context.Background()
	start := time.Now().UTC()

	auth := newRecord(t, testutil.TestTenantID, valueobject.TransactionTypeAuthorize, receipt("01", "1-0_11"), start)
	capture := newRecord(t, testutil.TestTenantID, valueobject.TransactionTypeCapture, receipt("02", "2-0_11"), start.Add(time.Second))

	t.Run("round trip preserves every field", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, auth))

		records, err := repo.ListByPayment(ctx, testutil.TestPaymentID, testutil.TestTenantID)
		require.NoError(t, err)
		require.Len(t, records, 1)

		got := records[0]
		assert.True(t, auth.Info().Equal(got.Info()))
		assert.Positive(t, got.RecordID())
		assert.Equal(t, auth.KbAccountID(), got.KbAccountID())
		assert.Equal(t, auth.KbPaymentMethodID(), got.KbPaymentMethodID())
		assert.Equal(t, valueobject.TransactionTypeAuthorize, got.BillingType())
		require.NotNil(t, got.Amount())
		assert.True(t, auth.Amount().Equal(*got.Amount()))
		assert.Equal(t, testutil.TestTenantID, got.TenantID())
		assert.Equal(t, "integration", got.CreatedBy())
		testutil.AssertSameInstant(t, auth.CreatedAt(), got.CreatedAt())
		require.NotNil(t, got.Info().EffectiveDate())
		assert.True(t, testutil.TestEffectiveDate.Equal(*got.Info().EffectiveDate()))
	})

	t.Run("later rows are listed last", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, capture))

		records, err := repo.ListByPayment(ctx, testutil.TestPaymentID, testutil.TestTenantID)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, valueobject.TransactionTypeAuthorize, records[0].EffectiveType())
		assert.Equal(t, valueobject.TransactionTypeCapture, records[1].EffectiveType())
		assert.True(t, capture.Info().Equal(records[1].Info()))
	})

	t.Run("other tenants see nothing", func(t *testing.T) {
		records, err := repo.ListByPayment(ctx, testutil.TestPaymentID, testutil.TestOtherTenantID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("void keeps a null amount and currency", func(t *testing.T) {
		paymentID := uuid.New()
		info := model.NewTransactionInfo(paymentID, uuid.New(), "", model.Receipt{ResponseCode: testutil.Ptr("abc")})
		void := model.NewTransactionRecord(info, testutil.TestAccountID, testutil.TestPaymentMethodID,
			valueobject.TransactionTypeVoid, nil, callContext(t, testutil.TestTenantID, start))
		require.NoError(t, repo.Create(ctx, void))

		records, err := repo.ListByPayment(ctx, paymentID, testutil.TestTenantID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Nil(t, records[0].Amount())
		assert.Equal(t, "", records[0].Info().Currency())
		assert.Equal(t, valueobject.PluginStatusUndefined, records[0].Info().Status())
		assert.True(t, info.Equal(records[0].Info()))
	})

	t.Run("search returns an empty page", func(t *testing.T) {
		page, err := repo.Search(ctx, "anything", 5, 10, testutil.TestTenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Offset)
		assert.Empty(t, page.Items)
	})
}

func TestPaymentMethodRepo(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewPaymentMethodRepo(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	props := []valueobject.PluginProperty{
		{Key: "token", Value: testutil.Ptr("tok_123")},
		{Key: "flag"},
	}
	withCard := append([]valueobject.PluginProperty{
		{Key: valueobject.PropertyPAN, Value: testutil.Ptr("4242424242424242")},
	}, props...)
	pm, err := model.NewPaymentMethod(testutil.TestAccountID, testutil.TestPaymentMethodID, "ext-1", withCard,
		callContext(t, testutil.TestTenantID, now))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, pm))

	t.Run("get returns the stored payment method", func(t *testing.T) {
		got, err := repo.FindByID(ctx, testutil.TestPaymentMethodID, testutil.TestTenantID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, testutil.TestAccountID, got.KbAccountID())
		assert.Equal(t, "ext-1", got.ExternalPaymentMethodID())
		assert.False(t, got.IsDeleted())
		assert.False(t, got.IsDefault())
		assert.Equal(t, props, got.Properties())
	})

	t.Run("card data never reaches the table", func(t *testing.T) {
		var raw string
		err := pool.QueryRow(ctx, `SELECT properties::text FROM moneris_payment_methods WHERE kb_payment_method_id = $1`,
			testutil.TestPaymentMethodID).Scan(&raw)
		require.NoError(t, err)
		assert.NotContains(t, raw, "4242424242424242")
		assert.NotContains(t, raw, `"pan"`)
	})

	t.Run("other tenants cannot see or delete it", func(t *testing.T) {
		got, err := repo.FindByID(ctx, testutil.TestPaymentMethodID, testutil.TestOtherTenantID)
		require.NoError(t, err)
		assert.Nil(t, got)

		require.NoError(t, repo.SoftDelete(ctx, testutil.TestPaymentMethodID, callContext(t, testutil.TestOtherTenantID, now)))

		list, err := repo.ListByAccount(ctx, testutil.TestAccountID, testutil.TestTenantID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("deleted payment methods are hidden", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(ctx, testutil.TestPaymentMethodID, callContext(t, testutil.TestTenantID, now.Add(time.Second))))

		got, err := repo.FindByID(ctx, testutil.TestPaymentMethodID, testutil.TestTenantID)
		require.NoError(t, err)
		assert.Nil(t, got)

		list, err := repo.ListByAccount(ctx, testutil.TestAccountID, testutil.TestTenantID)
		require.NoError(t, err)
		assert.Empty(t, list)

		var deleted bool
		err = pool.QueryRow(ctx, `SELECT is_deleted FROM moneris_payment_methods WHERE kb_payment_method_id = $1`,
			testutil.TestPaymentMethodID).Scan(&deleted)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("search returns an empty page", func(t *testing.T) {
		page, err := repo.Search(ctx, "ext", 0, 10, testutil.TestTenantID)
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
	})
}
