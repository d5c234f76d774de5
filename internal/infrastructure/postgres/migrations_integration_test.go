//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/valueobject"
	"github.com/killbill/killbill-moneris-plugin/internal/infrastructure/postgres"
	pgpkg "github.com/killbill/killbill-moneris-plugin/pkg/postgres"
	"github.com/killbill/killbill-moneris-plugin/pkg/testutil"
)

func tableExists(t *testing.T, pc *testutil.PostgresContainer, table string) bool {
	t.Helper()
	var name *string
	err := pc.Pool.QueryRow(context.Background(), "SELECT to_regclass($1)::text", "public."+table).Scan(&name)
	require.NoError(t, err)
	return name != nil
}

func TestMigrations_DownAndUp(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pg.Cleanup(t) })

	pg.RunMigrations(t, postgres.Migrations, postgres.MigrationsDir)
	assert.True(t, tableExists(t, pg, "moneris_transactions"))
	assert.True(t, tableExists(t, pg, "moneris_payment_methods"))

	require.NoError(t, pgpkg.RunMigrationsDown(pg.DSN, postgres.Migrations, postgres.MigrationsDir))
	assert.False(t, tableExists(t, pg, "moneris_transactions"))
	assert.False(t, tableExists(t, pg, "moneris_payment_methods"))

	pg.RunMigrations(t, postgres.Migrations, postgres.MigrationsDir)
	assert.True(t, tableExists(t, pg, "moneris_transactions"))
}

func TestTransactionRepo_TruncateResetsHistory(t *testing.T) {
	ctx := context.Background()
	pg := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pg.Cleanup(t) })
	pg.RunMigrations(t, postgres.Migrations, postgres.MigrationsDir)

	repo := postgres.NewTransactionRepo(pg.Pool)
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	record := newRecord(t, testutil.TestTenantID, valueobject.TransactionTypePurchase, receipt("00", "1-0-1"), at)
	require.NoError(t, repo.Create(ctx, record))

	got, err := repo.ListByPayment(ctx, testutil.TestPaymentID, testutil.TestTenantID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	pg.Truncate(t, "moneris_transactions")

	got, err = repo.ListByPayment(ctx, testutil.TestPaymentID, testutil.TestTenantID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
