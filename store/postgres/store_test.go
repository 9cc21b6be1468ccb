package postgres

import (
	"context"
	"os"
	"testing"

	"food-order/db"
	"food-order/models"
	"food-order/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ store.AccountStore = (*AccountStore)(nil)
	_ store.OrderStore   = (*OrderStore)(nil)
)

// setupTestDB connects to TEST_DATABASE_URL and applies migrations.
// Tests are skipped when it is unset or in -short mode.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("skipping postgres integration test: TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.ApplyMigrations(ctx, pool, zerolog.Nop()))
	return pool
}

// uniqueID keeps parallel or repeated runs from seeing each other's rows.
func uniqueID(prefix string) string {
	return prefix + "-" + uuid.NewString() + "@example.com"
}

func TestAccountStore_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	s := NewAccountStore(pool)
	id := uniqueID("alice")

	exists, err := s.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Append(ctx, models.Account{Identifier: id, Secret: "pw"}))

	exists, err = s.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	ok, err := s.Find(ctx, id, "pw")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Find(ctx, id, "PW")
	require.NoError(t, err)
	assert.False(t, ok)

	secret, found, err := s.Secret(ctx, id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "pw", secret)

	_, found, err = s.Secret(ctx, uniqueID("nobody"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOrderStore_Integration(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	s := NewOrderStore(pool)
	alice, bob := uniqueID("alice"), uniqueID("bob")

	require.NoError(t, s.Append(ctx, models.Order{Identifier: alice, Summary: "Cheeseburger", Total: decimal.NewFromInt(5)}))
	require.NoError(t, s.Append(ctx, models.Order{Identifier: bob, Summary: "Cola", Total: decimal.RequireFromString("1.5")}))
	require.NoError(t, s.Append(ctx, models.Order{Identifier: alice, Summary: "Cola, Water", Total: decimal.RequireFromString("2.5")}))

	got, err := s.ListFor(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cheeseburger", got[0].Summary)
	assert.Equal(t, "$5.00", models.FormatMoney(got[0].Total))
	assert.Equal(t, "Cola, Water", got[1].Summary)
	assert.Equal(t, "$2.50", models.FormatMoney(got[1].Total))

	got, err = s.ListFor(ctx, uniqueID("nobody"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
