package db

import (
	"strings"
	"testing"

	"food-order/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	got := ConnString(config.DBConfig{
		Host: "db.local", Port: 5433, User: "shop", Password: "pw", Database: "orders",
	})
	assert.Equal(t, "postgres://shop:pw@db.local:5433/orders", got)
}

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "migrations/001_accounts_orders.sql", names[0])

	sqlBytes, err := migrationsFS.ReadFile(names[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(sqlBytes), "CREATE TABLE IF NOT EXISTS orders"))
}
