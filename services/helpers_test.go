package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"food-order/models"
	"food-order/store/csvfile"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc          *Service
	accounts     *csvfile.AccountStore
	orders       *csvfile.OrderStore
	accountsPath string
	ordersPath   string
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		accountsPath: filepath.Join(dir, "credentials.csv"),
		ordersPath:   filepath.Join(dir, "order_history.csv"),
	}
	var err error
	f.accounts, err = csvfile.NewAccountStore(f.accountsPath)
	require.NoError(t, err)
	f.orders, err = csvfile.NewOrderStore(f.ordersPath)
	require.NoError(t, err)
	f.svc = New(f.accounts, f.orders, opts)
	return f
}

// loggedIn signs identifier up and returns its session.
func (f *fixture) loggedIn(t *testing.T, identifier string) *Session {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.svc.SubmitSignup(ctx, identifier, "pw"))
	sess, err := f.svc.SubmitLogin(ctx, identifier, "pw")
	require.NoError(t, err)
	return sess
}

var errDisk = errors.New("disk on fire")

// brokenStore fails every call.
type brokenStore struct{}

func (brokenStore) Find(context.Context, string, string) (bool, error) { return false, errDisk }
func (brokenStore) Exists(context.Context, string) (bool, error)       { return false, errDisk }
func (brokenStore) Secret(context.Context, string) (string, bool, error) {
	return "", false, errDisk
}
func (brokenStore) Append(context.Context, models.Account) error { return errDisk }

type brokenOrders struct{}

func (brokenOrders) Append(context.Context, models.Order) error { return errDisk }
func (brokenOrders) ListFor(context.Context, string) ([]models.Order, error) {
	return nil, errDisk
}
