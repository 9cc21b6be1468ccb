// Package postgres is the pgx-backed alternative to the csvfile stores.
// Rows are read back in id order so the append-only semantics match the
// flat files.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"food-order/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountStore struct {
	pool *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

func (s *AccountStore) Find(ctx context.Context, identifier, secret string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE identifier = $1 AND secret = $2)`

	var ok bool
	if err := s.pool.QueryRow(ctx, query, identifier, secret).Scan(&ok); err != nil {
		return false, fmt.Errorf("find account %s: %w", identifier, err)
	}
	return ok, nil
}

func (s *AccountStore) Exists(ctx context.Context, identifier string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE identifier = $1)`

	var ok bool
	if err := s.pool.QueryRow(ctx, query, identifier).Scan(&ok); err != nil {
		return false, fmt.Errorf("check account %s: %w", identifier, err)
	}
	return ok, nil
}

func (s *AccountStore) Secret(ctx context.Context, identifier string) (string, bool, error) {
	const query = `SELECT secret FROM accounts WHERE identifier = $1 ORDER BY id LIMIT 1`

	var secret string
	err := s.pool.QueryRow(ctx, query, identifier).Scan(&secret)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query secret for %s: %w", identifier, err)
	}
	return secret, true, nil
}

func (s *AccountStore) Append(ctx context.Context, account models.Account) error {
	const query = `INSERT INTO accounts (identifier, secret) VALUES ($1, $2)`

	if _, err := s.pool.Exec(ctx, query, account.Identifier, account.Secret); err != nil {
		return fmt.Errorf("insert account %s: %w", account.Identifier, err)
	}
	return nil
}
