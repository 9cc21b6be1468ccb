// Package store declares the persistence contracts for accounts and
// order history. Records are kept as ordered, append-only sequences;
// backends live in the csvfile and postgres subpackages.
package store

import (
	"context"
	"errors"

	"food-order/models"
)

// ErrNoHistory is returned by OrderStore.ListFor when the backing history
// does not exist at all, as opposed to existing with no matching orders.
var ErrNoHistory = errors.New("no order history available")

// AccountStore is an append-only list of accounts scanned linearly.
type AccountStore interface {
	// Find reports whether a record matches both identifier and secret exactly.
	Find(ctx context.Context, identifier, secret string) (bool, error)
	// Exists reports whether any record carries identifier.
	Exists(ctx context.Context, identifier string) (bool, error)
	// Secret returns the stored secret of the first record for identifier.
	Secret(ctx context.Context, identifier string) (string, bool, error)
	// Append writes a record. It does not check uniqueness.
	Append(ctx context.Context, account models.Account) error
}

// OrderStore is an append-only list of completed orders.
type OrderStore interface {
	Append(ctx context.Context, order models.Order) error
	// ListFor returns the orders of identifier in insertion order.
	ListFor(ctx context.Context, identifier string) ([]models.Order, error)
}
