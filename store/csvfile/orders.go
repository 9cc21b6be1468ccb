package csvfile

import (
	"context"
	"fmt"
	"sync"

	"food-order/models"
	"food-order/store"
)

// OrderStore keeps [identifier, summary, "$total"] records in a CSV file.
type OrderStore struct {
	path string
	mu   sync.Mutex
}

// NewOrderStore touches path before returning the store.
func NewOrderStore(path string) (*OrderStore, error) {
	if err := Touch(path); err != nil {
		return nil, err
	}
	return &OrderStore{path: path}, nil
}

func (s *OrderStore) Append(ctx context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendRecord(s.path, []string{order.Identifier, order.Summary, models.FormatMoney(order.Total)})
}

// ListFor returns store.ErrNoHistory if the history file has been removed
// since startup.
func (s *OrderStore) ListFor(ctx context.Context, identifier string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := readRecords(s.path)
	if err != nil {
		if isNotExist(err) {
			return nil, store.ErrNoHistory
		}
		return nil, err
	}
	var orders []models.Order
	for i, rec := range records {
		if len(rec) < 3 || rec[0] != identifier {
			continue
		}
		total, err := models.ParseMoney(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", s.path, i+1, err)
		}
		orders = append(orders, models.Order{Identifier: rec[0], Summary: rec[1], Total: total})
	}
	return orders, nil
}
