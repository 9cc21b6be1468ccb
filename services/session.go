package services

import (
	"context"
	"fmt"
	"strings"

	"food-order/models"
	"food-order/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Session is one logged-in customer's ordering state. It is not safe for
// concurrent use; front-ends serving several users keep one per user.
type Session struct {
	id         string
	identifier string
	menu       *Menu
	orders     store.OrderStore
	log        zerolog.Logger

	lines []models.OrderLine
	total decimal.Decimal
}

func newSession(identifier string, menu *Menu, orders store.OrderStore, log zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:         id,
		identifier: identifier,
		menu:       menu,
		orders:     orders,
		log:        log.With().Str("session", id).Str("identifier", identifier).Logger(),
		total:      decimal.Zero,
	}
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Identifier() string { return s.identifier }
func (s *Session) Menu() *Menu        { return s.menu }

// Lines returns a copy of the current selection.
func (s *Session) Lines() []models.OrderLine {
	return append([]models.OrderLine(nil), s.lines...)
}

// Total is the running sum of the selected prices.
func (s *Session) Total() decimal.Decimal {
	return s.total
}

// AddItem selects the menu item with the given number.
func (s *Session) AddItem(number int) (models.OrderLine, error) {
	item, err := s.menu.Item(number)
	if err != nil {
		return models.OrderLine{}, err
	}
	return s.Add(item), nil
}

func (s *Session) Add(item models.MenuItem) models.OrderLine {
	line := models.OrderLine{Name: item.Name, Price: item.Price}
	s.lines = append(s.lines, line)
	s.total = s.total.Add(item.Price)
	s.log.Debug().Str("item", item.Name).Str("total", s.total.StringFixed(2)).Msg("item added")
	return line
}

// RemoveItem drops the line at index (0-based). Lines are addressed by
// position, so identical items added twice stay distinguishable.
func (s *Session) RemoveItem(index int) (models.OrderLine, error) {
	if index < 0 || index >= len(s.lines) {
		return models.OrderLine{}, fmt.Errorf("%w: %d", ErrNoSuchLine, index+1)
	}
	line := s.lines[index]
	s.lines = append(s.lines[:index:index], s.lines[index+1:]...)
	s.total = s.total.Sub(line.Price)
	s.log.Debug().Str("item", line.Name).Str("total", s.total.StringFixed(2)).Msg("item removed")
	return line, nil
}

// Clear empties the selection and resets the total.
func (s *Session) Clear() {
	s.lines = nil
	s.total = decimal.Zero
}

// CompleteOrder persists the selection as one order and clears it. The
// selection is left untouched when nothing is selected or the write fails.
func (s *Session) CompleteOrder(ctx context.Context) (models.Order, error) {
	if len(s.lines) == 0 {
		return models.Order{}, ErrEmptyOrder
	}
	names := make([]string, len(s.lines))
	for i, l := range s.lines {
		names[i] = l.Name
	}
	order := models.Order{
		Identifier: s.identifier,
		Summary:    strings.Join(names, ", "),
		Total:      s.total,
	}
	if err := s.orders.Append(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("complete order: %w", err)
	}
	s.log.Info().Int("items", len(s.lines)).Str("total", models.FormatMoney(order.Total)).Msg("order placed")
	s.Clear()
	return order, nil
}

// ViewHistory lists the customer's past orders. A missing history matches
// store.ErrNoHistory via errors.Is; an empty one is a nil slice.
func (s *Session) ViewHistory(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListFor(ctx, s.identifier)
	if err != nil {
		return nil, fmt.Errorf("view history: %w", err)
	}
	return orders, nil
}
