package services

import (
	"fmt"
	"strings"

	"food-order/models"

	"github.com/shopspring/decimal"
)

// Menu is the immutable catalogue offered to every session.
type Menu struct {
	items      []models.MenuItem
	categories []string
}

type menuEntry struct {
	name  string
	price string
}

var defaultCatalogue = []struct {
	category string
	entries  []menuEntry
}{
	{models.CategoryBurger, []menuEntry{{"Cheeseburger", "5.00"}, {"Veggie Burger", "4.50"}, {"Chicken Burger", "6.00"}}},
	{models.CategoryPizza, []menuEntry{{"Mushroom Pizza", "8.00"}, {"Pepperoni Pizza", "9.00"}, {"Chicken Pizza", "10.00"}}},
	{models.CategoryFries, []menuEntry{{"Regular Fries", "2.50"}, {"Cheese Fries", "3.00"}, {"Curly Fries", "3.50"}}},
	{models.CategoryBeverage, []menuEntry{{"Cola", "1.50"}, {"Sprite", "1.50"}, {"Water", "1.00"}}},
}

// DefaultMenu returns the built-in menu: burgers, pizza, fries and beverages.
func DefaultMenu() *Menu {
	var items []models.MenuItem
	for _, c := range defaultCatalogue {
		for _, e := range c.entries {
			items = append(items, models.MenuItem{
				Category: c.category,
				Name:     e.name,
				Price:    decimal.RequireFromString(e.price),
			})
		}
	}
	m, err := NewMenu(items)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMenu numbers items from 1 in the given order. Category order follows
// first appearance. Names must be non-empty and free of commas, since order
// summaries are comma-joined.
func NewMenu(items []models.MenuItem) (*Menu, error) {
	m := &Menu{items: make([]models.MenuItem, 0, len(items))}
	seen := make(map[string]bool)
	for i, it := range items {
		if it.Name == "" || strings.Contains(it.Name, ",") {
			return nil, fmt.Errorf("menu item %d: invalid name %q", i+1, it.Name)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("menu item %q: price must be >= 0", it.Name)
		}
		it.Number = i + 1
		m.items = append(m.items, it)
		if !seen[it.Category] {
			seen[it.Category] = true
			m.categories = append(m.categories, it.Category)
		}
	}
	return m, nil
}

func (m *Menu) Categories() []string {
	return append([]string(nil), m.categories...)
}

func (m *Menu) Items() []models.MenuItem {
	return append([]models.MenuItem(nil), m.items...)
}

// ByCategory matches category case-insensitively.
func (m *Menu) ByCategory(category string) []models.MenuItem {
	var out []models.MenuItem
	for _, it := range m.items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out
}

// Item looks up an item by its menu number.
func (m *Menu) Item(number int) (models.MenuItem, error) {
	if number < 1 || number > len(m.items) {
		return models.MenuItem{}, fmt.Errorf("%w: #%d", ErrUnknownItem, number)
	}
	return m.items[number-1], nil
}
