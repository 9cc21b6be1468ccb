package models

import "github.com/shopspring/decimal"

// OrderLine is one selected menu item inside an ordering session.
type OrderLine struct {
	Name  string
	Price decimal.Decimal
}

// Order is a completed order as persisted in order history.
type Order struct {
	Identifier string
	Summary    string // item names joined with ", "
	Total      decimal.Decimal
}
