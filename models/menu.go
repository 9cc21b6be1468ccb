package models

import "github.com/shopspring/decimal"

// MenuItem is one priced entry of the static menu. Number is the
// position shown to customers, starting at 1.
type MenuItem struct {
	Number   int
	Category string
	Name     string
	Price    decimal.Decimal
}

const (
	CategoryBurger   = "Burger"
	CategoryPizza    = "Pizza"
	CategoryFries    = "Fries"
	CategoryBeverage = "Beverage"
)
