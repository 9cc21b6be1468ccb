package services

import (
	"fmt"
	"testing"

	"food-order/models"
	"food-order/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatLine(t *testing.T) {
	l := models.OrderLine{Name: "Veggie Burger", Price: decimal.RequireFromString("4.5")}
	assert.Equal(t, "Veggie Burger - $4.50", FormatLine(l))
}

func TestRenderCart(t *testing.T) {
	assert.Equal(t, "Order Summary:\n  (empty)\nTotal: $0.00\n", RenderCart(nil, decimal.Zero))

	lines := []models.OrderLine{
		{Name: "Cheeseburger", Price: decimal.NewFromInt(5)},
		{Name: "Cola", Price: decimal.RequireFromString("1.5")},
	}
	want := "Order Summary:\n" +
		"  1. Cheeseburger - $5.00\n" +
		"  2. Cola - $1.50\n" +
		"Total: $6.50\n"
	assert.Equal(t, want, RenderCart(lines, decimal.RequireFromString("6.5")))
}

func TestRenderHistory(t *testing.T) {
	assert.Equal(t, "No previous orders found.\n", RenderHistory(nil))

	orders := []models.Order{
		{Summary: "Cheeseburger", Total: decimal.NewFromInt(5)},
		{Summary: "Cola, Water", Total: decimal.RequireFromString("2.5")},
	}
	want := "Your previous orders:\n" +
		"Cheeseburger - Total: $5.00\n" +
		"Cola, Water - Total: $2.50\n"
	assert.Equal(t, want, RenderHistory(orders))
}

func TestNotice(t *testing.T) {
	tests := []struct {
		err        error
		want       string
		wantNotice bool
	}{
		{nil, "", false},
		{ErrEmptyCredentials, "Signup failed: email and password cannot be empty.", true},
		{ErrAccountExists, "Signup failed: email already exists.", true},
		{ErrInvalidCredentials, "Login failed: invalid email or password.", true},
		{&ThrottledError{WaitSeconds: 4}, "Login failed: too many attempts, try again in 4 seconds.", true},
		{ErrEmptyOrder, "Order error: no items selected.", true},
		{fmt.Errorf("%w: #99", ErrUnknownItem), "There is no such item on the menu.", true},
		{fmt.Errorf("%w: 3", ErrNoSuchLine), "There is no such line in your order.", true},
		{fmt.Errorf("view history: %w", store.ErrNoHistory), "No order history available.", true},
		{errDisk, "Something went wrong, please try again.", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Notice(tt.err))
		assert.Equal(t, tt.wantNotice, IsNotice(tt.err), "%v", tt.err)
	}
}
