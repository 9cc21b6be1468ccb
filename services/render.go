package services

import (
	"fmt"
	"strings"

	"food-order/models"

	"github.com/shopspring/decimal"
)

// FormatLine renders a selection line, e.g. "Cheeseburger - $5.00".
func FormatLine(l models.OrderLine) string {
	return fmt.Sprintf("%s - %s", l.Name, models.FormatMoney(l.Price))
}

// RenderMenu lists every item under its category with its menu number.
func RenderMenu(m *Menu) string {
	var b strings.Builder
	for i, cat := range m.Categories() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(cat + ":\n")
		for _, it := range m.ByCategory(cat) {
			fmt.Fprintf(&b, "  %2d. %s - %s\n", it.Number, it.Name, models.FormatMoney(it.Price))
		}
	}
	return b.String()
}

// RenderCart shows numbered selection lines followed by the total.
func RenderCart(lines []models.OrderLine, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("Order Summary:\n")
	if len(lines) == 0 {
		b.WriteString("  (empty)\n")
	}
	for i, l := range lines {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, FormatLine(l))
	}
	fmt.Fprintf(&b, "Total: %s\n", models.FormatMoney(total))
	return b.String()
}

// RenderHistory lists past orders as "summary - Total: $x", oldest first.
func RenderHistory(orders []models.Order) string {
	if len(orders) == 0 {
		return "No previous orders found.\n"
	}
	var b strings.Builder
	b.WriteString("Your previous orders:\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "%s - Total: %s\n", o.Summary, models.FormatMoney(o.Total))
	}
	return b.String()
}
