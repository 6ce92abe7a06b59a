package sales

import "github.com/sulaimanQasimi/shafaf-sub000/domain"

// ItemTotal returns the line total for one item: unit price times quantity.
func ItemTotal(item domain.SaleItem) float64 {
	return item.PerPrice * item.Amount
}

// InvoiceTotal returns the sum of all line totals.
func InvoiceTotal(items []domain.SaleItem) float64 {
	var total float64
	for _, item := range items {
		total += ItemTotal(item)
	}
	return total
}

// Remaining returns the open balance: invoice total minus the paid amount.
// It is never clamped; an overpaid sale yields a negative remainder.
func Remaining(items []domain.SaleItem, paid float64) float64 {
	return InvoiceTotal(items) - paid
}
