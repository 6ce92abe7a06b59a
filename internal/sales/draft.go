package sales

import (
	"strings"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
)

// Draft holds one editable sale, new or existing, as plain local state. Every
// transition is a method on the draft; this package keeps no hidden state.
type Draft struct {
	SaleID     int64 // 0 while the draft has never been saved
	CustomerID int64
	Date       string
	Notes      string
	PaidAmount float64
	Items      []domain.SaleItem
}

// NewDraft returns an empty draft dated with the given day.
func NewDraft(today string) *Draft {
	return &Draft{Date: today, Items: []domain.SaleItem{}}
}

// DraftFromSale seeds edit mode from a saved sale and its items.
func DraftFromSale(sale domain.Sale, items []domain.SaleItem) *Draft {
	d := &Draft{
		SaleID:     sale.ID,
		CustomerID: sale.CustomerID,
		Date:       sale.Date,
		PaidAmount: sale.PaidAmount,
		Items:      make([]domain.SaleItem, len(items)),
	}
	if sale.Notes != nil {
		d.Notes = *sale.Notes
	}
	copy(d.Items, items)
	return d
}

// AddItem appends a zeroed line item.
func (d *Draft) AddItem() {
	d.Items = append(d.Items, domain.SaleItem{})
}

// RemoveItem drops the row at index. Out-of-range indexes are ignored.
func (d *Draft) RemoveItem(index int) {
	if index < 0 || index >= len(d.Items) {
		return
	}
	d.Items = append(d.Items[:index], d.Items[index+1:]...)
}

// SetItemProduct selects the product for a row and copies the catalog price
// and default unit onto it where the product defines them. A manually entered
// price survives only when the product carries no catalog price.
func (d *Draft) SetItemProduct(index int, product domain.Product) {
	if index < 0 || index >= len(d.Items) {
		return
	}
	item := &d.Items[index]
	item.ProductID = product.ID
	if product.Price > 0 {
		item.PerPrice = product.Price
	}
	if product.UnitID != nil {
		item.UnitID = *product.UnitID
	}
}

// SetItemUnit sets the unit for a row.
func (d *Draft) SetItemUnit(index int, unitID int64) {
	if index < 0 || index >= len(d.Items) {
		return
	}
	d.Items[index].UnitID = unitID
}

// SetItemPrice sets the unit price for a row.
func (d *Draft) SetItemPrice(index int, price float64) {
	if index < 0 || index >= len(d.Items) {
		return
	}
	d.Items[index].PerPrice = price
}

// SetItemQuantity sets the quantity for a row.
func (d *Draft) SetItemQuantity(index int, quantity float64) {
	if index < 0 || index >= len(d.Items) {
		return
	}
	d.Items[index].Amount = quantity
}

// Reset clears the draft back to a fresh sale dated with the given day.
func (d *Draft) Reset(today string) {
	*d = Draft{Date: today, Items: []domain.SaleItem{}}
}

// Total returns the running invoice total for the drafted items.
func (d *Draft) Total() float64 {
	return InvoiceTotal(d.Items)
}

// Remaining returns the running open balance, unclamped.
func (d *Draft) Remaining() float64 {
	return Remaining(d.Items, d.PaidAmount)
}

// Validate checks the draft before submission. Row-level failures identify
// the offending line item by its 1-based position.
func (d *Draft) Validate() error {
	if d.CustomerID <= 0 {
		return &ValidationError{Err: ErrCustomerRequired}
	}
	if strings.TrimSpace(d.Date) == "" {
		return &ValidationError{Err: ErrDateRequired}
	}
	if len(d.Items) == 0 {
		return &ValidationError{Err: ErrNoItems}
	}
	for i, item := range d.Items {
		row := i + 1
		switch {
		case item.ProductID <= 0:
			return &ValidationError{Err: ErrItemProduct, Row: row}
		case item.UnitID <= 0:
			return &ValidationError{Err: ErrItemUnit, Row: row}
		case item.PerPrice <= 0:
			return &ValidationError{Err: ErrItemPrice, Row: row}
		case item.Amount <= 0:
			return &ValidationError{Err: ErrItemQuantity, Row: row}
		}
	}
	return nil
}

// Input produces the gateway payload carrying the full item list.
func (d *Draft) Input() SaleInput {
	items := make([]domain.SaleItem, len(d.Items))
	copy(items, d.Items)
	input := SaleInput{
		CustomerID: d.CustomerID,
		Date:       d.Date,
		PaidAmount: d.PaidAmount,
		Items:      items,
	}
	if trimmed := strings.TrimSpace(d.Notes); trimmed != "" {
		input.Notes = &trimmed
	}
	return input
}
