package sales

import (
	"testing"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
)

func TestItemTotal(t *testing.T) {
	tests := []struct {
		name string
		item domain.SaleItem
		want float64
	}{
		{"whole numbers", domain.SaleItem{PerPrice: 100, Amount: 2}, 200},
		{"fractional quantity", domain.SaleItem{PerPrice: 40, Amount: 0.5}, 20},
		{"zero quantity", domain.SaleItem{PerPrice: 99, Amount: 0}, 0},
		{"zero price", domain.SaleItem{PerPrice: 0, Amount: 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemTotal(tt.item); got != tt.want {
				t.Errorf("ItemTotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvoiceTotalMatchesItemSum(t *testing.T) {
	lists := [][]domain.SaleItem{
		nil,
		{{PerPrice: 100, Amount: 2}},
		{{PerPrice: 100, Amount: 2}, {PerPrice: 50, Amount: 1}},
		{{PerPrice: 12.5, Amount: 3}, {PerPrice: 0.3, Amount: 7}, {PerPrice: 199.99, Amount: 1}},
	}
	for _, items := range lists {
		var sum float64
		for _, item := range items {
			sum += ItemTotal(item)
		}
		if got := InvoiceTotal(items); got != sum {
			t.Errorf("InvoiceTotal(%v) = %v, want %v", items, got, sum)
		}
	}
}

func TestRemaining(t *testing.T) {
	items := []domain.SaleItem{
		{PerPrice: 100, Amount: 2},
		{PerPrice: 50, Amount: 1},
	}
	if got := InvoiceTotal(items); got != 250 {
		t.Fatalf("InvoiceTotal() = %v, want 250", got)
	}

	tests := []struct {
		name string
		paid float64
		want float64
	}{
		{"partial payment", 150, 100},
		{"nothing paid", 0, 250},
		{"settled", 250, 0},
		{"overpaid goes negative", 300, -50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remaining(items, tt.paid); got != tt.want {
				t.Errorf("Remaining(items, %v) = %v, want %v", tt.paid, got, tt.want)
			}
		})
	}
}

func TestRemainingWithoutItems(t *testing.T) {
	if got := Remaining(nil, 10); got != -10 {
		t.Errorf("Remaining(nil, 10) = %v, want -10", got)
	}
}
