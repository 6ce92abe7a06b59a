package sales

import (
	"errors"
	"testing"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
)

func unitRef(id int64) *int64 {
	return &id
}

func validDraft() *Draft {
	d := NewDraft("2024-05-01")
	d.CustomerID = 1
	d.AddItem()
	d.SetItemProduct(0, domain.Product{ID: 3, Name: "Paracetamol", Price: 25, UnitID: unitRef(2)})
	d.SetItemQuantity(0, 2)
	return d
}

func TestNewDraft(t *testing.T) {
	d := NewDraft("2024-05-01")
	if d.Date != "2024-05-01" {
		t.Errorf("Date = %q, want 2024-05-01", d.Date)
	}
	if d.CustomerID != 0 || d.SaleID != 0 || d.PaidAmount != 0 {
		t.Errorf("new draft is not zeroed: %+v", d)
	}
	if len(d.Items) != 0 {
		t.Errorf("new draft has %d items, want 0", len(d.Items))
	}
}

func TestDraftFromSale(t *testing.T) {
	notes := "paid half up front"
	sale := domain.Sale{
		ID:         7,
		CustomerID: 2,
		Date:       "2024-04-30",
		Notes:      &notes,
		PaidAmount: 125,
	}
	items := []domain.SaleItem{{ID: 11, SaleID: 7, ProductID: 3, UnitID: 2, PerPrice: 25, Amount: 10}}

	d := DraftFromSale(sale, items)
	if d.SaleID != 7 || d.CustomerID != 2 || d.Date != "2024-04-30" || d.PaidAmount != 125 {
		t.Errorf("seeded draft = %+v", d)
	}
	if d.Notes != notes {
		t.Errorf("Notes = %q, want %q", d.Notes, notes)
	}

	// The draft owns its item slice.
	d.SetItemQuantity(0, 99)
	if items[0].Amount != 10 {
		t.Errorf("seeding aliased the caller's items: %+v", items[0])
	}
}

func TestAddAndRemoveItems(t *testing.T) {
	d := NewDraft("2024-05-01")
	d.AddItem()
	d.AddItem()
	d.SetItemPrice(1, 40)
	if len(d.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(d.Items))
	}
	if d.Items[0] != (domain.SaleItem{}) {
		t.Errorf("AddItem appended a non-zero row: %+v", d.Items[0])
	}

	d.RemoveItem(0)
	if len(d.Items) != 1 || d.Items[0].PerPrice != 40 {
		t.Errorf("RemoveItem(0) kept the wrong row: %+v", d.Items)
	}

	d.RemoveItem(5)
	d.RemoveItem(-1)
	if len(d.Items) != 1 {
		t.Errorf("out-of-range RemoveItem changed the draft: %+v", d.Items)
	}
}

func TestSetItemProduct(t *testing.T) {
	tests := []struct {
		name      string
		product   domain.Product
		wantPrice float64
		wantUnit  int64
	}{
		{
			name:      "catalog price and unit overwrite the row",
			product:   domain.Product{ID: 3, Price: 25, UnitID: unitRef(2)},
			wantPrice: 25,
			wantUnit:  2,
		},
		{
			name:      "no catalog price leaves the entered price untouched",
			product:   domain.Product{ID: 4, UnitID: unitRef(2)},
			wantPrice: 80,
			wantUnit:  2,
		},
		{
			name:      "no default unit leaves the chosen unit untouched",
			product:   domain.Product{ID: 5, Price: 12},
			wantPrice: 12,
			wantUnit:  9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft("2024-05-01")
			d.AddItem()
			d.SetItemPrice(0, 80)
			d.SetItemUnit(0, 9)

			d.SetItemProduct(0, tt.product)
			item := d.Items[0]
			if item.ProductID != tt.product.ID {
				t.Errorf("ProductID = %d, want %d", item.ProductID, tt.product.ID)
			}
			if item.PerPrice != tt.wantPrice {
				t.Errorf("PerPrice = %v, want %v", item.PerPrice, tt.wantPrice)
			}
			if item.UnitID != tt.wantUnit {
				t.Errorf("UnitID = %d, want %d", item.UnitID, tt.wantUnit)
			}
		})
	}
}

func TestDraftReset(t *testing.T) {
	d := validDraft()
	d.SaleID = 9
	d.Notes = "something"
	d.PaidAmount = 50

	d.Reset("2024-05-02")
	if d.SaleID != 0 || d.CustomerID != 0 || d.Notes != "" || d.PaidAmount != 0 {
		t.Errorf("Reset left state behind: %+v", d)
	}
	if d.Date != "2024-05-02" || len(d.Items) != 0 {
		t.Errorf("Reset draft = %+v", d)
	}
}

func TestDraftTotals(t *testing.T) {
	d := validDraft()
	d.AddItem()
	d.SetItemProduct(1, domain.Product{ID: 4, Price: 50, UnitID: unitRef(2)})
	d.SetItemQuantity(1, 1)
	d.SetItemPrice(0, 100)
	d.PaidAmount = 150

	if got := d.Total(); got != 250 {
		t.Errorf("Total() = %v, want 250", got)
	}
	if got := d.Remaining(); got != 100 {
		t.Errorf("Remaining() = %v, want 100", got)
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Draft)
		wantErr error
		wantRow int
	}{
		{
			name:   "valid draft",
			mutate: func(d *Draft) {},
		},
		{
			name:    "customer unset",
			mutate:  func(d *Draft) { d.CustomerID = 0 },
			wantErr: ErrCustomerRequired,
		},
		{
			name:    "blank date",
			mutate:  func(d *Draft) { d.Date = "   " },
			wantErr: ErrDateRequired,
		},
		{
			name:    "no items",
			mutate:  func(d *Draft) { d.Items = nil },
			wantErr: ErrNoItems,
		},
		{
			name: "item without product",
			mutate: func(d *Draft) {
				d.Items[0].ProductID = 0
			},
			wantErr: ErrItemProduct,
			wantRow: 1,
		},
		{
			name: "item without unit",
			mutate: func(d *Draft) {
				d.Items[0].UnitID = 0
			},
			wantErr: ErrItemUnit,
			wantRow: 1,
		},
		{
			name: "item with zero price",
			mutate: func(d *Draft) {
				d.Items[0].PerPrice = 0
			},
			wantErr: ErrItemPrice,
			wantRow: 1,
		},
		{
			name: "second of three items has zero quantity",
			mutate: func(d *Draft) {
				for i := 0; i < 2; i++ {
					d.AddItem()
					d.SetItemProduct(len(d.Items)-1, domain.Product{ID: 3, Price: 25, UnitID: unitRef(2)})
					d.SetItemQuantity(len(d.Items)-1, 1)
				}
				d.SetItemQuantity(1, 0)
			},
			wantErr: ErrItemQuantity,
			wantRow: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)

			err := d.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() returned %T, want *ValidationError", err)
			}
			if ve.Row != tt.wantRow {
				t.Errorf("Row = %d, want %d", ve.Row, tt.wantRow)
			}
		})
	}
}

func TestDraftInput(t *testing.T) {
	d := validDraft()
	d.Notes = "  deliver friday  "
	d.PaidAmount = 30

	input := d.Input()
	if input.CustomerID != 1 || input.Date != "2024-05-01" || input.PaidAmount != 30 {
		t.Errorf("Input() = %+v", input)
	}
	if input.Notes == nil || *input.Notes != "deliver friday" {
		t.Errorf("Notes = %v, want trimmed pointer", input.Notes)
	}
	if len(input.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(input.Items))
	}

	// The payload owns its item slice.
	input.Items[0].Amount = 77
	if d.Items[0].Amount != 2 {
		t.Errorf("Input() aliased the draft's items: %+v", d.Items[0])
	}

	d.Notes = "   "
	if got := d.Input(); got.Notes != nil {
		t.Errorf("blank notes should produce nil, got %v", *got.Notes)
	}
}
