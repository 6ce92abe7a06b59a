package invoice

import (
	"strings"
	"testing"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/sales"
)

func sampleInput() Input {
	return Input{
		PharmacyName: "Shafaf Pharmacy",
		Sale: domain.Sale{
			ID:         7,
			CustomerID: 1,
			Date:       "2024-05-01",
			PaidAmount: 150,
		},
		Items: []domain.SaleItem{
			{ProductID: 3, UnitID: 2, PerPrice: 100, Amount: 2},
			{ProductID: 4, UnitID: 2, PerPrice: 50, Amount: 1},
		},
		Customer: domain.Customer{ID: 1, FullName: "Ahmad Rahimi"},
		Resolver: NewNames(
			[]domain.Product{{ID: 3, Name: "Paracetamol"}, {ID: 4, Name: "Ibuprofen"}},
			[]domain.Unit{{ID: 2, Name: "Box"}},
		),
	}
}

func render(t *testing.T, input Input) string {
	t.Helper()
	doc, err := NewRenderer().Render(input)
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	return doc
}

func TestRenderResolvesNames(t *testing.T) {
	doc := render(t, sampleInput())
	for _, want := range []string{"Shafaf Pharmacy", "Ahmad Rahimi", "Paracetamol", "Ibuprofen", "Box", "2024-05-01"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	doc := render(t, sampleInput())
	for _, want := range []string{"Total", "Paid", "Remaining", "250.00", "150.00", "100.00"} {
		if !strings.Contains(doc, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestRenderNegativeRemainingUnclamped(t *testing.T) {
	input := sampleInput()
	input.Sale.PaidAmount = 300

	doc := render(t, input)
	if !strings.Contains(doc, "-50.00") {
		t.Error("overpaid sale should show a negative remainder")
	}
}

func TestRenderFallsBackToRawIDs(t *testing.T) {
	input := Input{
		PharmacyName: "Shafaf Pharmacy",
		Sale:         domain.Sale{ID: 9, CustomerID: 88, Date: "2024-05-01"},
		Items:        []domain.SaleItem{{ProductID: 47, UnitID: 93, PerPrice: 10, Amount: 1}},
		Resolver:     NewNames(nil, nil),
	}

	doc := render(t, input)
	for _, want := range []string{"<td>47</td>", "<td>93</td>", "Customer: 88"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing fallback %q", want)
		}
	}
}

func TestRenderNotes(t *testing.T) {
	input := sampleInput()
	doc := render(t, input)
	if strings.Contains(doc, "Notes:") {
		t.Error("document shows a notes block for a sale without notes")
	}

	notes := "deliver friday"
	input.Sale.Notes = &notes
	doc = render(t, input)
	if !strings.Contains(doc, "Notes: deliver friday") {
		t.Error("document missing the notes block")
	}
}

func TestRenderFractionalQuantity(t *testing.T) {
	input := sampleInput()
	input.Items = []domain.SaleItem{{ProductID: 3, UnitID: 2, PerPrice: 40, Amount: 0.5}}

	doc := render(t, input)
	if !strings.Contains(doc, ">0.5<") {
		t.Error("fractional quantity not rendered")
	}
	if !strings.Contains(doc, "20.00") {
		t.Error("line total not rendered")
	}
}

func TestInputFromBundle(t *testing.T) {
	unitID := int64(2)
	bundle := sales.InvoiceBundle{
		Sale:     domain.Sale{ID: 5, CustomerID: 1, Date: "2024-05-01", PaidAmount: 10},
		Items:    []domain.SaleItem{{ProductID: 3, UnitID: 2, PerPrice: 25, Amount: 2}},
		Customer: domain.Customer{ID: 1, FullName: "Ahmad Rahimi"},
		Products: []domain.Product{{ID: 3, Name: "Paracetamol", UnitID: &unitID}},
		Units:    []domain.Unit{{ID: 2, Name: "Box"}},
	}

	doc := render(t, InputFromBundle(bundle, "Shafaf Pharmacy"))
	for _, want := range []string{"Paracetamol", "Box", "50.00", "40.00"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}
