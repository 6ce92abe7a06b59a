package invoice

import (
	_ "embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/sales"
)

//go:embed invoice.html
var documentHTML string

// NameResolver maps product and unit IDs to display names. The second return
// reports whether the ID is known.
type NameResolver interface {
	ProductName(id int64) (string, bool)
	UnitName(id int64) (string, bool)
}

// Names is a map-backed NameResolver built from loaded reference slices.
type Names struct {
	products map[int64]string
	units    map[int64]string
}

// NewNames indexes the given reference data.
func NewNames(products []domain.Product, units []domain.Unit) Names {
	n := Names{
		products: make(map[int64]string, len(products)),
		units:    make(map[int64]string, len(units)),
	}
	for _, p := range products {
		n.products[p.ID] = p.Name
	}
	for _, u := range units {
		n.units[u.ID] = u.Name
	}
	return n
}

func (n Names) ProductName(id int64) (string, bool) {
	name, ok := n.products[id]
	return name, ok
}

func (n Names) UnitName(id int64) (string, bool) {
	name, ok := n.units[id]
	return name, ok
}

// Input is everything one printable invoice needs.
type Input struct {
	PharmacyName string
	Sale         domain.Sale
	Items        []domain.SaleItem
	Customer     domain.Customer
	Resolver     NameResolver
}

// InputFromBundle adapts a screen invoice bundle for rendering.
func InputFromBundle(b sales.InvoiceBundle, pharmacyName string) Input {
	return Input{
		PharmacyName: pharmacyName,
		Sale:         b.Sale,
		Items:        b.Items,
		Customer:     b.Customer,
		Resolver:     NewNames(b.Products, b.Units),
	}
}

type lineView struct {
	No       int
	Product  string
	Unit     string
	Price    string
	Quantity string
	Total    string
}

type documentView struct {
	PharmacyName string
	SaleID       int64
	Date         string
	CustomerName string
	Notes        string
	Lines        []lineView
	Total        string
	Paid         string
	Remaining    string
}

// Renderer turns a finalized sale into a printable HTML document.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded invoice template.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("invoice").Parse(documentHTML))}
}

// Render produces the printable document. Product and unit names come from
// the resolver; unknown IDs render as the raw numeric ID. The summary shows
// total, paid, and the unclamped remainder.
func (r *Renderer) Render(input Input) (string, error) {
	var buf strings.Builder
	if err := r.tmpl.Execute(&buf, buildView(input)); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return buf.String(), nil
}

func buildView(input Input) documentView {
	lines := make([]lineView, len(input.Items))
	for i, item := range input.Items {
		lines[i] = lineView{
			No:       i + 1,
			Product:  resolve(input.productName, item.ProductID),
			Unit:     resolve(input.unitName, item.UnitID),
			Price:    money(item.PerPrice),
			Quantity: decimal.NewFromFloat(item.Amount).String(),
			Total:    money(sales.ItemTotal(item)),
		}
	}

	total := sales.InvoiceTotal(input.Items)
	view := documentView{
		PharmacyName: input.PharmacyName,
		SaleID:       input.Sale.ID,
		Date:         input.Sale.Date,
		CustomerName: input.Customer.FullName,
		Lines:        lines,
		Total:        money(total),
		Paid:         money(input.Sale.PaidAmount),
		Remaining:    money(sales.Remaining(input.Items, input.Sale.PaidAmount)),
	}
	if view.CustomerName == "" {
		view.CustomerName = strconv.FormatInt(input.Sale.CustomerID, 10)
	}
	if input.Sale.Notes != nil {
		view.Notes = *input.Sale.Notes
	}
	return view
}

func (in Input) productName(id int64) (string, bool) {
	if in.Resolver == nil {
		return "", false
	}
	return in.Resolver.ProductName(id)
}

func (in Input) unitName(id int64) (string, bool) {
	if in.Resolver == nil {
		return "", false
	}
	return in.Resolver.UnitName(id)
}

func resolve(lookup func(int64) (string, bool), id int64) string {
	if name, ok := lookup(id); ok {
		return name
	}
	return strconv.FormatInt(id, 10)
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
