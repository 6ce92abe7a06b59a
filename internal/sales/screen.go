package sales

import (
	"fmt"
	"time"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
)

// Confirmer answers destructive-action prompts. Interactive shells ask the
// user; the HTTP layer confirms unconditionally because its client already
// did.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a plain function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves every prompt.
var AlwaysConfirm = ConfirmerFunc(func(string) bool { return true })

// PaymentView is the per-sale payment state: the sale as last returned by the
// gateway, its items, and its payment list.
type PaymentView struct {
	Sale     domain.Sale
	Items    []domain.SaleItem
	Payments []domain.SalePayment
}

// InvoiceBundle is everything the invoice collaborator needs to render one
// sale: the sale with its items, the resolved customer, the payment history,
// and the reference slices used to resolve names.
type InvoiceBundle struct {
	Sale     domain.Sale
	Items    []domain.SaleItem
	Customer domain.Customer
	Payments []domain.SalePayment
	Products []domain.Product
	Units    []domain.Unit
}

// Screen drives the sales workflow: loaded reference data, the sales list,
// the draft being edited, and at most one open payment view.
type Screen struct {
	gateway Gateway

	Customers []domain.Customer
	Products  []domain.Product
	Units     []domain.Unit

	Sales []domain.Sale
	Draft *Draft
	View  *PaymentView

	// OnOpenInvoice, when set, receives the assembled bundle whenever
	// OpenInvoice succeeds.
	OnOpenInvoice func(InvoiceBundle)

	// OnBack, when set, is invoked by Back so a parent shell can take
	// over navigation.
	OnBack func()
}

// NewScreen returns a screen with an empty draft dated today.
func NewScreen(gateway Gateway) *Screen {
	return &Screen{gateway: gateway, Draft: NewDraft(today())}
}

// today returns the current date on the same UTC clock the store's report
// windows use.
func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// Load fetches reference data and the sales list, as the screen does on
// mount.
func (s *Screen) Load() error {
	customers, err := s.gateway.ListCustomers()
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	products, err := s.gateway.ListProducts()
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	units, err := s.gateway.ListUnits()
	if err != nil {
		return fmt.Errorf("load units: %w", err)
	}
	s.Customers, s.Products, s.Units = customers, products, units
	return s.Reload()
}

// Reload refreshes the sales list only.
func (s *Screen) Reload() error {
	list, err := s.gateway.ListSales()
	if err != nil {
		return fmt.Errorf("load sales: %w", err)
	}
	s.Sales = list
	return nil
}

// SetItemProduct resolves the product from the loaded catalog and applies it
// to the draft row. Unknown product IDs leave the row unchanged.
func (s *Screen) SetItemProduct(index int, productID int64) {
	for _, p := range s.Products {
		if p.ID == productID {
			s.Draft.SetItemProduct(index, p)
			return
		}
	}
}

// Edit loads an existing sale into the draft for wholesale re-submission.
func (s *Screen) Edit(saleID int64) error {
	sale, items, err := s.gateway.GetSale(saleID)
	if err != nil {
		return fmt.Errorf("load sale: %w", err)
	}
	s.Draft = DraftFromSale(sale, items)
	return nil
}

// Submit validates the draft and sends it through the gateway: create when
// the draft has never been saved, update otherwise. On success the draft is
// reset and the list reloaded; on failure the draft is left intact for retry.
func (s *Screen) Submit() (domain.Sale, error) {
	if err := s.Draft.Validate(); err != nil {
		return domain.Sale{}, err
	}
	var (
		sale domain.Sale
		err  error
	)
	if s.Draft.SaleID == 0 {
		sale, err = s.gateway.CreateSale(s.Draft.Input())
	} else {
		sale, err = s.gateway.UpdateSale(s.Draft.SaleID, s.Draft.Input())
	}
	if err != nil {
		return domain.Sale{}, fmt.Errorf("save sale: %w", err)
	}
	s.Draft.Reset(today())
	if err := s.Reload(); err != nil {
		// The sale is saved; the list is stale until the next reload.
		return sale, err
	}
	return sale, nil
}

// Delete removes a sale after confirmation. A declined prompt is a no-op and
// reports false with no error.
func (s *Screen) Delete(saleID int64, confirm Confirmer) (bool, error) {
	if !confirm.Confirm("Delete this sale?") {
		return false, nil
	}
	if err := s.gateway.DeleteSale(saleID); err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	return true, s.Reload()
}

// OpenPayments loads the payment view for one sale.
func (s *Screen) OpenPayments(saleID int64) error {
	sale, items, err := s.gateway.GetSale(saleID)
	if err != nil {
		return fmt.Errorf("load sale: %w", err)
	}
	payments, err := s.gateway.GetSalePayments(saleID)
	if err != nil {
		return fmt.Errorf("load payments: %w", err)
	}
	s.View = &PaymentView{Sale: sale, Items: items, Payments: payments}
	return nil
}

// AddPayment records a payment against the viewed sale. Amounts of zero or
// less never reach the gateway. The view is refreshed from the sale returned
// by the mutation itself, so paid and remaining are current without another
// fetch.
func (s *Screen) AddPayment(amount float64, date string) error {
	if s.View == nil {
		return ErrNoSaleViewed
	}
	if amount <= 0 {
		return &ValidationError{Err: ErrPaymentAmount}
	}
	if date == "" {
		date = today()
	}
	payment, sale, err := s.gateway.CreateSalePayment(s.View.Sale.ID, amount, date)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	s.View.Sale = sale
	s.View.Payments = append(s.View.Payments, payment)
	return nil
}

// DeletePayment removes a payment after confirmation. A declined prompt is a
// no-op, not an error.
func (s *Screen) DeletePayment(paymentID int64, confirm Confirmer) (bool, error) {
	if s.View == nil {
		return false, ErrNoSaleViewed
	}
	if !confirm.Confirm("Delete this payment?") {
		return false, nil
	}
	sale, err := s.gateway.DeleteSalePayment(paymentID)
	if err != nil {
		return false, fmt.Errorf("delete payment: %w", err)
	}
	s.View.Sale = sale
	payments := make([]domain.SalePayment, 0, len(s.View.Payments))
	for _, p := range s.View.Payments {
		if p.ID != paymentID {
			payments = append(payments, p)
		}
	}
	s.View.Payments = payments
	return true, nil
}

// ClosePayments drops the payment view.
func (s *Screen) ClosePayments() {
	s.View = nil
}

// Back leaves the screen. Any open payment view is dropped and the shell
// callback, when set, is invoked.
func (s *Screen) Back() {
	s.View = nil
	if s.OnBack != nil {
		s.OnBack()
	}
}

// OpenInvoice assembles the fully resolved bundle for one sale. The customer
// comes from the loaded reference data; an unknown customer stays the zero
// value and the renderer falls back to the raw ID.
func (s *Screen) OpenInvoice(saleID int64) (InvoiceBundle, error) {
	sale, items, err := s.gateway.GetSale(saleID)
	if err != nil {
		return InvoiceBundle{}, fmt.Errorf("load sale: %w", err)
	}
	payments, err := s.gateway.GetSalePayments(saleID)
	if err != nil {
		return InvoiceBundle{}, fmt.Errorf("load payments: %w", err)
	}
	bundle := InvoiceBundle{
		Sale:     sale,
		Items:    items,
		Payments: payments,
		Products: s.Products,
		Units:    s.Units,
	}
	for _, c := range s.Customers {
		if c.ID == sale.CustomerID {
			bundle.Customer = c
			break
		}
	}
	if s.OnOpenInvoice != nil {
		s.OnOpenInvoice(bundle)
	}
	return bundle, nil
}
