package sales

import "github.com/sulaimanQasimi/shafaf-sub000/domain"

// SaleInput is the complete payload for creating or updating a sale. Items
// always carry the full set for the sale; the store replaces rows wholesale
// rather than diffing.
type SaleInput struct {
	CustomerID int64             `json:"customer_id"`
	Date       string            `json:"date"`
	Notes      *string           `json:"notes,omitempty"`
	PaidAmount float64           `json:"paid_amount"`
	Items      []domain.SaleItem `json:"items"`
}

// Gateway is the persistence boundary the sales screen calls into. Payment
// mutations return the updated parent sale from the same transaction, so the
// caller never re-fetches it separately.
type Gateway interface {
	CreateSale(input SaleInput) (domain.Sale, error)
	UpdateSale(id int64, input SaleInput) (domain.Sale, error)
	GetSale(id int64) (domain.Sale, []domain.SaleItem, error)
	DeleteSale(id int64) error
	ListSales() ([]domain.Sale, error)

	CreateSalePayment(saleID int64, amount float64, date string) (domain.SalePayment, domain.Sale, error)
	GetSalePayments(saleID int64) ([]domain.SalePayment, error)
	DeleteSalePayment(paymentID int64) (domain.Sale, error)

	ListCustomers() ([]domain.Customer, error)
	ListProducts() ([]domain.Product, error)
	ListUnits() ([]domain.Unit, error)
}
