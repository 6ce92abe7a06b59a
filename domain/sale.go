package domain

// Sale is a customer invoice. TotalAmount is derived from the item rows and
// persisted with the header; PaidAmount is a cached aggregate that payment
// mutations keep equal to the sum of the sale's payment rows once any exist.
type Sale struct {
	ID          int64   `db:"id" json:"id"`
	CustomerID  int64   `db:"customer_id" json:"customer_id"`
	Date        string  `db:"date" json:"date"`
	Notes       *string `db:"notes" json:"notes,omitempty"`
	TotalAmount float64 `db:"total_amount" json:"total_amount"`
	PaidAmount  float64 `db:"paid_amount" json:"paid_amount"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

// SaleItem snapshots price and quantity at the time of sale, so later catalog
// changes never alter a saved invoice. The legacy column names are kept:
// per_price is the unit price, amount is the quantity.
type SaleItem struct {
	ID        int64   `db:"id" json:"id"`
	SaleID    int64   `db:"sale_id" json:"sale_id"`
	ProductID int64   `db:"product_id" json:"product_id"`
	UnitID    int64   `db:"unit_id" json:"unit_id"`
	PerPrice  float64 `db:"per_price" json:"per_price"`
	Amount    float64 `db:"amount" json:"amount"`
}

type SalePayment struct {
	ID        int64   `db:"id" json:"id"`
	SaleID    int64   `db:"sale_id" json:"sale_id"`
	Amount    float64 `db:"amount" json:"amount"`
	Date      string  `db:"date" json:"date"`
	CreatedAt string  `db:"created_at" json:"created_at"`
}
