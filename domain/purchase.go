package domain

// Purchase mirrors Sale on the supplier side with the same totals and
// paid-amount semantics.
type Purchase struct {
	ID          int64   `db:"id" json:"id"`
	SupplierID  int64   `db:"supplier_id" json:"supplier_id"`
	Date        string  `db:"date" json:"date"`
	Notes       *string `db:"notes" json:"notes,omitempty"`
	TotalAmount float64 `db:"total_amount" json:"total_amount"`
	PaidAmount  float64 `db:"paid_amount" json:"paid_amount"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

type PurchaseItem struct {
	ID         int64   `db:"id" json:"id"`
	PurchaseID int64   `db:"purchase_id" json:"purchase_id"`
	ProductID  int64   `db:"product_id" json:"product_id"`
	UnitID     int64   `db:"unit_id" json:"unit_id"`
	PerPrice   float64 `db:"per_price" json:"per_price"`
	Amount     float64 `db:"amount" json:"amount"`
}

type PurchasePayment struct {
	ID         int64   `db:"id" json:"id"`
	PurchaseID int64   `db:"purchase_id" json:"purchase_id"`
	Amount     float64 `db:"amount" json:"amount"`
	Date       string  `db:"date" json:"date"`
	CreatedAt  string  `db:"created_at" json:"created_at"`
}
