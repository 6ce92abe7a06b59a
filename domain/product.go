package domain

// Product is a catalog entry. Price 0 means no catalog price has been set;
// UnitID nil means no default unit.
type Product struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Barcode   string  `db:"barcode" json:"barcode"`
	Price     float64 `db:"price" json:"price"`
	UnitID    *int64  `db:"unit_id" json:"unit_id,omitempty"`
	CreatedAt string  `db:"created_at" json:"created_at"`
}
