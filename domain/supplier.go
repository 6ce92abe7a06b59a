package domain

type Supplier struct {
	ID        int64  `db:"id" json:"id"`
	FullName  string `db:"full_name" json:"full_name"`
	Phone     string `db:"phone" json:"phone"`
	Address   string `db:"address" json:"address"`
	CreatedAt string `db:"created_at" json:"created_at"`
}
