package store

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sulaimanQasimi/shafaf-sub000/internal/sales"
)

// ErrNotFound marks a lookup for a row that does not exist. Callers match it
// with errors.Is.
var ErrNotFound = errors.New("not found")

// Store implements the persistence gateway over the local SQLite database.
// Sale and purchase writes are transactional: the header, its full item set,
// and the derived totals always land together.
type Store struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

var _ sales.Gateway = (*Store)(nil)
