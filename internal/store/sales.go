package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/sales"
)

const saleColumns = `id, customer_id, date, notes, total_amount, paid_amount, created_at`

func saleByID(q sqlx.Queryer, id int64) (domain.Sale, error) {
	var sale domain.Sale
	err := sqlx.Get(q, &sale, `SELECT `+saleColumns+` FROM sales WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Sale{}, ErrNotFound
	}
	return sale, err
}

func replaceSaleItems(tx *sqlx.Tx, saleID int64, items []domain.SaleItem) error {
	if _, err := tx.Exec(`DELETE FROM sale_items WHERE sale_id = ?`, saleID); err != nil {
		return err
	}
	stmt, err := tx.Preparex(`INSERT INTO sale_items (sale_id, product_id, unit_id, per_price, amount) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, item := range items {
		if _, err := stmt.Exec(saleID, item.ProductID, item.UnitID, item.PerPrice, item.Amount); err != nil {
			return err
		}
	}
	return nil
}

// refreshSalePaid re-derives the cached paid_amount from the payment rows,
// including back to zero when the last payment is gone.
func refreshSalePaid(tx *sqlx.Tx, saleID int64) error {
	_, err := tx.Exec(`UPDATE sales SET paid_amount = (SELECT COALESCE(SUM(amount), 0) FROM sale_payments WHERE sale_id = ?) WHERE id = ?`,
		saleID, saleID)
	return err
}

// CreateSale writes the sale header and its full item set in one transaction,
// deriving total_amount from the items.
func (s *Store) CreateSale(input sales.SaleInput) (domain.Sale, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Sale{}, fmt.Errorf("create sale: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowx(`INSERT INTO sales (customer_id, date, notes, total_amount, paid_amount) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		input.CustomerID, input.Date, input.Notes, sales.InvoiceTotal(input.Items), input.PaidAmount).Scan(&id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("create sale: %w", err)
	}
	if err := replaceSaleItems(tx, id, input.Items); err != nil {
		return domain.Sale{}, fmt.Errorf("create sale items: %w", err)
	}
	sale, err := saleByID(tx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("create sale: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Sale{}, fmt.Errorf("create sale: %w", err)
	}
	return sale, nil
}

// UpdateSale rewrites the header and replaces the item set wholesale. The
// scalar paid amount from the input applies only while the sale has no
// payment rows; once itemized payments exist their sum stays authoritative.
func (s *Store) UpdateSale(id int64, input sales.SaleInput) (domain.Sale, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Sale{}, fmt.Errorf("update sale: %w", err)
	}
	defer tx.Rollback()

	if _, err := saleByID(tx, id); err != nil {
		return domain.Sale{}, fmt.Errorf("update sale: %w", err)
	}

	var payments int64
	if err := sqlx.Get(tx, &payments, `SELECT COUNT(*) FROM sale_payments WHERE sale_id = ?`, id); err != nil {
		return domain.Sale{}, fmt.Errorf("update sale: %w", err)
	}
	paid := input.PaidAmount
	if payments > 0 {
		if err := sqlx.Get(tx, &paid, `SELECT COALESCE(SUM(amount), 0) FROM sale_payments WHERE sale_id = ?`, id); err != nil {
			return domain.Sale{}, fmt.Errorf("update sale: %w", err)
		}
	}

	_, err = tx.Exec(`UPDATE sales SET customer_id = ?, date = ?, notes = ?, total_amount = ?, paid_amount = ? WHERE id = ?`,
		input.CustomerID, input.Date, input.Notes, sales.InvoiceTotal(input.Items), paid, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("update sale: %w", err)
	}
	if err := replaceSaleItems(tx, id, input.Items); err != nil {
		return domain.Sale{}, fmt.Errorf("update sale items: %w", err)
	}
	sale, err := saleByID(tx, id)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("update sale: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Sale{}, fmt.Errorf("update sale: %w", err)
	}
	return sale, nil
}

// GetSale returns the sale header together with its items.
func (s *Store) GetSale(id int64) (domain.Sale, []domain.SaleItem, error) {
	sale, err := saleByID(s.db, id)
	if err != nil {
		return domain.Sale{}, nil, fmt.Errorf("get sale: %w", err)
	}
	var items []domain.SaleItem
	if err := s.db.Select(&items, `SELECT id, sale_id, product_id, unit_id, per_price, amount FROM sale_items WHERE sale_id = ? ORDER BY id`, id); err != nil {
		return domain.Sale{}, nil, fmt.Errorf("get sale items: %w", err)
	}
	return sale, items, nil
}

// DeleteSale removes the sale; its items and payments go with it via the
// foreign-key cascade.
func (s *Store) DeleteSale(id int64) error {
	res, err := s.db.Exec(`DELETE FROM sales WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete sale: %w", ErrNotFound)
	}
	return nil
}

// SaleFilter narrows SearchSales; zero values mean no constraint. Dates are
// compared against the sale's business date.
type SaleFilter struct {
	CustomerID int64
	StartDate  string
	EndDate    string
}

// SearchSales lists sales newest first, optionally filtered.
func (s *Store) SearchSales(filter SaleFilter) ([]domain.Sale, error) {
	var (
		args    []any
		clauses []string
	)
	if filter.CustomerID > 0 {
		clauses = append(clauses, "customer_id = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.StartDate != "" {
		clauses = append(clauses, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		clauses = append(clauses, "date <= ?")
		args = append(args, filter.EndDate)
	}

	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	list := []domain.Sale{}
	if err := s.db.Select(&list, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}

// ListSales lists every sale, newest first.
func (s *Store) ListSales() ([]domain.Sale, error) {
	return s.SearchSales(SaleFilter{})
}

// SaleItemsBySale loads the items for many sales at once, keyed by sale ID.
func (s *Store) SaleItemsBySale(saleIDs []int64) (map[int64][]domain.SaleItem, error) {
	itemsBySale := make(map[int64][]domain.SaleItem)
	if len(saleIDs) == 0 {
		return itemsBySale, nil
	}
	query, args, err := sqlx.In(`SELECT id, sale_id, product_id, unit_id, per_price, amount FROM sale_items WHERE sale_id IN (?) ORDER BY id`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	var rows []domain.SaleItem
	if err := s.db.Select(&rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	for _, row := range rows {
		itemsBySale[row.SaleID] = append(itemsBySale[row.SaleID], row)
	}
	return itemsBySale, nil
}

// CreateSalePayment inserts the payment and returns it together with the
// updated parent sale from the same transaction.
func (s *Store) CreateSalePayment(saleID int64, amount float64, date string) (domain.SalePayment, domain.Sale, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return domain.SalePayment{}, domain.Sale{}, fmt.Errorf("create payment: %w", err)
	}
	defer tx.Rollback()

	if _, err := saleByID(tx, saleID); err != nil {
		return domain.SalePayment{}, domain.Sale{}, fmt.Errorf("create payment: %w", err)
	}

	var paymentID int64
	err = tx.QueryRowx(`INSERT INTO sale_payments (sale_id, amount, date) VALUES (?, ?, ?) RETURNING id`,
		saleID, amount, date).Scan(&paymentID)
	if err != nil {
		return domain.SalePayment{}, domain.Sale{}, fmt.Errorf("create payment: %w", err)
	}
	if err := refreshSalePaid(tx, saleID); err != nil {
		return domain.SalePayment{}, domain.Sale{}, fmt.Errorf("create payment: %w", err)
	}

	var payment domain.SalePayment
	if err := sqlx.Get(tx, &payment, `SELECT id, sale_id, amount, date, created_at FROM sale_payments WHERE id = ?`, paymentID); err != nil {
		return domain.SalePayment{}, domain.Sale{}, fmt.Errorf("create payment: %w", err)
	}
	sale, err := saleByID(tx, saleID)
	if err != nil {
		return domain.SalePayment{}, domain.Sale{}, fmt.Errorf("create payment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.SalePayment{}, domain.Sale{}, fmt.Errorf("create payment: %w", err)
	}
	return payment, sale, nil
}

// GetSalePayments lists a sale's payments in insertion order.
func (s *Store) GetSalePayments(saleID int64) ([]domain.SalePayment, error) {
	payments := []domain.SalePayment{}
	if err := s.db.Select(&payments, `SELECT id, sale_id, amount, date, created_at FROM sale_payments WHERE sale_id = ? ORDER BY id`, saleID); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// SalePaymentByID returns one payment row.
func (s *Store) SalePaymentByID(paymentID int64) (domain.SalePayment, error) {
	var payment domain.SalePayment
	err := s.db.Get(&payment, `SELECT id, sale_id, amount, date, created_at FROM sale_payments WHERE id = ?`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SalePayment{}, ErrNotFound
	}
	if err != nil {
		return domain.SalePayment{}, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

// DeleteSalePayment removes the payment and returns the updated parent sale
// from the same transaction.
func (s *Store) DeleteSalePayment(paymentID int64) (domain.Sale, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Sale{}, fmt.Errorf("delete payment: %w", err)
	}
	defer tx.Rollback()

	var saleID int64
	err = sqlx.Get(tx, &saleID, `SELECT sale_id FROM sale_payments WHERE id = ?`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Sale{}, fmt.Errorf("delete payment: %w", ErrNotFound)
	}
	if err != nil {
		return domain.Sale{}, fmt.Errorf("delete payment: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM sale_payments WHERE id = ?`, paymentID); err != nil {
		return domain.Sale{}, fmt.Errorf("delete payment: %w", err)
	}
	if err := refreshSalePaid(tx, saleID); err != nil {
		return domain.Sale{}, fmt.Errorf("delete payment: %w", err)
	}
	sale, err := saleByID(tx, saleID)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("delete payment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Sale{}, fmt.Errorf("delete payment: %w", err)
	}
	return sale, nil
}

// SalesSummary aggregates revenue and balances over a reporting window.
type SalesSummary struct {
	Revenue     float64 `db:"revenue" json:"revenue"`
	Collected   float64 `db:"collected" json:"collected"`
	Outstanding float64 `db:"outstanding" json:"outstanding"`
	SalesCount  int64   `db:"sales_count" json:"sales_count"`
}

func (s *Store) salesSummary(where string) (SalesSummary, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0) AS revenue,
        COALESCE(SUM(paid_amount), 0) AS collected,
        COALESCE(SUM(total_amount - paid_amount), 0) AS outstanding,
        COUNT(*) AS sales_count
        FROM sales ` + where
	var summary SalesSummary
	if err := s.db.Get(&summary, query); err != nil {
		return SalesSummary{}, fmt.Errorf("sales summary: %w", err)
	}
	return summary, nil
}

// DailySalesSummary aggregates sales dated today.
func (s *Store) DailySalesSummary() (SalesSummary, error) {
	return s.salesSummary(`WHERE date = date('now')`)
}

// MonthlySalesSummary aggregates sales dated in the current month.
func (s *Store) MonthlySalesSummary() (SalesSummary, error) {
	return s.salesSummary(`WHERE strftime('%Y-%m', date) = strftime('%Y-%m', 'now')`)
}
