package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
)

// PurchaseInput carries a validated supplier purchase into the store. It
// mirrors the sale input: the stored total is always derived from the items.
type PurchaseInput struct {
	SupplierID int64                 `json:"supplier_id"`
	Date       string                `json:"date"`
	Notes      *string               `json:"notes"`
	PaidAmount float64               `json:"paid_amount"`
	Items      []domain.PurchaseItem `json:"items"`
}

const purchaseColumns = `id, supplier_id, date, notes, total_amount, paid_amount, created_at`

func purchaseTotal(items []domain.PurchaseItem) float64 {
	var total float64
	for _, item := range items {
		total += item.PerPrice * item.Amount
	}
	return total
}

func purchaseByID(q sqlx.Queryer, id int64) (domain.Purchase, error) {
	var purchase domain.Purchase
	err := sqlx.Get(q, &purchase, `SELECT `+purchaseColumns+` FROM purchases WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Purchase{}, ErrNotFound
	}
	return purchase, err
}

func replacePurchaseItems(tx *sqlx.Tx, purchaseID int64, items []domain.PurchaseItem) error {
	if _, err := tx.Exec(`DELETE FROM purchase_items WHERE purchase_id = ?`, purchaseID); err != nil {
		return err
	}
	stmt, err := tx.Preparex(`INSERT INTO purchase_items (purchase_id, product_id, unit_id, per_price, amount) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, item := range items {
		if _, err := stmt.Exec(purchaseID, item.ProductID, item.UnitID, item.PerPrice, item.Amount); err != nil {
			return err
		}
	}
	return nil
}

func refreshPurchasePaid(tx *sqlx.Tx, purchaseID int64) error {
	_, err := tx.Exec(`UPDATE purchases SET paid_amount = (SELECT COALESCE(SUM(amount), 0) FROM purchase_payments WHERE purchase_id = ?) WHERE id = ?`,
		purchaseID, purchaseID)
	return err
}

// CreatePurchase writes the purchase header and its full item set in one
// transaction, deriving total_amount from the items.
func (s *Store) CreatePurchase(input PurchaseInput) (domain.Purchase, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("create purchase: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowx(`INSERT INTO purchases (supplier_id, date, notes, total_amount, paid_amount) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		input.SupplierID, input.Date, input.Notes, purchaseTotal(input.Items), input.PaidAmount).Scan(&id)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("create purchase: %w", err)
	}
	if err := replacePurchaseItems(tx, id, input.Items); err != nil {
		return domain.Purchase{}, fmt.Errorf("create purchase items: %w", err)
	}
	purchase, err := purchaseByID(tx, id)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("create purchase: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Purchase{}, fmt.Errorf("create purchase: %w", err)
	}
	return purchase, nil
}

// UpdatePurchase rewrites the header and replaces the item set wholesale,
// with the same paid-amount rule as sales: the input scalar applies only
// while the purchase has no payment rows.
func (s *Store) UpdatePurchase(id int64, input PurchaseInput) (domain.Purchase, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("update purchase: %w", err)
	}
	defer tx.Rollback()

	if _, err := purchaseByID(tx, id); err != nil {
		return domain.Purchase{}, fmt.Errorf("update purchase: %w", err)
	}

	var payments int64
	if err := sqlx.Get(tx, &payments, `SELECT COUNT(*) FROM purchase_payments WHERE purchase_id = ?`, id); err != nil {
		return domain.Purchase{}, fmt.Errorf("update purchase: %w", err)
	}
	paid := input.PaidAmount
	if payments > 0 {
		if err := sqlx.Get(tx, &paid, `SELECT COALESCE(SUM(amount), 0) FROM purchase_payments WHERE purchase_id = ?`, id); err != nil {
			return domain.Purchase{}, fmt.Errorf("update purchase: %w", err)
		}
	}

	_, err = tx.Exec(`UPDATE purchases SET supplier_id = ?, date = ?, notes = ?, total_amount = ?, paid_amount = ? WHERE id = ?`,
		input.SupplierID, input.Date, input.Notes, purchaseTotal(input.Items), paid, id)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("update purchase: %w", err)
	}
	if err := replacePurchaseItems(tx, id, input.Items); err != nil {
		return domain.Purchase{}, fmt.Errorf("update purchase items: %w", err)
	}
	purchase, err := purchaseByID(tx, id)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("update purchase: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Purchase{}, fmt.Errorf("update purchase: %w", err)
	}
	return purchase, nil
}

// GetPurchase returns the purchase header together with its items.
func (s *Store) GetPurchase(id int64) (domain.Purchase, []domain.PurchaseItem, error) {
	purchase, err := purchaseByID(s.db, id)
	if err != nil {
		return domain.Purchase{}, nil, fmt.Errorf("get purchase: %w", err)
	}
	var items []domain.PurchaseItem
	if err := s.db.Select(&items, `SELECT id, purchase_id, product_id, unit_id, per_price, amount FROM purchase_items WHERE purchase_id = ? ORDER BY id`, id); err != nil {
		return domain.Purchase{}, nil, fmt.Errorf("get purchase items: %w", err)
	}
	return purchase, items, nil
}

// DeletePurchase removes the purchase; its items and payments go with it via
// the foreign-key cascade.
func (s *Store) DeletePurchase(id int64) error {
	res, err := s.db.Exec(`DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete purchase: %w", ErrNotFound)
	}
	return nil
}

// PurchaseFilter narrows SearchPurchases; zero values mean no constraint.
type PurchaseFilter struct {
	SupplierID int64
	StartDate  string
	EndDate    string
}

// SearchPurchases lists purchases newest first, optionally filtered.
func (s *Store) SearchPurchases(filter PurchaseFilter) ([]domain.Purchase, error) {
	var (
		args    []any
		clauses []string
	)
	if filter.SupplierID > 0 {
		clauses = append(clauses, "supplier_id = ?")
		args = append(args, filter.SupplierID)
	}
	if filter.StartDate != "" {
		clauses = append(clauses, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		clauses = append(clauses, "date <= ?")
		args = append(args, filter.EndDate)
	}

	query := `SELECT ` + purchaseColumns + ` FROM purchases`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	list := []domain.Purchase{}
	if err := s.db.Select(&list, query, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return list, nil
}

// ListPurchases lists every purchase, newest first.
func (s *Store) ListPurchases() ([]domain.Purchase, error) {
	return s.SearchPurchases(PurchaseFilter{})
}

// PurchaseItemsByPurchase loads the items for many purchases at once, keyed
// by purchase ID.
func (s *Store) PurchaseItemsByPurchase(purchaseIDs []int64) (map[int64][]domain.PurchaseItem, error) {
	itemsByPurchase := make(map[int64][]domain.PurchaseItem)
	if len(purchaseIDs) == 0 {
		return itemsByPurchase, nil
	}
	query, args, err := sqlx.In(`SELECT id, purchase_id, product_id, unit_id, per_price, amount FROM purchase_items WHERE purchase_id IN (?) ORDER BY id`, purchaseIDs)
	if err != nil {
		return nil, fmt.Errorf("load purchase items: %w", err)
	}
	var rows []domain.PurchaseItem
	if err := s.db.Select(&rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load purchase items: %w", err)
	}
	for _, row := range rows {
		itemsByPurchase[row.PurchaseID] = append(itemsByPurchase[row.PurchaseID], row)
	}
	return itemsByPurchase, nil
}

// CreatePurchasePayment inserts the payment and returns it together with the
// updated parent purchase from the same transaction.
func (s *Store) CreatePurchasePayment(purchaseID int64, amount float64, date string) (domain.PurchasePayment, domain.Purchase, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return domain.PurchasePayment{}, domain.Purchase{}, fmt.Errorf("create payment: %w", err)
	}
	defer tx.Rollback()

	if _, err := purchaseByID(tx, purchaseID); err != nil {
		return domain.PurchasePayment{}, domain.Purchase{}, fmt.Errorf("create payment: %w", err)
	}

	var paymentID int64
	err = tx.QueryRowx(`INSERT INTO purchase_payments (purchase_id, amount, date) VALUES (?, ?, ?) RETURNING id`,
		purchaseID, amount, date).Scan(&paymentID)
	if err != nil {
		return domain.PurchasePayment{}, domain.Purchase{}, fmt.Errorf("create payment: %w", err)
	}
	if err := refreshPurchasePaid(tx, purchaseID); err != nil {
		return domain.PurchasePayment{}, domain.Purchase{}, fmt.Errorf("create payment: %w", err)
	}

	var payment domain.PurchasePayment
	if err := sqlx.Get(tx, &payment, `SELECT id, purchase_id, amount, date, created_at FROM purchase_payments WHERE id = ?`, paymentID); err != nil {
		return domain.PurchasePayment{}, domain.Purchase{}, fmt.Errorf("create payment: %w", err)
	}
	purchase, err := purchaseByID(tx, purchaseID)
	if err != nil {
		return domain.PurchasePayment{}, domain.Purchase{}, fmt.Errorf("create payment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.PurchasePayment{}, domain.Purchase{}, fmt.Errorf("create payment: %w", err)
	}
	return payment, purchase, nil
}

// GetPurchasePayments lists a purchase's payments in insertion order.
func (s *Store) GetPurchasePayments(purchaseID int64) ([]domain.PurchasePayment, error) {
	payments := []domain.PurchasePayment{}
	if err := s.db.Select(&payments, `SELECT id, purchase_id, amount, date, created_at FROM purchase_payments WHERE purchase_id = ? ORDER BY id`, purchaseID); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// PurchasePaymentByID returns one payment row.
func (s *Store) PurchasePaymentByID(paymentID int64) (domain.PurchasePayment, error) {
	var payment domain.PurchasePayment
	err := s.db.Get(&payment, `SELECT id, purchase_id, amount, date, created_at FROM purchase_payments WHERE id = ?`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PurchasePayment{}, ErrNotFound
	}
	if err != nil {
		return domain.PurchasePayment{}, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

// DeletePurchasePayment removes the payment and returns the updated parent
// purchase from the same transaction.
func (s *Store) DeletePurchasePayment(paymentID int64) (domain.Purchase, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("delete payment: %w", err)
	}
	defer tx.Rollback()

	var purchaseID int64
	err = sqlx.Get(tx, &purchaseID, `SELECT purchase_id FROM purchase_payments WHERE id = ?`, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Purchase{}, fmt.Errorf("delete payment: %w", ErrNotFound)
	}
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("delete payment: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM purchase_payments WHERE id = ?`, paymentID); err != nil {
		return domain.Purchase{}, fmt.Errorf("delete payment: %w", err)
	}
	if err := refreshPurchasePaid(tx, purchaseID); err != nil {
		return domain.Purchase{}, fmt.Errorf("delete payment: %w", err)
	}
	purchase, err := purchaseByID(tx, purchaseID)
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("delete payment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Purchase{}, fmt.Errorf("delete payment: %w", err)
	}
	return purchase, nil
}
