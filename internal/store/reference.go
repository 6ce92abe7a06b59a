package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
)

// Reference lookups backing the editor pickers. These lists are small
// (a pharmacy's customers, suppliers, catalog and units), so they are
// loaded whole and ordered for display.

func (s *Store) ListCustomers() ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := s.db.Select(&customers, `SELECT id, full_name, phone, address, created_at FROM customers ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (s *Store) GetCustomer(id int64) (domain.Customer, error) {
	var customer domain.Customer
	err := s.db.Get(&customer, `SELECT id, full_name, phone, address, created_at FROM customers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("get customer: %w", ErrNotFound)
	}
	if err != nil {
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

func (s *Store) ListSuppliers() ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{}
	err := s.db.Select(&suppliers, `SELECT id, full_name, phone, address, created_at FROM suppliers ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *Store) ListProducts() ([]domain.Product, error) {
	products := []domain.Product{}
	err := s.db.Select(&products, `SELECT id, name, barcode, price, unit_id, created_at FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Store) ListUnits() ([]domain.Unit, error) {
	units := []domain.Unit{}
	err := s.db.Select(&units, `SELECT id, name FROM units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}
