package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/database"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/migrations"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/sales"
)

// testStore opens a fresh in-memory database with the full schema and a
// small reference set: customers 1-2, supplier 1, units 1-2, products 1-2.
func testStore(t *testing.T) *Store {
	t.Helper()
	db := database.Connect(":memory:?_pragma=foreign_keys(ON)")
	t.Cleanup(func() { db.Close() })
	migrations.Run(db)

	db.MustExec(`INSERT INTO customers (full_name, phone, address) VALUES
        ('Ahmad Rahimi', '0700000001', 'Kabul'),
        ('Nadia Karimi', '0700000002', 'Mazar')`)
	db.MustExec(`INSERT INTO suppliers (full_name, phone, address) VALUES
        ('Herat Pharma Ltd', '0700000003', 'Herat')`)
	db.MustExec(`INSERT INTO units (name) VALUES ('Box'), ('Strip')`)
	db.MustExec(`INSERT INTO products (name, barcode, price, unit_id) VALUES
        ('Paracetamol 500mg', '8901001', 25, 1),
        ('Ibuprofen 200mg', '8901002', 50, 2)`)
	return New(db)
}

func saleItem(productID, unitID int64, price, quantity float64) domain.SaleItem {
	return domain.SaleItem{ProductID: productID, UnitID: unitID, PerPrice: price, Amount: quantity}
}

func saleInput(items ...domain.SaleItem) sales.SaleInput {
	return sales.SaleInput{CustomerID: 1, Date: "2024-05-01", Items: items}
}

func TestCreateSaleDerivesTotalFromItems(t *testing.T) {
	s := testStore(t)

	input := saleInput(saleItem(1, 1, 25, 2), saleItem(2, 2, 50, 1))
	input.PaidAmount = 40
	sale, err := s.CreateSale(input)
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if sale.TotalAmount != 100 {
		t.Errorf("TotalAmount = %v, want 100", sale.TotalAmount)
	}
	if sale.PaidAmount != 40 {
		t.Errorf("PaidAmount = %v, want 40", sale.PaidAmount)
	}

	got, items, err := s.GetSale(sale.ID)
	if err != nil {
		t.Fatalf("GetSale: %v", err)
	}
	if got.ID != sale.ID || got.CustomerID != 1 || got.Date != "2024-05-01" {
		t.Errorf("reloaded sale = %+v", got)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].SaleID != sale.ID || items[0].PerPrice != 25 || items[0].Amount != 2 {
		t.Errorf("first item = %+v", items[0])
	}
}

func TestUpdateSaleReplacesItemsWholesale(t *testing.T) {
	s := testStore(t)

	sale, err := s.CreateSale(saleInput(saleItem(1, 1, 25, 2), saleItem(2, 2, 50, 1)))
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	updated, err := s.UpdateSale(sale.ID, saleInput(saleItem(2, 2, 50, 3)))
	if err != nil {
		t.Fatalf("UpdateSale: %v", err)
	}
	if updated.TotalAmount != 150 {
		t.Errorf("TotalAmount = %v, want 150", updated.TotalAmount)
	}

	_, items, err := s.GetSale(sale.ID)
	if err != nil {
		t.Fatalf("GetSale: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].ProductID != 2 || items[0].Amount != 3 {
		t.Errorf("surviving item = %+v", items[0])
	}
}

func TestUpdateSaleAppliesScalarPaidOnlyWithoutPayments(t *testing.T) {
	s := testStore(t)

	sale, err := s.CreateSale(saleInput(saleItem(1, 1, 25, 4)))
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	input := saleInput(saleItem(1, 1, 25, 4))
	input.PaidAmount = 60
	updated, err := s.UpdateSale(sale.ID, input)
	if err != nil {
		t.Fatalf("UpdateSale: %v", err)
	}
	if updated.PaidAmount != 60 {
		t.Fatalf("PaidAmount = %v, want 60 before any payment rows", updated.PaidAmount)
	}

	// Once itemized payments exist their sum is authoritative, even over a
	// previously stored scalar.
	_, afterPayment, err := s.CreateSalePayment(sale.ID, 10, "2024-05-02")
	if err != nil {
		t.Fatalf("CreateSalePayment: %v", err)
	}
	if afterPayment.PaidAmount != 10 {
		t.Fatalf("PaidAmount = %v, want 10 once payments exist", afterPayment.PaidAmount)
	}

	input.PaidAmount = 999
	updated, err = s.UpdateSale(sale.ID, input)
	if err != nil {
		t.Fatalf("UpdateSale: %v", err)
	}
	if updated.PaidAmount != 10 {
		t.Errorf("PaidAmount = %v, want 10 kept from payment rows", updated.PaidAmount)
	}
}

func TestSalePaymentLifecycle(t *testing.T) {
	s := testStore(t)

	sale, err := s.CreateSale(saleInput(saleItem(1, 1, 25, 4)))
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	first, afterFirst, err := s.CreateSalePayment(sale.ID, 30, "2024-05-02")
	if err != nil {
		t.Fatalf("CreateSalePayment: %v", err)
	}
	if first.SaleID != sale.ID || first.Amount != 30 || first.Date != "2024-05-02" {
		t.Errorf("payment = %+v", first)
	}
	if afterFirst.PaidAmount != 30 {
		t.Errorf("PaidAmount = %v, want 30", afterFirst.PaidAmount)
	}

	_, afterSecond, err := s.CreateSalePayment(sale.ID, 20, "2024-05-03")
	if err != nil {
		t.Fatalf("CreateSalePayment: %v", err)
	}
	if afterSecond.PaidAmount != 50 {
		t.Errorf("PaidAmount = %v, want 50", afterSecond.PaidAmount)
	}

	payments, err := s.GetSalePayments(sale.ID)
	if err != nil {
		t.Fatalf("GetSalePayments: %v", err)
	}
	if len(payments) != 2 || payments[0].ID != first.ID {
		t.Fatalf("payments = %+v", payments)
	}

	byID, err := s.SalePaymentByID(first.ID)
	if err != nil {
		t.Fatalf("SalePaymentByID: %v", err)
	}
	if byID.SaleID != sale.ID || byID.Amount != 30 {
		t.Errorf("payment by id = %+v", byID)
	}

	afterDelete, err := s.DeleteSalePayment(first.ID)
	if err != nil {
		t.Fatalf("DeleteSalePayment: %v", err)
	}
	if afterDelete.PaidAmount != 20 {
		t.Errorf("PaidAmount = %v, want 20 after deleting the first payment", afterDelete.PaidAmount)
	}

	payments, err = s.GetSalePayments(sale.ID)
	if err != nil {
		t.Fatalf("GetSalePayments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("len(payments) = %d, want 1", len(payments))
	}

	afterLast, err := s.DeleteSalePayment(payments[0].ID)
	if err != nil {
		t.Fatalf("DeleteSalePayment: %v", err)
	}
	if afterLast.PaidAmount != 0 {
		t.Errorf("PaidAmount = %v, want 0 after deleting the last payment", afterLast.PaidAmount)
	}
}

func TestDeleteSaleCascades(t *testing.T) {
	s := testStore(t)

	sale, err := s.CreateSale(saleInput(saleItem(1, 1, 25, 2)))
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	if _, _, err := s.CreateSalePayment(sale.ID, 10, "2024-05-02"); err != nil {
		t.Fatalf("CreateSalePayment: %v", err)
	}

	if err := s.DeleteSale(sale.ID); err != nil {
		t.Fatalf("DeleteSale: %v", err)
	}
	if _, _, err := s.GetSale(sale.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSale after delete = %v, want ErrNotFound", err)
	}

	var orphans int
	if err := s.db.Get(&orphans, `SELECT COUNT(*) FROM sale_items WHERE sale_id = ?`, sale.ID); err != nil {
		t.Fatalf("count items: %v", err)
	}
	if orphans != 0 {
		t.Errorf("%d sale_items rows survived the cascade", orphans)
	}
	if err := s.db.Get(&orphans, `SELECT COUNT(*) FROM sale_payments WHERE sale_id = ?`, sale.ID); err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if orphans != 0 {
		t.Errorf("%d sale_payments rows survived the cascade", orphans)
	}
}

func TestMissingSaleReturnsErrNotFound(t *testing.T) {
	s := testStore(t)

	if _, _, err := s.GetSale(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSale = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdateSale(999, saleInput(saleItem(1, 1, 25, 1))); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateSale = %v, want ErrNotFound", err)
	}
	if err := s.DeleteSale(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSale = %v, want ErrNotFound", err)
	}
	if _, _, err := s.CreateSalePayment(999, 10, "2024-05-02"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateSalePayment = %v, want ErrNotFound", err)
	}
	if _, err := s.DeleteSalePayment(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteSalePayment = %v, want ErrNotFound", err)
	}
	if _, err := s.SalePaymentByID(999); !errors.Is(err, ErrNotFound) {
		t.Errorf("SalePaymentByID = %v, want ErrNotFound", err)
	}
}

func TestSearchSalesFilters(t *testing.T) {
	s := testStore(t)

	mustCreate := func(customerID int64, date string) domain.Sale {
		t.Helper()
		input := saleInput(saleItem(1, 1, 25, 1))
		input.CustomerID = customerID
		input.Date = date
		sale, err := s.CreateSale(input)
		if err != nil {
			t.Fatalf("CreateSale: %v", err)
		}
		return sale
	}
	mustCreate(1, "2024-05-01")
	mustCreate(2, "2024-05-02")
	mustCreate(1, "2024-05-03")

	all, err := s.ListSales()
	if err != nil {
		t.Fatalf("ListSales: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	if all[0].Date != "2024-05-03" || all[2].Date != "2024-05-01" {
		t.Errorf("sales are not newest first: %s, %s, %s", all[0].Date, all[1].Date, all[2].Date)
	}

	byCustomer, err := s.SearchSales(SaleFilter{CustomerID: 2})
	if err != nil {
		t.Fatalf("SearchSales: %v", err)
	}
	if len(byCustomer) != 1 || byCustomer[0].CustomerID != 2 {
		t.Errorf("customer filter returned %+v", byCustomer)
	}

	byRange, err := s.SearchSales(SaleFilter{StartDate: "2024-05-02", EndDate: "2024-05-02"})
	if err != nil {
		t.Fatalf("SearchSales: %v", err)
	}
	if len(byRange) != 1 || byRange[0].Date != "2024-05-02" {
		t.Errorf("date filter returned %+v", byRange)
	}
}

func TestSaleItemsBySale(t *testing.T) {
	s := testStore(t)

	first, err := s.CreateSale(saleInput(saleItem(1, 1, 25, 2), saleItem(2, 2, 50, 1)))
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	second, err := s.CreateSale(saleInput(saleItem(2, 2, 50, 4)))
	if err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	itemsBySale, err := s.SaleItemsBySale([]int64{first.ID, second.ID})
	if err != nil {
		t.Fatalf("SaleItemsBySale: %v", err)
	}
	if len(itemsBySale[first.ID]) != 2 || len(itemsBySale[second.ID]) != 1 {
		t.Errorf("itemsBySale = %+v", itemsBySale)
	}

	empty, err := s.SaleItemsBySale(nil)
	if err != nil {
		t.Fatalf("SaleItemsBySale(nil): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty lookup returned %+v", empty)
	}
}

func TestPurchaseMirrorsSaleBehavior(t *testing.T) {
	s := testStore(t)

	input := PurchaseInput{
		SupplierID: 1,
		Date:       "2024-05-01",
		Items: []domain.PurchaseItem{
			{ProductID: 1, UnitID: 1, PerPrice: 18, Amount: 10},
			{ProductID: 2, UnitID: 2, PerPrice: 40, Amount: 5},
		},
	}
	purchase, err := s.CreatePurchase(input)
	if err != nil {
		t.Fatalf("CreatePurchase: %v", err)
	}
	if purchase.TotalAmount != 380 {
		t.Errorf("TotalAmount = %v, want 380", purchase.TotalAmount)
	}

	input.Items = input.Items[:1]
	updated, err := s.UpdatePurchase(purchase.ID, input)
	if err != nil {
		t.Fatalf("UpdatePurchase: %v", err)
	}
	if updated.TotalAmount != 180 {
		t.Errorf("TotalAmount = %v, want 180 after replacing items", updated.TotalAmount)
	}

	payment, afterPayment, err := s.CreatePurchasePayment(purchase.ID, 100, "2024-05-02")
	if err != nil {
		t.Fatalf("CreatePurchasePayment: %v", err)
	}
	if afterPayment.PaidAmount != 100 {
		t.Errorf("PaidAmount = %v, want 100", afterPayment.PaidAmount)
	}

	payments, err := s.GetPurchasePayments(purchase.ID)
	if err != nil {
		t.Fatalf("GetPurchasePayments: %v", err)
	}
	if len(payments) != 1 || payments[0].ID != payment.ID {
		t.Fatalf("payments = %+v", payments)
	}

	afterDelete, err := s.DeletePurchasePayment(payment.ID)
	if err != nil {
		t.Fatalf("DeletePurchasePayment: %v", err)
	}
	if afterDelete.PaidAmount != 0 {
		t.Errorf("PaidAmount = %v, want 0 after deleting the only payment", afterDelete.PaidAmount)
	}

	if err := s.DeletePurchase(purchase.ID); err != nil {
		t.Fatalf("DeletePurchase: %v", err)
	}
	if _, _, err := s.GetPurchase(purchase.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPurchase after delete = %v, want ErrNotFound", err)
	}
}

func TestReferenceListsAreOrdered(t *testing.T) {
	s := testStore(t)

	customers, err := s.ListCustomers()
	if err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if len(customers) != 2 || customers[0].FullName != "Ahmad Rahimi" {
		t.Errorf("customers = %+v", customers)
	}

	suppliers, err := s.ListSuppliers()
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(suppliers) != 1 || suppliers[0].FullName != "Herat Pharma Ltd" {
		t.Errorf("suppliers = %+v", suppliers)
	}

	products, err := s.ListProducts()
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 || products[0].Name != "Ibuprofen 200mg" {
		t.Errorf("products = %+v", products)
	}
	if products[1].UnitID == nil || *products[1].UnitID != 1 {
		t.Errorf("Paracetamol unit = %+v", products[1].UnitID)
	}

	units, err := s.ListUnits()
	if err != nil {
		t.Fatalf("ListUnits: %v", err)
	}
	if len(units) != 2 || units[0].Name != "Box" || units[1].Name != "Strip" {
		t.Errorf("units = %+v", units)
	}
}

func TestSalesSummaries(t *testing.T) {
	s := testStore(t)

	// SQLite's date('now') runs in UTC, so the seeded dates follow UTC too.
	today := time.Now().UTC().Format("2006-01-02")

	input := saleInput(saleItem(1, 1, 25, 4))
	input.Date = today
	input.PaidAmount = 60
	if _, err := s.CreateSale(input); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}
	old := saleInput(saleItem(2, 2, 50, 2))
	old.Date = "2020-01-01"
	if _, err := s.CreateSale(old); err != nil {
		t.Fatalf("CreateSale: %v", err)
	}

	daily, err := s.DailySalesSummary()
	if err != nil {
		t.Fatalf("DailySalesSummary: %v", err)
	}
	if daily.SalesCount != 1 || daily.Revenue != 100 || daily.Collected != 60 || daily.Outstanding != 40 {
		t.Errorf("daily = %+v", daily)
	}

	monthly, err := s.MonthlySalesSummary()
	if err != nil {
		t.Fatalf("MonthlySalesSummary: %v", err)
	}
	if monthly.SalesCount != 1 || monthly.Revenue != 100 {
		t.Errorf("monthly = %+v", monthly)
	}
}
