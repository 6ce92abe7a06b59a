package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/invoice"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/sales"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/store"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store        *store.Store
	renderer     *invoice.Renderer
	pharmacyName string
}

// New constructs a Handler.
func New(st *store.Store, renderer *invoice.Renderer, pharmacyName string) *Handler {
	return &Handler{store: st, renderer: renderer, pharmacyName: pharmacyName}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Get("/customers", h.listCustomers)
	r.Get("/suppliers", h.listSuppliers)
	r.Get("/products", h.listProducts)
	r.Get("/units", h.listUnits)

	r.Route("/sales", func(r chi.Router) {
		r.Post("/", h.createSale)
		r.Get("/", h.listSales)
		r.Get("/{id}", h.getSale)
		r.Put("/{id}", h.updateSale)
		r.Delete("/{id}", h.deleteSale)
		r.Get("/{id}/invoice", h.saleInvoice)
		r.Post("/{id}/payments", h.createSalePayment)
		r.Get("/{id}/payments", h.listSalePayments)
		r.Delete("/{id}/payments/{paymentID}", h.deleteSalePayment)
	})

	r.Route("/purchases", func(r chi.Router) {
		r.Post("/", h.createPurchase)
		r.Get("/", h.listPurchases)
		r.Get("/{id}", h.getPurchase)
		r.Put("/{id}", h.updatePurchase)
		r.Delete("/{id}", h.deletePurchase)
		r.Post("/{id}/payments", h.createPurchasePayment)
		r.Get("/{id}/payments", h.listPurchasePayments)
		r.Delete("/{id}/payments/{paymentID}", h.deletePurchasePayment)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/sales/daily", h.dailySales)
		r.Get("/sales/monthly", h.monthlySales)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Reference handlers

// @Summary      List customers
// @Tags         reference
// @Produce      json
// @Success      200  {array}   domain.Customer
// @Failure      500  {object}  errorResponse
// @Router       /customers [get]
func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers()
	if err != nil {
		respondGatewayError(w, "unable to list customers", err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// @Summary      List suppliers
// @Tags         reference
// @Produce      json
// @Success      200  {array}   domain.Supplier
// @Failure      500  {object}  errorResponse
// @Router       /suppliers [get]
func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.store.ListSuppliers()
	if err != nil {
		respondGatewayError(w, "unable to list suppliers", err)
		return
	}
	respondJSON(w, http.StatusOK, suppliers)
}

// @Summary      List products
// @Tags         reference
// @Produce      json
// @Success      200  {array}   domain.Product
// @Failure      500  {object}  errorResponse
// @Router       /products [get]
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts()
	if err != nil {
		respondGatewayError(w, "unable to list products", err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// @Summary      List units
// @Tags         reference
// @Produce      json
// @Success      200  {array}   domain.Unit
// @Failure      500  {object}  errorResponse
// @Router       /units [get]
func (h *Handler) listUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.store.ListUnits()
	if err != nil {
		respondGatewayError(w, "unable to list units", err)
		return
	}
	respondJSON(w, http.StatusOK, units)
}

// Sales handlers

type saleRequest struct {
	CustomerID int64             `json:"customer_id"`
	Date       string            `json:"date"`
	Notes      string            `json:"notes"`
	PaidAmount float64           `json:"paid_amount"`
	Items      []domain.SaleItem `json:"items"`
}

// draft shapes the request for the editor's validation, so the API rejects
// exactly what the sales screen would.
func (req saleRequest) draft(saleID int64) *sales.Draft {
	return &sales.Draft{
		SaleID:     saleID,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		Notes:      req.Notes,
		PaidAmount: req.PaidAmount,
		Items:      req.Items,
	}
}

type saleEntry struct {
	domain.Sale
	Items []domain.SaleItem `json:"items"`
}

// @Summary      Create sale
// @Description  Save a customer invoice. The stored total is always derived from the items.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        sale  body      saleRequest  true  "Sale contents"
// @Success      201   {object}  domain.Sale
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /sales [post]
func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	draft := req.draft(0)
	if err := draft.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sale, err := h.store.CreateSale(draft.Input())
	if err != nil {
		respondGatewayError(w, "unable to create sale", err)
		return
	}
	respondJSON(w, http.StatusCreated, sale)
}

// @Summary      List sales
// @Description  List sales newest first, each with its items.
// @Tags         sales
// @Produce      json
// @Param        customer_id  query     int     false  "Filter by customer"
// @Param        start_date   query     string  false  "Earliest sale date (YYYY-MM-DD)"
// @Param        end_date     query     string  false  "Latest sale date (YYYY-MM-DD)"
// @Success      200  {array}   saleEntry
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /sales [get]
func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	filter, ok := saleFilterFromQuery(w, r)
	if !ok {
		return
	}

	list, err := h.store.SearchSales(filter)
	if err != nil {
		respondGatewayError(w, "unable to list sales", err)
		return
	}

	ids := make([]int64, len(list))
	for i, sale := range list {
		ids[i] = sale.ID
	}
	itemsBySale, err := h.store.SaleItemsBySale(ids)
	if err != nil {
		respondGatewayError(w, "unable to load sale items", err)
		return
	}

	entries := make([]saleEntry, len(list))
	for i, sale := range list {
		entries[i] = saleEntry{Sale: sale, Items: itemsBySale[sale.ID]}
	}
	respondJSON(w, http.StatusOK, entries)
}

// @Summary      Get sale
// @Tags         sales
// @Produce      json
// @Param        id   path      int  true  "Sale ID"
// @Success      200  {object}  saleEntry
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /sales/{id} [get]
func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	sale, items, err := h.store.GetSale(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "sale not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to fetch sale", err)
		return
	}
	respondJSON(w, http.StatusOK, saleEntry{Sale: sale, Items: items})
}

// @Summary      Update sale
// @Description  Rewrite the sale header and replace its items wholesale. Once itemized payments exist, the paid amount in the body is ignored in favor of their sum.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Sale ID"
// @Param        sale  body      saleRequest  true  "Updated sale contents"
// @Success      200   {object}  domain.Sale
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /sales/{id} [put]
func (h *Handler) updateSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	draft := req.draft(id)
	if err := draft.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sale, err := h.store.UpdateSale(id, draft.Input())
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "sale not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to update sale", err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

// @Summary      Delete sale
// @Description  Remove the sale together with its items and payments.
// @Tags         sales
// @Produce      json
// @Param        id   path      int  true  "Sale ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /sales/{id} [delete]
func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	err = h.store.DeleteSale(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "sale not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to delete sale", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Payment handlers

type paymentRequest struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type salePaymentResponse struct {
	Payment domain.SalePayment `json:"payment"`
	Sale    domain.Sale        `json:"sale"`
}

type salePaymentDeleteResponse struct {
	Status string      `json:"status"`
	Sale   domain.Sale `json:"sale"`
}

// @Summary      Record sale payment
// @Description  Record a payment against the sale and return it with the updated sale in one response. The date defaults to today.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Sale ID"
// @Param        payment  body      paymentRequest  true  "Payment contents"
// @Success      201      {object}  salePaymentResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /sales/{id}/payments [post]
func (h *Handler) createSalePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, sales.ErrPaymentAmount.Error())
		return
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	payment, sale, err := h.store.CreateSalePayment(id, req.Amount, date)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "sale not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to record payment", err)
		return
	}
	respondJSON(w, http.StatusCreated, salePaymentResponse{Payment: payment, Sale: sale})
}

// @Summary      List sale payments
// @Tags         payments
// @Produce      json
// @Param        id   path      int  true  "Sale ID"
// @Success      200  {array}   domain.SalePayment
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /sales/{id}/payments [get]
func (h *Handler) listSalePayments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	if _, _, err := h.store.GetSale(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "sale not found")
			return
		}
		respondGatewayError(w, "unable to fetch sale", err)
		return
	}
	payments, err := h.store.GetSalePayments(id)
	if err != nil {
		respondGatewayError(w, "unable to list payments", err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// @Summary      Delete sale payment
// @Description  Remove one payment and return the updated sale with its paid amount re-derived from the remaining payments.
// @Tags         payments
// @Produce      json
// @Param        id         path      int  true  "Sale ID"
// @Param        paymentID  path      int  true  "Payment ID"
// @Success      200  {object}  salePaymentDeleteResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /sales/{id}/payments/{paymentID} [delete]
func (h *Handler) deleteSalePayment(w http.ResponseWriter, r *http.Request) {
	saleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	paymentID, err := strconv.ParseInt(chi.URLParam(r, "paymentID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	// The payment must belong to the sale named in the path.
	payment, err := h.store.SalePaymentByID(paymentID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respondGatewayError(w, "unable to delete payment", err)
		return
	}
	if errors.Is(err, store.ErrNotFound) || payment.SaleID != saleID {
		respondError(w, http.StatusNotFound, "payment not found")
		return
	}
	sale, err := h.store.DeleteSalePayment(paymentID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "payment not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to delete payment", err)
		return
	}
	respondJSON(w, http.StatusOK, salePaymentDeleteResponse{Status: "payment deleted", Sale: sale})
}

// Invoice

// @Summary      Printable invoice
// @Description  Render the sale as a printable HTML invoice. Names that cannot be resolved fall back to raw IDs.
// @Tags         sales
// @Produce      html
// @Param        id   path      int  true  "Sale ID"
// @Success      200  {string}  string
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /sales/{id}/invoice [get]
func (h *Handler) saleInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	sale, items, err := h.store.GetSale(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "sale not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to fetch sale", err)
		return
	}

	// A missing customer row is not fatal; the renderer prints the raw ID.
	customer, err := h.store.GetCustomer(sale.CustomerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respondGatewayError(w, "unable to fetch customer", err)
		return
	}
	products, err := h.store.ListProducts()
	if err != nil {
		respondGatewayError(w, "unable to list products", err)
		return
	}
	units, err := h.store.ListUnits()
	if err != nil {
		respondGatewayError(w, "unable to list units", err)
		return
	}

	doc, err := h.renderer.Render(invoice.Input{
		PharmacyName: h.pharmacyName,
		Sale:         sale,
		Items:        items,
		Customer:     customer,
		Resolver:     invoice.NewNames(products, units),
	})
	if err != nil {
		respondGatewayError(w, "unable to render invoice", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Purchase handlers

type purchaseRequest struct {
	SupplierID int64                 `json:"supplier_id"`
	Date       string                `json:"date"`
	Notes      string                `json:"notes"`
	PaidAmount float64               `json:"paid_amount"`
	Items      []domain.PurchaseItem `json:"items"`
}

func (req purchaseRequest) validate() string {
	if req.SupplierID <= 0 {
		return "supplier is required"
	}
	if strings.TrimSpace(req.Date) == "" {
		return "date is required"
	}
	if len(req.Items) == 0 {
		return "at least one item is required"
	}
	for i, item := range req.Items {
		switch {
		case item.ProductID <= 0:
			return fmt.Sprintf("item %d: product is required", i+1)
		case item.UnitID <= 0:
			return fmt.Sprintf("item %d: unit is required", i+1)
		case item.PerPrice <= 0:
			return fmt.Sprintf("item %d: price must be greater than zero", i+1)
		case item.Amount <= 0:
			return fmt.Sprintf("item %d: quantity must be greater than zero", i+1)
		}
	}
	return ""
}

func (req purchaseRequest) input() store.PurchaseInput {
	return store.PurchaseInput{
		SupplierID: req.SupplierID,
		Date:       strings.TrimSpace(req.Date),
		Notes:      nullIfEmpty(req.Notes),
		PaidAmount: req.PaidAmount,
		Items:      req.Items,
	}
}

type purchaseEntry struct {
	domain.Purchase
	Items []domain.PurchaseItem `json:"items"`
}

type purchasePaymentResponse struct {
	Payment  domain.PurchasePayment `json:"payment"`
	Purchase domain.Purchase        `json:"purchase"`
}

type purchasePaymentDeleteResponse struct {
	Status   string          `json:"status"`
	Purchase domain.Purchase `json:"purchase"`
}

// @Summary      Create purchase
// @Description  Save a supplier purchase. The stored total is always derived from the items.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        purchase  body      purchaseRequest  true  "Purchase contents"
// @Success      201       {object}  domain.Purchase
// @Failure      400       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /purchases [post]
func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	purchase, err := h.store.CreatePurchase(req.input())
	if err != nil {
		respondGatewayError(w, "unable to create purchase", err)
		return
	}
	respondJSON(w, http.StatusCreated, purchase)
}

// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Param        supplier_id  query     int     false  "Filter by supplier"
// @Param        start_date   query     string  false  "Earliest purchase date (YYYY-MM-DD)"
// @Param        end_date     query     string  false  "Latest purchase date (YYYY-MM-DD)"
// @Success      200  {array}   purchaseEntry
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /purchases [get]
func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	filter, ok := purchaseFilterFromQuery(w, r)
	if !ok {
		return
	}

	list, err := h.store.SearchPurchases(filter)
	if err != nil {
		respondGatewayError(w, "unable to list purchases", err)
		return
	}

	ids := make([]int64, len(list))
	for i, purchase := range list {
		ids[i] = purchase.ID
	}
	itemsByPurchase, err := h.store.PurchaseItemsByPurchase(ids)
	if err != nil {
		respondGatewayError(w, "unable to load purchase items", err)
		return
	}

	entries := make([]purchaseEntry, len(list))
	for i, purchase := range list {
		entries[i] = purchaseEntry{Purchase: purchase, Items: itemsByPurchase[purchase.ID]}
	}
	respondJSON(w, http.StatusOK, entries)
}

// @Summary      Get purchase
// @Tags         purchases
// @Produce      json
// @Param        id   path      int  true  "Purchase ID"
// @Success      200  {object}  purchaseEntry
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /purchases/{id} [get]
func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	purchase, items, err := h.store.GetPurchase(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "purchase not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to fetch purchase", err)
		return
	}
	respondJSON(w, http.StatusOK, purchaseEntry{Purchase: purchase, Items: items})
}

// @Summary      Update purchase
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id        path      int              true  "Purchase ID"
// @Param        purchase  body      purchaseRequest  true  "Updated purchase contents"
// @Success      200       {object}  domain.Purchase
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /purchases/{id} [put]
func (h *Handler) updatePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	purchase, err := h.store.UpdatePurchase(id, req.input())
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "purchase not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to update purchase", err)
		return
	}
	respondJSON(w, http.StatusOK, purchase)
}

// @Summary      Delete purchase
// @Tags         purchases
// @Produce      json
// @Param        id   path      int  true  "Purchase ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /purchases/{id} [delete]
func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	err = h.store.DeletePurchase(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "purchase not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to delete purchase", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// @Summary      Record purchase payment
// @Description  Record a payment against the purchase and return it with the updated purchase in one response. The date defaults to today.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Purchase ID"
// @Param        payment  body      paymentRequest  true  "Payment contents"
// @Success      201      {object}  purchasePaymentResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /purchases/{id}/payments [post]
func (h *Handler) createPurchasePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, sales.ErrPaymentAmount.Error())
		return
	}
	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	payment, purchase, err := h.store.CreatePurchasePayment(id, req.Amount, date)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "purchase not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to record payment", err)
		return
	}
	respondJSON(w, http.StatusCreated, purchasePaymentResponse{Payment: payment, Purchase: purchase})
}

// @Summary      List purchase payments
// @Tags         payments
// @Produce      json
// @Param        id   path      int  true  "Purchase ID"
// @Success      200  {array}   domain.PurchasePayment
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /purchases/{id}/payments [get]
func (h *Handler) listPurchasePayments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	if _, _, err := h.store.GetPurchase(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "purchase not found")
			return
		}
		respondGatewayError(w, "unable to fetch purchase", err)
		return
	}
	payments, err := h.store.GetPurchasePayments(id)
	if err != nil {
		respondGatewayError(w, "unable to list payments", err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// @Summary      Delete purchase payment
// @Tags         payments
// @Produce      json
// @Param        id         path      int  true  "Purchase ID"
// @Param        paymentID  path      int  true  "Payment ID"
// @Success      200  {object}  purchasePaymentDeleteResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /purchases/{id}/payments/{paymentID} [delete]
func (h *Handler) deletePurchasePayment(w http.ResponseWriter, r *http.Request) {
	purchaseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}
	paymentID, err := strconv.ParseInt(chi.URLParam(r, "paymentID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	// The payment must belong to the purchase named in the path.
	payment, err := h.store.PurchasePaymentByID(paymentID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		respondGatewayError(w, "unable to delete payment", err)
		return
	}
	if errors.Is(err, store.ErrNotFound) || payment.PurchaseID != purchaseID {
		respondError(w, http.StatusNotFound, "payment not found")
		return
	}
	purchase, err := h.store.DeletePurchasePayment(paymentID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "payment not found")
		return
	}
	if err != nil {
		respondGatewayError(w, "unable to delete payment", err)
		return
	}
	respondJSON(w, http.StatusOK, purchasePaymentDeleteResponse{Status: "payment deleted", Purchase: purchase})
}

// Reports

// @Summary      Daily sales summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}  store.SalesSummary
// @Failure      500  {object}  errorResponse
// @Router       /reports/sales/daily [get]
func (h *Handler) dailySales(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.DailySalesSummary()
	if err != nil {
		respondGatewayError(w, "unable to fetch daily sales", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// @Summary      Monthly sales summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}  store.SalesSummary
// @Failure      500  {object}  errorResponse
// @Router       /reports/sales/monthly [get]
func (h *Handler) monthlySales(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.MonthlySalesSummary()
	if err != nil {
		respondGatewayError(w, "unable to fetch monthly sales", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Query helpers

func saleFilterFromQuery(w http.ResponseWriter, r *http.Request) (store.SaleFilter, bool) {
	var filter store.SaleFilter

	customerIDStr := strings.TrimSpace(r.URL.Query().Get("customer_id"))
	if customerIDStr != "" {
		customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
		if err != nil || customerID <= 0 {
			respondError(w, http.StatusBadRequest, "invalid customer_id")
			return filter, false
		}
		filter.CustomerID = customerID
	}

	startDate, endDate, ok := dateRangeFromQuery(w, r)
	if !ok {
		return filter, false
	}
	filter.StartDate = startDate
	filter.EndDate = endDate
	return filter, true
}

func purchaseFilterFromQuery(w http.ResponseWriter, r *http.Request) (store.PurchaseFilter, bool) {
	var filter store.PurchaseFilter

	supplierIDStr := strings.TrimSpace(r.URL.Query().Get("supplier_id"))
	if supplierIDStr != "" {
		supplierID, err := strconv.ParseInt(supplierIDStr, 10, 64)
		if err != nil || supplierID <= 0 {
			respondError(w, http.StatusBadRequest, "invalid supplier_id")
			return filter, false
		}
		filter.SupplierID = supplierID
	}

	startDate, endDate, ok := dateRangeFromQuery(w, r)
	if !ok {
		return filter, false
	}
	filter.StartDate = startDate
	filter.EndDate = endDate
	return filter, true
}

func dateRangeFromQuery(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	if startDate != "" {
		if _, err := time.Parse("2006-01-02", startDate); err != nil {
			respondError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return "", "", false
		}
	}
	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if endDate != "" {
		if _, err := time.Parse("2006-01-02", endDate); err != nil {
			respondError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
			return "", "", false
		}
	}
	return startDate, endDate, true
}

// Helpers

type errorResponse struct {
	Error string `json:"error"`
}

func nullIfEmpty(val string) *string {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondGatewayError keeps the failure detail in the local log; the client
// sees only the generic per-operation message.
func respondGatewayError(w http.ResponseWriter, message string, err error) {
	log.Printf("%s: %v", message, err)
	respondError(w, http.StatusInternalServerError, message)
}
