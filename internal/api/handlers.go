package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/ec-storefront/internal/checkout"
	"github.com/example/ec-storefront/internal/domain/cart"
	"github.com/example/ec-storefront/internal/domain/order"
	"github.com/example/ec-storefront/internal/domain/pricing"
	"github.com/example/ec-storefront/internal/domain/product"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// SessionHeader identifies the shopper whose cart a request operates on
const SessionHeader = "X-Session-ID"

var validate = validator.New()

type Handlers struct {
	catalog  *product.Catalog
	carts    *cart.Registry
	ledger   *order.Ledger
	checkout *checkout.Service
}

func NewHandlers(catalog *product.Catalog, carts *cart.Registry, ledger *order.Ledger, checkoutSvc *checkout.Service) *Handlers {
	return &Handlers{
		catalog:  catalog,
		carts:    carts,
		ledger:   ledger,
		checkout: checkoutSvc,
	}
}

// CartView is a cart snapshot with its checkout pricing
type CartView struct {
	cart.Cart
	Pricing pricing.Breakdown `json:"pricing"`
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sortBy, err := product.ParseSortOrder(q.Get("sortBy"))
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	minPrice, err := parsePrice(q.Get("minPrice"))
	if err != nil {
		respondJSONError(w, "invalid minPrice", http.StatusBadRequest)
		return
	}
	maxPrice, err := parsePrice(q.Get("maxPrice"))
	if err != nil {
		respondJSONError(w, "invalid maxPrice", http.StatusBadRequest)
		return
	}

	products := h.catalog.FilterAndSort(product.FilterOptions{
		Category: q.Get("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		SortBy:   sortBy,
	})
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(extractPathParam(r.URL.Path, "/products/"))
	if err != nil {
		respondJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}
	p, ok := h.catalog.GetByID(id)
	if !ok {
		respondJSONError(w, "Product not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Search(r.URL.Query().Get("q")))
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Categories())
}

// Cart Handlers

type addToCartRequest struct {
	ProductID int `json:"productId" validate:"required"`
	Quantity  int `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.carts.Session(r.Context(), getSessionID(r))
	respondJSON(w, http.StatusOK, newCartView(s.Snapshot()))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.carts.Session(r.Context(), getSessionID(r))
	s.Clear(r.Context())
	respondJSON(w, http.StatusOK, newCartView(s.Snapshot()))
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, ok := h.catalog.GetByID(req.ProductID)
	if !ok {
		respondJSONError(w, "Product not found", http.StatusNotFound)
		return
	}

	if !p.InStock {
		respondJSONError(w, "Not enough stock", http.StatusConflict)
		return
	}

	s := h.carts.Session(r.Context(), getSessionID(r))
	err := s.AddItemUpTo(r.Context(), p, req.Quantity, p.StockQuantity)
	switch {
	case errors.Is(err, cart.ErrLimitExceeded):
		respondJSONError(w, "Not enough stock", http.StatusConflict)
		return
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, newCartView(s.Snapshot()))
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(extractPathParam(r.URL.Path, "/cart/items/"))
	if err != nil {
		respondJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req updateCartItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if p, ok := h.catalog.GetByID(id); ok && req.Quantity > p.StockQuantity {
		respondJSONError(w, "Not enough stock", http.StatusConflict)
		return
	}

	s := h.carts.Session(r.Context(), getSessionID(r))
	s.SetQuantity(r.Context(), id, req.Quantity)
	respondJSON(w, http.StatusOK, newCartView(s.Snapshot()))
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(extractPathParam(r.URL.Path, "/cart/items/"))
	if err != nil {
		respondJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	s := h.carts.Session(r.Context(), getSessionID(r))
	s.RemoveItem(r.Context(), id)
	respondJSON(w, http.StatusOK, newCartView(s.Snapshot()))
}

// Checkout / Order Handlers

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s := h.carts.Session(r.Context(), getSessionID(r))
	result, err := h.checkout.PlaceOrder(r.Context(), s, req)
	switch {
	case errors.Is(err, order.ErrInvalidCustomer), errors.Is(err, order.ErrEmptyOrder):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, checkout.ErrPaymentDeclined):
		respondJSONError(w, err.Error(), http.StatusPaymentRequired)
		return
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	ordersPlaced.Inc()
	respondJSON(w, http.StatusCreated, result)
}

// GetOrders lists a customer's orders. Operators only.
func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondJSONError(w, "email is required", http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, h.ledger.GetByCustomerEmail(r.Context(), email))
}

// GetOrder returns one order to a shopper who knows both its id and the
// e-mail it was placed with. A wrong e-mail looks like a missing order.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")
	email := r.URL.Query().Get("email")
	if email == "" {
		respondJSONError(w, "email is required", http.StatusBadRequest)
		return
	}
	o, ok := h.ledger.GetByID(r.Context(), id)
	if !ok || o.Customer.Email != email {
		respondJSONError(w, "Order not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus moves an order one step forward. Operators only.
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(extractPathParam(r.URL.Path, "/orders/"), "/status")

	var req updateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.ledger.Transition(r.Context(), id, status)
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		respondJSONError(w, "Order not found", http.StatusNotFound)
		return
	case errors.Is(err, order.ErrInvalidStatus):
		respondJSONError(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	o, _ := h.ledger.GetByID(r.Context(), id)
	respondJSON(w, http.StatusOK, o)
}

// Helper functions

func newCartView(c cart.Cart) CartView {
	return CartView{Cart: c, Pricing: pricing.Compute(c.Subtotal)}
}

func parsePrice(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}

// getSessionID returns the shopper session, or "" for the shared default cart
func getSessionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(SessionHeader))
}
