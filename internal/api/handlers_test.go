package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/example/ec-storefront/internal/auth"
	"github.com/example/ec-storefront/internal/checkout"
	"github.com/example/ec-storefront/internal/domain/cart"
	"github.com/example/ec-storefront/internal/domain/order"
	"github.com/example/ec-storefront/internal/domain/product"
	eventmocks "github.com/example/ec-storefront/internal/event/mocks"
	"github.com/example/ec-storefront/internal/infrastructure/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testOperatorEmail    = "admin@shop.test"
	testOperatorPassword = "operator-pass"
)

type testServer struct {
	handler   http.Handler
	ledger    *order.Ledger
	publisher *eventmocks.MockPublisher
	jwt       *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testOperatorPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return newTestServerWithOperatorHash(t, string(hash))
}

// newTestServerWithOperatorHash builds the router; an empty hash means no operator is configured
func newTestServerWithOperatorHash(t *testing.T, hash string) *testServer {
	t.Helper()
	kv := store.NewMemoryStore()
	publisher := eventmocks.NewMockPublisher()
	ledger := order.NewLedger(kv, publisher)
	handlers := NewHandlers(product.DefaultCatalog(), cart.NewRegistry(kv, 100), ledger, checkout.NewService(ledger))

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	authHandlers := NewAuthHandlers(auth.Operator{Email: testOperatorEmail, PasswordHash: hash}, jwtService)

	return &testServer{
		handler:   NewRouter(RouterConfig{Handlers: handlers, AuthHandlers: authHandlers, JWTService: jwtService}),
		ledger:    ledger,
		publisher: publisher,
		jwt:       jwtService,
	}
}

func (s *testServer) do(t *testing.T, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.doAuth(t, method, path, session, "", body)
}

func (s *testServer) doAuth(t *testing.T, method, path, session, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func checkoutBody() map[string]any {
	return map[string]any{
		"customer": map[string]any{
			"firstName": "Jane",
			"lastName":  "Doe",
			"email":     "jane@example.com",
			"phone":     "555-0100",
			"address": map[string]string{
				"street":  "1 Main St",
				"city":    "Springfield",
				"state":   "IL",
				"zipCode": "62701",
				"country": "US",
			},
		},
		"payment": map[string]string{"cardholderName": "Jane Doe", "cardNumber": "4111111111111111"},
	}
}

// ============================================
// Product Tests
// ============================================

func TestGetProducts_FilterAndSort(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/products?category=Electronics&sortBy=price-asc&maxPrice=1000", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	products := decode[[]product.Product](t, rec)
	require.NotEmpty(t, products)
	limit := decimal.NewFromInt(1000)
	for i, p := range products {
		assert.Equal(t, "Electronics", p.Category)
		assert.True(t, p.Price.LessThanOrEqual(limit))
		if i > 0 {
			assert.True(t, products[i-1].Price.LessThanOrEqual(p.Price))
		}
	}
}

func TestGetProducts_BadQuery(t *testing.T) {
	s := newTestServer(t)

	tests := []string{
		"/products?sortBy=cheapest",
		"/products?minPrice=abc",
		"/products?maxPrice=1,000",
	}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, path, "", nil).Code)
		})
	}
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/products/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[product.Product](t, rec).ID)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/products/9999", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/products/abc", "", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, s.do(t, http.MethodPost, "/products", "", nil).Code)
}

func TestSearchAndCategories(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]string](t, rec))

	rec = s.do(t, http.MethodGet, "/products/search?q=zzzz-no-match", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]product.Product](t, rec))
}

// ============================================
// Cart Tests
// ============================================

func TestCart_AddUpdateRemove(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/cart/items", "s1", map[string]int{"productId": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[CartView](t, rec)
	assert.Equal(t, 2, view.Count)
	assert.True(t, view.Pricing.GrandTotal.Equal(view.Pricing.Subtotal.Add(view.Pricing.ShippingCost).Add(view.Pricing.TaxAmount)))

	rec = s.do(t, http.MethodPut, "/cart/items/1", "s1", map[string]int{"quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[CartView](t, rec).Count)

	rec = s.do(t, http.MethodDelete, "/cart/items/1", "s1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[CartView](t, rec).IsEmpty())
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodPost, "/cart/items", "alice", map[string]int{"productId": 1, "quantity": 1})

	assert.Equal(t, 1, decode[CartView](t, s.do(t, http.MethodGet, "/cart", "alice", nil)).Count)
	assert.Equal(t, 0, decode[CartView](t, s.do(t, http.MethodGet, "/cart", "bob", nil)).Count)
}

func TestCart_AddItem_Rejected(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		body     any
		expected int
	}{
		{"zero quantity", map[string]int{"productId": 1, "quantity": 0}, http.StatusBadRequest},
		{"negative quantity", map[string]int{"productId": 1, "quantity": -1}, http.StatusBadRequest},
		{"unknown product", map[string]int{"productId": 9999, "quantity": 1}, http.StatusNotFound},
		{"over stock", map[string]int{"productId": 1, "quantity": 100000}, http.StatusConflict},
		{"bad json", "not-an-object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/cart/items", "s1", tt.body)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
	assert.Equal(t, 0, decode[CartView](t, s.do(t, http.MethodGet, "/cart", "s1", nil)).Count)
}

func TestCart_Clear(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/cart/items", "s1", map[string]int{"productId": 2, "quantity": 1})

	rec := s.do(t, http.MethodDelete, "/cart", "s1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[CartView](t, rec).IsEmpty())
}

// ============================================
// Checkout / Order Tests
// ============================================

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/cart/items", "s1", map[string]int{"productId": 1, "quantity": 1})

	rec := s.do(t, http.MethodPost, "/checkout", "s1", checkoutBody())

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode[checkout.Result](t, rec)
	assert.Regexp(t, `^ORD-[0-9A-Z]+-[0-9A-Z]{5}$`, result.Order.ID)
	assert.Equal(t, order.StatusPending, result.Order.Status)
	assert.True(t, result.Order.Total.Equal(result.Pricing.GrandTotal))
	assert.True(t, decode[CartView](t, s.do(t, http.MethodGet, "/cart", "s1", nil)).IsEmpty())

	rec = s.do(t, http.MethodGet, "/orders/"+result.Order.ID+"?email=jane@example.com", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, result.Order.ID, decode[order.Order](t, rec).ID)
}

func TestCheckout_ConcurrentRequestsPlaceOneOrder(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/cart/items", "s1", map[string]int{"productId": 1, "quantity": 1})

	const attempts = 6
	codes := make(chan int, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			_ = json.NewEncoder(&buf).Encode(checkoutBody())
			req := httptest.NewRequest(http.MethodPost, "/checkout", &buf)
			req.Header.Set(SessionHeader, "s1")
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	created := 0
	for code := range codes {
		if code == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusBadRequest, code)
		}
	}
	assert.Equal(t, 1, created)
	assert.Len(t, s.ledger.GetByCustomerEmail(context.Background(), "jane@example.com"), 1)
}

func TestCheckout_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/checkout", "empty", checkoutBody())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.do(t, http.MethodPost, "/cart/items", "s1", map[string]int{"productId": 1, "quantity": 1})
	body := checkoutBody()
	body["customer"].(map[string]any)["email"] = "nope"
	rec = s.do(t, http.MethodPost, "/checkout", "s1", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, decode[CartView](t, s.do(t, http.MethodGet, "/cart", "s1", nil)).Count)
}

func placeTestOrder(t *testing.T, s *testServer) checkout.Result {
	t.Helper()
	s.do(t, http.MethodPost, "/cart/items", "s1", map[string]int{"productId": 1, "quantity": 1})
	rec := s.do(t, http.MethodPost, "/checkout", "s1", checkoutBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[checkout.Result](t, rec)
}

func TestGetOrder_RequiresMatchingEmail(t *testing.T) {
	s := newTestServer(t)
	placed := placeTestOrder(t, s)
	path := "/orders/" + placed.Order.ID

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"no email", "", http.StatusBadRequest},
		{"other customer", "?email=mallory@example.com", http.StatusNotFound},
		{"different case", "?email=JANE@example.com", http.StatusNotFound},
		{"owner", "?email=jane@example.com", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, path+tt.query, "", nil)
			assert.Equal(t, tt.expected, rec.Code)
			if tt.expected != http.StatusOK {
				assert.NotContains(t, rec.Body.String(), "555-0100")
			}
		})
	}

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/orders/ORD-NOPE?email=jane@example.com", "", nil).Code)
}

func TestGetOrders_OperatorOnly(t *testing.T) {
	s := newTestServer(t)
	placeTestOrder(t, s)

	rec := s.do(t, http.MethodGet, "/orders?email=jane@example.com", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "555-0100")

	token := login(t, s)
	rec = s.doAuth(t, http.MethodGet, "/orders?email=jane@example.com", "", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]order.Order](t, rec), 1)

	rec = s.doAuth(t, http.MethodGet, "/orders?email=nobody@example.com", "", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, s.doAuth(t, http.MethodGet, "/orders", "", token, nil).Code)
}

// ============================================
// Operator Tests
// ============================================

func login(t *testing.T, s *testServer) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": testOperatorEmail, "password": testOperatorPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	return decode[LoginResponse](t, rec).Token
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	token := login(t, s)
	claims, err := s.jwt.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	rec := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": testOperatorEmail, "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/cart/items", "s1", map[string]int{"productId": 1, "quantity": 1})
	placed := decode[checkout.Result](t, s.do(t, http.MethodPost, "/checkout", "s1", checkoutBody()))
	path := "/orders/" + placed.Order.ID + "/status"

	statusReq := func(token, status string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(map[string]string{"status": status}))
		req := httptest.NewRequest(http.MethodPut, path, &buf)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, statusReq("", "confirmed").Code)

	token := login(t, s)
	assert.Equal(t, http.StatusBadRequest, statusReq(token, "cancelled").Code)
	assert.Equal(t, http.StatusConflict, statusReq(token, "shipped").Code)

	rec := statusReq(token, "confirmed")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, order.StatusConfirmed, decode[order.Order](t, rec).Status)
	assert.Equal(t, []string{order.EventOrderPlaced, order.EventOrderStatusChanged}, s.publisher.EventTypes())
}

func TestRouter_NoOperatorConfigured(t *testing.T) {
	s := newTestServerWithOperatorHash(t, "")
	placed := placeTestOrder(t, s)

	// A token signed with the server's own secret must still get nowhere
	forged, _, err := s.jwt.GenerateToken(testOperatorEmail, auth.RoleAdmin)
	require.NoError(t, err)

	rec := s.doAuth(t, http.MethodPut, "/orders/"+placed.Order.ID+"/status", "", forged, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, http.StatusNotFound, s.doAuth(t, http.MethodGet, "/orders?email=jane@example.com", "", forged, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": testOperatorEmail, "password": "x"}).Code)
	assert.Equal(t, http.StatusNotFound, s.doAuth(t, http.MethodGet, "/auth/me", "", forged, nil).Code)

	stored, ok := s.ledger.GetByID(context.Background(), placed.Order.ID)
	require.True(t, ok)
	assert.Equal(t, order.StatusPending, stored.Status)
}

func TestCart_AddItem_ConcurrentAddsRespectStock(t *testing.T) {
	s := newTestServer(t)
	p, ok := product.DefaultCatalog().GetByID(1)
	require.True(t, ok)
	require.Greater(t, p.StockQuantity, 0)

	attempts := p.StockQuantity + 5
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			_ = json.NewEncoder(&buf).Encode(map[string]int{"productId": 1, "quantity": 1})
			req := httptest.NewRequest(http.MethodPost, "/cart/items", &buf)
			req.Header.Set(SessionHeader, "stock")
			s.handler.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	view := decode[CartView](t, s.do(t, http.MethodGet, "/cart", "stock", nil))
	assert.Equal(t, p.StockQuantity, view.Count)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/products", "", nil)

	rec := s.do(t, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
}
