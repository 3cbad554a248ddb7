package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/scheduler"
	"github.com/chrisdamba/foodstore/internal/session"
	"github.com/chrisdamba/foodstore/internal/storage"
	"github.com/chrisdamba/foodstore/internal/storefront"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }
func (c *stepClock) After(d time.Duration) <-chan time.Time {
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func newTestServer(t *testing.T) (*Server, *storefront.App, *stepClock) {
	t.Helper()
	clock := &stepClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	app := storefront.New(catalog.Default(), session.New(storage.NewMemory(), nil), scheduler.New(clock), storefront.DefaultOptions())
	return New(app, 10*time.Millisecond), app, clock
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func TestHealthAndHome(t *testing.T) {
	s, _, _ := newTestServer(t)
	if rec := do(t, s, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec := do(t, s, http.MethodGet, "/", "")
	var home storefront.Home
	decode(t, rec, &home)
	if len(home.Restaurants) != 3 || len(home.Featured) != 4 {
		t.Fatalf("unexpected home %+v", home)
	}
}

func TestMenuFilter(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/menu/filter", `{"search":"burger","category":"Burgers"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var menu storefront.Menu
	decode(t, rec, &menu)
	if len(menu.Items) != 3 || menu.Query != "burger" {
		t.Fatalf("unexpected menu %+v", menu)
	}
}

func TestCartRoutes(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/cart/items", `{"id": 1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodPost, "/cart/items", `{"id": "1"}`)
	var cart storefront.Cart
	decode(t, rec, &cart)
	if cart.Header.CartCount != 2 {
		t.Fatalf("expected count 2, got %d", cart.Header.CartCount)
	}

	if rec := do(t, s, http.MethodPost, "/cart/items", `{"id": 999}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/cart/items", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = do(t, s, http.MethodPatch, "/cart/items/1", `{"quantity": 150}`)
	var q quantityResponse
	decode(t, rec, &q)
	if q.Outcome.Applied || q.Outcome.Notice != "Maximum quantity per item is 99" || q.Cart.Header.CartCount != 2 {
		t.Fatalf("unexpected ceiling response %+v", q)
	}

	rec = do(t, s, http.MethodPatch, "/cart/items/1", `{"quantity": 5}`)
	q = quantityResponse{}
	decode(t, rec, &q)
	if !q.Outcome.Applied || q.Cart.Header.CartCount != 5 {
		t.Fatalf("unexpected update response %+v", q)
	}

	rec = do(t, s, http.MethodDelete, "/cart/items/1", "")
	cart = storefront.Cart{}
	decode(t, rec, &cart)
	if !cart.Empty {
		t.Fatal("expected empty cart")
	}

	if rec := do(t, s, http.MethodPatch, "/cart/items/abc", `{"quantity": 1}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartRoutesParseBaseTenWholeNumbers(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"leading zero id is decimal", http.MethodPost, "/cart/items", `{"id":"010"}`, http.StatusNotFound, "UNKNOWN_ITEM"},
		{"fractional id", http.MethodPost, "/cart/items", `{"id":1.5}`, http.StatusBadRequest, "INVALID_ID"},
		{"boolean id", http.MethodPost, "/cart/items", `{"id":true}`, http.StatusBadRequest, "INVALID_ID"},
		{"fractional quantity", http.MethodPatch, "/cart/items/1", `{"quantity":2.9}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"fractional quantity string", http.MethodPatch, "/cart/items/1", `{"quantity":"2.9"}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"hex path id", http.MethodPatch, "/cart/items/0x1", `{"quantity":2}`, http.StatusBadRequest, "INVALID_ID"},
		{"not in cart", http.MethodPatch, "/cart/items/2", `{"quantity":2}`, http.StatusNotFound, "NOT_IN_CART"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, app, _ := newTestServer(t)
			_ = app.AddToCart(1)
			rec := do(t, s, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			var resp errorResponse
			decode(t, rec, &resp)
			if resp.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, resp.Code)
			}
			line, _ := app.Store().Line(1)
			if app.Store().CartCount() != 1 || line.Quantity != 1 {
				t.Fatalf("cart must be untouched, got %+v", app.Store().Cart())
			}
		})
	}

	s, app, _ := newTestServer(t)
	if rec := do(t, s, http.MethodPost, "/cart/items", `{"id":"08"}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if _, ok := app.Store().Line(8); !ok {
		t.Fatalf("expected item 8 in the cart, got %+v", app.Store().Cart())
	}
}

func TestRestaurantRoute(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/restaurants/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page storefront.RestaurantPage
	decode(t, rec, &page)
	if page.Restaurant.ID != 1 || len(page.Items) == 0 {
		t.Fatalf("unexpected restaurant page %+v", page)
	}
	if rec := do(t, s, http.MethodGet, "/restaurants/9", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/restaurants/x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoginAndCheckout(t *testing.T) {
	s, app, clock := newTestServer(t)

	if rec := do(t, s, http.MethodPost, "/checkout", `{}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/login", `{"email":"bad","password":"x"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/login", `{"email":"sam@example.com","password":"secret1"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	clock.now = clock.now.Add(time.Second)
	app.Tick()
	if user, ok := app.Store().User(); !ok || user.Name != "Sam" {
		t.Fatalf("expected Sam logged in, got %+v", user)
	}

	if rec := do(t, s, http.MethodPost, "/checkout", `{}`); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for empty cart, got %d", rec.Code)
	}

	do(t, s, http.MethodPost, "/cart/items", `{"id": 1}`)
	do(t, s, http.MethodPost, "/checkout/field", `{"field":"zipCode","value":"12345","event":"blur"}`)
	rec = do(t, s, http.MethodGet, "/checkout", "")
	var view storefront.Checkout
	decode(t, rec, &view)
	if view.Form.Errors["zipCode"] != "Please enter a valid ZIP code (e.g., 123456)" {
		t.Fatalf("unexpected form errors %v", view.Form.Errors)
	}

	rec = do(t, s, http.MethodPost, "/checkout", `{"address":"","city":"Springfield","zipCode":"123456","phone":"5551234567"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/checkout", `{"address":"1 Main Street","paymentMethod":"cash"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, s, http.MethodPost, "/checkout", `{}`); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 while submitting, got %d", rec.Code)
	}

	clock.now = clock.now.Add(2 * time.Second)
	app.Tick()
	rec = do(t, s, http.MethodGet, "/checkout", "")
	view = storefront.Checkout{}
	decode(t, rec, &view)
	if view.State != "placed" || view.Receipt == nil || view.Receipt.Delivery.PaymentMethod != "cash" {
		t.Fatalf("unexpected placed view %+v", view)
	}

	rec = do(t, s, http.MethodPost, "/logout", "")
	var out map[string]string
	decode(t, rec, &out)
	if out["redirect"] != "/" {
		t.Fatalf("unexpected logout response %v", out)
	}
}

func TestFieldEventValidation(t *testing.T) {
	s, _, _ := newTestServer(t)
	if rec := do(t, s, http.MethodPost, "/register/field", `{"field":"nope","value":"x"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/register/field", `{"field":"name","event":"hover"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	rec := do(t, s, http.MethodPost, "/register/field", `{"field":"password","value":"Secret12"}`)
	var form storefront.Form
	decode(t, rec, &form)
	if form.PasswordStrength != "strong" {
		t.Fatalf("expected strong, got %q", form.PasswordStrength)
	}
}
