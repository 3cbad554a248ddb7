package httpapi

import (
	"net/http"
	"time"

	"github.com/chrisdamba/foodstore/internal/storefront"
	"github.com/chrisdamba/foodstore/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

type sessionResponse struct {
	Header           storefront.Header `json:"header"`
	SearchQuery      string            `json:"searchQuery"`
	SelectedCategory string            `json:"selectedCategory"`
	CheckoutState    string            `json:"checkoutState"`
	PendingTasks     int               `json:"pendingTasks"`
}

type quantityResponse struct {
	Outcome storefront.QuantityOutcome `json:"outcome"`
	Cart    storefront.Cart            `json:"cart"`
}

type acceptedResponse struct {
	DueAt time.Time   `json:"dueAt"`
	View  interface{} `json:"view"`
}

func (s *Server) health(c echo.Context) error {
	return ok(c, map[string]string{"status": "ok"})
}

func (s *Server) session(c echo.Context) error {
	store := s.app.Store()
	return ok(c, sessionResponse{
		Header:           s.app.Header(),
		SearchQuery:      store.SearchQuery(),
		SelectedCategory: store.SelectedCategory(),
		CheckoutState:    s.app.CheckoutFlow().State(),
		PendingTasks:     s.app.Scheduler().Pending(),
	})
}

func (s *Server) home(c echo.Context) error {
	return ok(c, s.app.Home())
}

func (s *Server) menu(c echo.Context) error {
	return ok(c, s.app.Menu())
}

func (s *Server) filterMenu(c echo.Context) error {
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", err.Error())
	}
	if v, found := body["search"]; found {
		s.app.SetSearch(cast.ToString(v))
	}
	if v, found := body["category"]; found {
		s.app.SetCategory(cast.ToString(v))
	}
	return ok(c, s.app.Menu())
}

func (s *Server) restaurant(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid restaurant ID", nil)
	}
	page, err := s.app.Restaurant(id)
	if err != nil {
		return failWith(c, err, nil)
	}
	return ok(c, page)
}

func (s *Server) cart(c echo.Context) error {
	return ok(c, s.app.Cart())
}

func (s *Server) addCartItem(c echo.Context) error {
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", err.Error())
	}
	id, err := validation.ParseWholeNumber(body["id"])
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid menu item ID", nil)
	}
	if err := s.app.AddToCart(id); err != nil {
		return failWith(c, err, nil)
	}
	return c.JSON(http.StatusCreated, s.app.Cart())
}

func (s *Server) updateCartItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid menu item ID", nil)
	}
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", err.Error())
	}
	quantity, err := validation.ParseWholeNumber(body["quantity"])
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_QUANTITY", "Invalid quantity", nil)
	}
	outcome, err := s.app.SetQuantity(id, quantity)
	if err != nil {
		return failWith(c, err, nil)
	}
	return ok(c, quantityResponse{Outcome: outcome, Cart: s.app.Cart()})
}

func (s *Server) removeCartItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid menu item ID", nil)
	}
	s.app.RemoveItem(id)
	return ok(c, s.app.Cart())
}

func (s *Server) clearCart(c echo.Context) error {
	s.app.ClearCart()
	return ok(c, s.app.Cart())
}

func (s *Server) logout(c echo.Context) error {
	return ok(c, map[string]string{"redirect": s.app.Logout()})
}

func (s *Server) loginForm(c echo.Context) error {
	return ok(c, s.app.LoginForm())
}

func (s *Server) registerForm(c echo.Context) error {
	return ok(c, s.app.RegisterForm())
}

func (s *Server) submitLogin(c echo.Context) error {
	return s.submitAuth(c, s.app.LoginFlow(), s.app.LoginForm)
}

func (s *Server) submitRegister(c echo.Context) error {
	return s.submitAuth(c, s.app.RegisterFlow(), s.app.RegisterForm)
}

func (s *Server) loginField(c echo.Context) error {
	flow := s.app.LoginFlow()
	return s.fieldEvent(c, flow.Change, flow.Blur, func() interface{} { return s.app.LoginForm() })
}

func (s *Server) registerField(c echo.Context) error {
	flow := s.app.RegisterFlow()
	return s.fieldEvent(c, flow.Change, flow.Blur, func() interface{} { return s.app.RegisterForm() })
}

func (s *Server) submitAuth(c echo.Context, flow *storefront.AuthFlow, view func() storefront.Form) error {
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", err.Error())
	}
	if err := applyValues(flow.Form(), body, flow.Change); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FIELD", err.Error(), nil)
	}
	due, err := flow.Submit()
	if err != nil {
		return failWith(c, err, view())
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{DueAt: due, View: view()})
}

func (s *Server) checkout(c echo.Context) error {
	return ok(c, s.app.Checkout())
}

func (s *Server) submitCheckout(c echo.Context) error {
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", err.Error())
	}
	form := s.app.CheckoutFlow().Form()
	if err := applyValues(form, body, s.app.CheckoutChange); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FIELD", err.Error(), nil)
	}
	due, err := s.app.SubmitCheckout()
	if err != nil {
		return failWith(c, err, s.app.Checkout())
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{DueAt: due, View: s.app.Checkout()})
}

func (s *Server) checkoutField(c echo.Context) error {
	return s.fieldEvent(c, s.app.CheckoutChange, s.app.CheckoutBlur, func() interface{} { return s.app.Checkout() })
}

func (s *Server) resetCheckout(c echo.Context) error {
	if err := s.app.ResetCheckout(); err != nil {
		return failWith(c, err, s.app.Checkout())
	}
	return ok(c, s.app.Checkout())
}

// fieldEvent handles {"field": "...", "value": "...", "event": "change"|"blur"}.
// A missing event means change.
func (s *Server) fieldEvent(
	c echo.Context,
	change func(field, value string) error,
	blur func(field string) error,
	view func() interface{},
) error {
	body, err := bindMap(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", err.Error())
	}
	field := cast.ToString(body["field"])
	switch event := cast.ToString(body["event"]); event {
	case "", "change":
		err = change(field, cast.ToString(body["value"]))
	case "blur":
		err = blur(field)
	default:
		return fail(c, http.StatusBadRequest, "INVALID_EVENT", "Unknown field event", event)
	}
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FIELD", err.Error(), nil)
	}
	return ok(c, view())
}

// applyValues types every known field from body into the form, in the
// form's field order.
func applyValues(form *validation.Form, body map[string]interface{}, change func(field, value string) error) error {
	for _, field := range form.Fields() {
		v, found := body[field]
		if !found {
			continue
		}
		if err := change(field, cast.ToString(v)); err != nil {
			return err
		}
	}
	return nil
}
