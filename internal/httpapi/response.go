package httpapi

import (
	"errors"
	"net/http"

	"github.com/chrisdamba/foodstore/internal/checkout"
	"github.com/chrisdamba/foodstore/internal/storefront"
	"github.com/chrisdamba/foodstore/internal/validation"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, errorResponse{Error: message, Code: code, Details: details})
}

// failWith maps domain errors onto status codes; details is the view the
// client should render next to the error.
func failWith(c echo.Context, err error, details interface{}) error {
	switch {
	case errors.Is(err, storefront.ErrUnknownItem):
		return fail(c, http.StatusNotFound, "UNKNOWN_ITEM", err.Error(), details)
	case errors.Is(err, storefront.ErrNotInCart):
		return fail(c, http.StatusNotFound, "NOT_IN_CART", err.Error(), details)
	case errors.Is(err, storefront.ErrUnknownRestaurant):
		return fail(c, http.StatusNotFound, "UNKNOWN_RESTAURANT", err.Error(), details)
	case errors.Is(err, checkout.ErrLoginRequired):
		return fail(c, http.StatusUnauthorized, "LOGIN_REQUIRED", err.Error(), details)
	case errors.Is(err, checkout.ErrEmptyCart):
		return fail(c, http.StatusConflict, "EMPTY_CART", err.Error(), details)
	case errors.Is(err, checkout.ErrNotIdle), errors.Is(err, storefront.ErrSubmitting):
		return fail(c, http.StatusConflict, "IN_PROGRESS", err.Error(), details)
	case errors.Is(err, checkout.ErrOrderPlaced):
		return fail(c, http.StatusConflict, "ORDER_PLACED", err.Error(), details)
	case validation.IsValidation(err):
		return fail(c, http.StatusUnprocessableEntity, "INVALID_FORM", "Please fix the highlighted fields", details)
	}
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
}

// parseIDParam reads a base-10 path id.
func parseIDParam(c echo.Context, name string) (int, error) {
	return validation.ParseWholeNumber(c.Param(name))
}

// bindMap decodes a JSON object body without committing to field types.
func bindMap(c echo.Context) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return nil, err
	}
	return body, nil
}
