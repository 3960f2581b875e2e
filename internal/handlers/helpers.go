package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sharmaketan/shopkart/internal/service/order"
	"github.com/sharmaketan/shopkart/internal/service/review"
)

// serviceError maps service sentinel errors onto the HTTP taxonomy:
// validation 400, authorization 403, missing entity 404, conflict 409,
// anything else 500 with the underlying message.
func serviceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, order.ErrValidation) || errors.Is(err, review.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrForbidden) || errors.Is(err, review.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, order.ErrNotFound) || errors.Is(err, review.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
