package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"pt.arrendado.flatfinder/internal/model"
)

// httpError maps the service error taxonomy onto HTTP statuses. Anything
// unclassified passes through and surfaces as an opaque 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, model.ErrorMissingCredential),
		errors.Is(err, model.ErrorInvalidCredential):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrorForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, model.ErrorFlatNotFound),
		errors.Is(err, model.ErrorUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrorEmptyContent),
		errors.Is(err, model.ErrorUserExists),
		errors.Is(err, model.ErrorInvalidEmailOrPassword):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}
