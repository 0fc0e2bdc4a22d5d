package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"procure.GO/core/apperr"
)

// ErrorJSON writes err with the status matching its kind.
func ErrorJSON(c echo.Context, err error) error {
	var (
		verr *apperr.ValidationError
		perr *apperr.PartNotFoundError
		nerr *apperr.NotFoundError
		ferr *apperr.FormatError
	)
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": verr.Message, "fields": verr.Fields})
	case errors.As(err, &perr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": perr.Error(), "parts": perr.PartNumbers})
	case errors.As(err, &nerr):
		return c.JSON(http.StatusNotFound, echo.Map{"error": nerr.Error()})
	case errors.As(err, &ferr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ferr.Error()})
	}
	log.Printf("api: %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
