package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func init() {
	RegisterRoute(func(e *echo.Echo, db *gorm.DB) error {
		e.GET("/health", func(c echo.Context) error {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request().Context())
			}
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "db unreachable"})
			}
			return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
		})
		return nil
	})
}
