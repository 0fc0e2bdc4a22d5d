package part

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"procure.GO/api"
	catalogService "procure.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterPartRoutes)
	api.RegisterRoute(func(e *echo.Echo, db *gorm.DB) error {
		e.GET("/lookup_part/:part_number", lookupHandler(db))
		return nil
	})
}

func lookupHandler(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := catalogService.Lookup(c.Request().Context(), db, c.Param("part_number"))
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, res)
	}
}

func RegisterPartRoutes(apiGroup *echo.Group, db *gorm.DB) {
	search := catalogService.NewSearchService(db)
	g := apiGroup.Group("/parts")

	g.GET("/:part_number", lookupHandler(db))

	g.GET("", func(c echo.Context) error {
		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
		}
		parts, err := search.Search(c.Request().Context(), q, 20)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"parts": parts})
	})

	// POST /api/parts/import – multipart CSV upload, field "file"
	g.POST("/import", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
		}
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		defer f.Close()

		res, err := catalogService.ImportParts(c.Request().Context(), db, fh.Filename, f, catalogService.ImportOptions{Indexer: search})
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})
}
