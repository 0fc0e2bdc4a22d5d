package html

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"procure.GO/core/apperr"
	"procure.GO/core/flash"
	catalogService "procure.GO/service/catalog"
)

// maxRowFlashes caps how many per-row import problems are flashed at once.
const maxRowFlashes = 10

// RegisterImportHTMLRoutes mounts the catalog upload page.
func RegisterImportHTMLRoutes(e *echo.Echo, db *gorm.DB, f *flash.Flasher, indexer catalogService.Indexer) {
	e.GET("/import", func(c echo.Context) error {
		return c.Render(http.StatusOK, "import.html", page(c, f, "Import parts", map[string]interface{}{
			"Columns": catalogService.RequiredColumns,
		}))
	})

	e.POST("/import", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			f.Add(c, flash.Danger, "Please choose a CSV file to upload.")
			return c.Redirect(http.StatusFound, "/import")
		}
		src, err := fh.Open()
		if err != nil {
			f.Add(c, flash.Danger, "Error trying to read the file: "+err.Error())
			return c.Redirect(http.StatusFound, "/import")
		}
		defer src.Close()

		res, err := catalogService.ImportParts(c.Request().Context(), db, fh.Filename, src, catalogService.ImportOptions{Indexer: indexer})
		if err != nil {
			if apperr.IsFormat(err) {
				f.Add(c, flash.Danger, err.Error())
				return c.Redirect(http.StatusFound, "/")
			}
			log.Printf("html: import %s: %v", fh.Filename, err)
			f.Add(c, flash.Danger, "Error trying to read the file: "+err.Error())
			return c.Redirect(http.StatusFound, "/import")
		}

		f.Add(c, flash.Success, fmt.Sprintf("%d successfully imported articles.", res.Added))
		if res.Skipped > 0 {
			f.Add(c, flash.Info, fmt.Sprintf("%d parts already existed and were left unchanged.", res.Skipped))
		}
		for i, re := range res.Errors {
			if i == maxRowFlashes {
				f.Add(c, flash.Warning, fmt.Sprintf("... and %d more rows with errors.", len(res.Errors)-maxRowFlashes))
				break
			}
			f.Add(c, flash.Warning, re.String())
		}
		return c.Redirect(http.StatusFound, "/")
	})
}
