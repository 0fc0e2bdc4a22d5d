package html

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"procure.GO/core/flash"
	"procure.GO/html/parts"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template is the echo.Renderer for server-side pages.
type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// TemplateFuncs are the helpers available to every page.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"date": func(d datatypes.Date) string {
			t := time.Time(d)
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
	}
}

// NewTemplate parses the embedded page templates.
func NewTemplate() *Template {
	return &Template{
		Templates: template.Must(template.New("").Funcs(TemplateFuncs()).ParseFS(templateFS, "templates/*.html")),
	}
}

// page builds the common template data: title, flashes and inline CSS.
func page(c echo.Context, f *flash.Flasher, title string, extra map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"Title":   title,
		"CSS":     parts.CriticalCSS(),
		"Flashes": f.Pop(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
