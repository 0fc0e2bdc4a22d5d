package html

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"procure.GO/core/apperr"
	"procure.GO/core/flash"
	"procure.GO/model/entity"
	orderService "procure.GO/service/order"
)

const (
	dateLayout = "2006-01-02"
	// blankLines is the number of empty rows a fresh order form offers.
	blankLines = 5
)

type formLine struct {
	Item        int
	PartNumber  string
	Description string
	Quantity    string
	ReqDate     string
	Unit        string
	UnitPrice   string
	LineTotal   string
}

type orderForm struct {
	CreationDate string
	Supplier     string
	Status       string
	Lines        []formLine
}

func newOrderForm(now time.Time) orderForm {
	f := orderForm{CreationDate: now.Format(dateLayout), Status: entity.StatusOpen}
	for i := 0; i < blankLines; i++ {
		f.Lines = append(f.Lines, formLine{Item: i + 1})
	}
	return f
}

// parseOrderForm reads the posted header fields and every lines-N-* row.
// Rows are numbered by position; a row that is blank stays in the form but
// is dropped by the service.
func parseOrderForm(c echo.Context) (orderForm, orderService.OrderRequest, map[string]string) {
	form := orderForm{
		CreationDate: strings.TrimSpace(c.FormValue("creation_date")),
		Supplier:     strings.TrimSpace(c.FormValue("supplier")),
		Status:       strings.TrimSpace(c.FormValue("status")),
	}
	req := orderService.OrderRequest{Supplier: form.Supplier, Status: form.Status}
	problems := map[string]string{}
	if form.CreationDate != "" {
		if d, err := time.Parse(dateLayout, form.CreationDate); err == nil {
			req.CreationDate = d
		} else {
			problems["creation_date"] = "invalid_date"
		}
	}

	values, _ := c.FormParams()
	for i := 0; ; i++ {
		prefix := fmt.Sprintf("lines-%d-", i)
		if _, ok := values[prefix+"part_number"]; !ok {
			if _, ok := values[prefix+"quantity"]; !ok {
				break
			}
		}
		fl := formLine{
			Item:        i + 1,
			PartNumber:  strings.TrimSpace(values.Get(prefix + "part_number")),
			Description: values.Get(prefix + "description"),
			Quantity:    strings.TrimSpace(values.Get(prefix + "quantity")),
			ReqDate:     strings.TrimSpace(values.Get(prefix + "req_date")),
			Unit:        values.Get(prefix + "unit"),
			UnitPrice:   values.Get(prefix + "unit_price"),
			LineTotal:   values.Get(prefix + "line_total"),
		}
		form.Lines = append(form.Lines, fl)

		entry := orderService.LineEntry{Item: fl.Item, PartNumber: fl.PartNumber}
		if fl.Quantity != "" {
			q, err := parseQuantity(fl.Quantity)
			if err != nil {
				problems[fmt.Sprintf("lines[%d].quantity", i)] = err.Error()
			} else {
				entry.Quantity = &q
			}
		}
		if fl.ReqDate != "" {
			d, err := time.Parse(dateLayout, fl.ReqDate)
			if err != nil {
				problems[fmt.Sprintf("lines[%d].req_date", i)] = "invalid_date"
			} else {
				entry.ReqDate = &d
			}
		}
		req.Lines = append(req.Lines, entry)
	}
	for len(form.Lines) < blankLines {
		form.Lines = append(form.Lines, formLine{Item: len(form.Lines) + 1})
	}
	return form, req, problems
}

// parseQuantity accepts whole numbers, also when written as "10.0".
func parseQuantity(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errors.New("not_a_number")
	}
	if f != math.Trunc(f) {
		return 0, errors.New("must_be_whole")
	}
	return int(f), nil
}

func createErrorStatus(err error) int {
	switch {
	case apperr.IsValidation(err), apperr.IsPartNotFound(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func viewURL(poNumber string) string {
	return "/view/" + url.PathEscape(poNumber)
}

// createdMessage is the single flash of a successful create. Items raised
// to the minimum order quantity are listed after the total.
func createdMessage(po *entity.PurchaseOrder, adjusted []int) string {
	msg := fmt.Sprintf("PO %s created successfully. Total: %s", po.Number(), po.TotalPrice.StringFixed(2))
	if len(adjusted) == 0 {
		return msg
	}
	raised := make([]string, 0, len(adjusted))
	for _, item := range adjusted {
		for _, l := range po.Lines {
			if l.Item == item {
				raised = append(raised, fmt.Sprintf("item %d to %d", item, l.Quantity))
			}
		}
	}
	return msg + ". Quantity raised to the minimum order quantity: " + strings.Join(raised, ", ") + "."
}

// RegisterOrderHTMLRoutes mounts the order listing, form, view, search and line deletion pages.
func RegisterOrderHTMLRoutes(e *echo.Echo, db *gorm.DB, f *flash.Flasher) {
	svc := orderService.NewService(db)

	e.GET("/", func(c echo.Context) error {
		orders, err := svc.List(c.Request().Context())
		if err != nil {
			log.Printf("html: list orders: %v", err)
			f.Add(c, flash.Danger, "Could not load purchase orders.")
		}
		return c.Render(http.StatusOK, "index.html", page(c, f, "Purchase orders", map[string]interface{}{
			"Orders": orders,
		}))
	})

	e.GET("/new_po", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/add")
	})

	e.GET("/add", func(c echo.Context) error {
		return c.Render(http.StatusOK, "add.html", page(c, f, "New purchase order", map[string]interface{}{
			"Form": newOrderForm(time.Now()),
		}))
	})

	e.POST("/add", func(c echo.Context) error {
		form, req, problems := parseOrderForm(c)
		if len(problems) > 0 {
			err := &apperr.ValidationError{Message: "invalid order form", Fields: problems}
			f.Add(c, flash.Danger, err.Error())
			return c.Render(http.StatusUnprocessableEntity, "add.html", page(c, f, "New purchase order", map[string]interface{}{
				"Form": form,
			}))
		}

		res, err := svc.Create(c.Request().Context(), req)
		if err != nil {
			if apperr.IsValidation(err) || apperr.IsPartNotFound(err) {
				f.Add(c, flash.Danger, err.Error())
			} else {
				f.Add(c, flash.Danger, "Could not create the PO: "+err.Error())
			}
			return c.Render(createErrorStatus(err), "add.html", page(c, f, "New purchase order", map[string]interface{}{
				"Form": form,
			}))
		}

		po := res.Order
		f.Add(c, flash.Success, createdMessage(po, res.Adjusted))
		return c.Render(http.StatusOK, "add.html", page(c, f, "New purchase order", map[string]interface{}{
			"Form":      newOrderForm(time.Now()),
			"POCreated": true,
			"PONumber":  po.Number(),
		}))
	})

	e.GET("/view/:po_code", func(c echo.Context) error {
		code := c.Param("po_code")
		view, err := svc.Get(c.Request().Context(), code)
		if err != nil {
			status := http.StatusInternalServerError
			if apperr.IsNotFound(err) {
				status = http.StatusNotFound
				f.Add(c, flash.Warning, "PO not found.")
			} else {
				log.Printf("html: view %s: %v", code, err)
				f.Add(c, flash.Danger, "Could not load the PO.")
			}
			return c.Render(status, "view.html", page(c, f, code, nil))
		}
		return c.Render(http.StatusOK, "view.html", page(c, f, view.Order.Number(), map[string]interface{}{
			"Order":     view.Order,
			"Lines":     view.Lines,
			"CurrentPO": view.Order.Number(),
		}))
	})

	e.GET("/search_po", func(c echo.Context) error {
		out, err := svc.Search(c.Request().Context(), c.QueryParam("po_code"), c.QueryParam("current_po"))
		if err != nil {
			log.Printf("html: search: %v", err)
			f.Add(c, flash.Danger, "Search failed.")
			return c.Redirect(http.StatusFound, "/")
		}
		if out.Found {
			return c.Redirect(http.StatusFound, viewURL(out.PONumber))
		}
		f.Add(c, flash.Warning, out.Warning)
		if out.Fallback != "" {
			return c.Redirect(http.StatusFound, viewURL(out.Fallback))
		}
		return c.Redirect(http.StatusFound, "/")
	})

	e.GET("/po/:po_code/delete_line/:line_id", func(c echo.Context) error {
		code := c.Param("po_code")
		lineID, err := strconv.ParseUint(c.Param("line_id"), 10, 64)
		if err != nil {
			f.Add(c, flash.Danger, "Line not found.")
			return c.Redirect(http.StatusFound, viewURL(code))
		}
		view, err := svc.DeleteLine(c.Request().Context(), code, uint(lineID))
		if err != nil {
			var nf *apperr.NotFoundError
			switch {
			case errors.As(err, &nf) && nf.Kind == "order":
				f.Add(c, flash.Danger, "PO not found.")
				return c.Redirect(http.StatusFound, "/")
			case errors.As(err, &nf):
				f.Add(c, flash.Danger, "Line not found in this PO.")
			default:
				log.Printf("html: delete line %d of %s: %v", lineID, code, err)
				f.Add(c, flash.Danger, "Could not delete the line.")
			}
			return c.Redirect(http.StatusFound, viewURL(code))
		}
		f.Add(c, flash.Success, fmt.Sprintf("Line deleted. New total: %s", view.Order.TotalPrice.StringFixed(2)))
		return c.Redirect(http.StatusFound, viewURL(view.Order.Number()))
	})
}
