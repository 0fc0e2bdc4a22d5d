package order

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"procure.GO/api"
	"procure.GO/core/apperr"
	orderService "procure.GO/service/order"
)

const dateLayout = "2006-01-02"

func init() {
	api.RegisterModule(RegisterOrderRoutes)
}

// lineBody is one JSON order line. Item numbers follow array position.
type lineBody struct {
	PartNumber string `json:"part_number"`
	Quantity   *int   `json:"quantity"`
	ReqDate    string `json:"req_date"`
}

type orderBody struct {
	Supplier     string     `json:"supplier"`
	CreationDate string     `json:"creation_date"`
	Status       string     `json:"status"`
	Lines        []lineBody `json:"lines"`
}

// toRequest converts the JSON body; blank dates become nil so the line is filtered out.
func (b orderBody) toRequest() (orderService.OrderRequest, error) {
	req := orderService.OrderRequest{Supplier: b.Supplier, Status: b.Status}
	fields := map[string]string{}
	if s := strings.TrimSpace(b.CreationDate); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			fields["creation_date"] = "invalid_date"
		}
		req.CreationDate = d
	}
	for i, l := range b.Lines {
		entry := orderService.LineEntry{Item: i + 1, PartNumber: l.PartNumber, Quantity: l.Quantity}
		if s := strings.TrimSpace(l.ReqDate); s != "" {
			d, err := time.Parse(dateLayout, s)
			if err != nil {
				fields["lines["+strconv.Itoa(i)+"].req_date"] = "invalid_date"
			} else {
				entry.ReqDate = &d
			}
		}
		req.Lines = append(req.Lines, entry)
	}
	if len(fields) > 0 {
		return req, &apperr.ValidationError{Message: "invalid dates", Fields: fields}
	}
	return req, nil
}

func RegisterOrderRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := orderService.NewService(db)
	g := apiGroup.Group("/orders")

	g.GET("", func(c echo.Context) error {
		orders, err := svc.List(c.Request().Context())
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"orders": orders})
	})

	g.POST("", func(c echo.Context) error {
		var body orderBody
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		req, err := body.toRequest()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		res, err := svc.Create(c.Request().Context(), req)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"po_number":      res.Order.Number(),
			"order":          res.Order,
			"adjusted_items": res.Adjusted,
		})
	})

	g.GET("/:number", func(c echo.Context) error {
		view, err := svc.Get(c.Request().Context(), c.Param("number"))
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, view)
	})

	g.DELETE("/:number/lines/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid line id"})
		}
		view, err := svc.DeleteLine(c.Request().Context(), c.Param("number"), uint(id))
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, view)
	})

	g.POST("/:number/recompute", func(c echo.Context) error {
		ctx := c.Request().Context()
		view, err := svc.Get(ctx, c.Param("number"))
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		total, err := svc.RecomputeTotal(ctx, view.Order.ID)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"po_number": view.Order.Number(), "total_price": total})
	})
}
