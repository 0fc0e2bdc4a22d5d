package order

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"procure.GO/core/apperr"
	"procure.GO/model/entity"
	orderRepo "procure.GO/model/repository/order"
	partRepo "procure.GO/model/repository/part"
)

// OrderRequest is the input of Create.
type OrderRequest struct {
	Supplier     string      `json:"supplier"`
	CreationDate time.Time   `json:"creation_date"`
	Status       string      `json:"status"`
	Lines        []LineEntry `json:"lines"`
}

// CreateResult is the persisted order plus the items whose quantity was raised to the MOQ.
type CreateResult struct {
	Order    *entity.PurchaseOrder `json:"order"`
	Adjusted []int                 `json:"adjusted_items,omitempty"`
}

// OrderView is an order header with its lines ordered by item.
type OrderView struct {
	Order *entity.PurchaseOrder `json:"order"`
	Lines []entity.POLine       `json:"lines"`
}

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Create validates the request, resolves every line against the catalog and
// persists header and lines in one transaction.
func (s *Service) Create(ctx context.Context, req OrderRequest) (*CreateResult, error) {
	supplier := strings.TrimSpace(req.Supplier)
	if supplier == "" {
		return nil, &apperr.ValidationError{Message: "supplier is required", Fields: map[string]string{"supplier": "required"}}
	}

	entries := FilterLines(req.Lines)
	if len(entries) == 0 {
		return nil, &apperr.ValidationError{Message: "at least one line required"}
	}

	lines := make([]ValidLine, 0, len(entries))
	fields := map[string]string{}
	for i, e := range entries {
		vl, violations := ValidateLine(e)
		for f, code := range violations {
			fields[fmt.Sprintf("lines[%d].%s", i, f)] = code
		}
		lines = append(lines, vl)
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Message: "invalid order lines", Fields: fields}
	}

	created := req.CreationDate
	if created.IsZero() {
		y, m, d := s.now().UTC().Date()
		created = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.StatusOpen
	}

	result := &CreateResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parts, err := partRepo.NewPartRepository(tx).FindByPartNumbers(ctx, partNumbers(lines))
		if err != nil {
			return fmt.Errorf("load parts: %w", err)
		}
		if missing := missingParts(lines, parts); len(missing) > 0 {
			return &apperr.PartNotFoundError{PartNumbers: missing}
		}

		poLines := make([]entity.POLine, 0, len(lines))
		total := decimal.Zero
		for i, l := range lines {
			part := parts[l.PartNumber]
			qty := l.Quantity
			if part.MOQ > qty {
				qty = part.MOQ
				result.Adjusted = append(result.Adjusted, l.Item)
			}
			lineTotal := part.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
			if lineTotal.GreaterThan(entity.MaxAmount) {
				return &apperr.ValidationError{Message: "line total too large",
					Fields: map[string]string{fmt.Sprintf("lines[%d].line_total", i): "too_large"}}
			}
			total = total.Add(lineTotal)
			poLines = append(poLines, entity.POLine{
				Item:        l.Item,
				PartNumber:  part.PartNumber,
				Description: part.Description,
				Quantity:    qty,
				ReqDate:     datatypes.Date(l.ReqDate),
				Unit:        part.Unit,
				UnitPrice:   part.UnitPrice,
				LineTotal:   lineTotal,
			})
		}

		if total.GreaterThan(entity.MaxAmount) {
			return &apperr.ValidationError{Message: "order total too large",
				Fields: map[string]string{"total_price": "too_large"}}
		}

		orders := orderRepo.NewOrderRepository(tx)
		po := &entity.PurchaseOrder{
			CreationDate: datatypes.Date(created),
			Supplier:     supplier,
			TotalPrice:   total,
			Status:       status,
		}
		if err := orders.CreateHeader(ctx, po); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := orders.AssignNumber(ctx, po); err != nil {
			return fmt.Errorf("assign number: %w", err)
		}
		for i := range poLines {
			poLines[i].POID = po.ID
		}
		if err := orders.CreateLines(ctx, poLines); err != nil {
			return fmt.Errorf("create lines: %w", err)
		}
		po.Lines = poLines
		result.Order = po
		return nil
	})
	if err != nil {
		log.Printf("order: create for supplier %q failed: %v", supplier, err)
		return nil, err
	}
	log.Printf("order: created %s with %d lines, total %s", result.Order.Number(), len(result.Order.Lines), result.Order.TotalPrice.StringFixed(2))
	return result, nil
}

// RecomputeTotal sums the current line totals of an order and stores the result.
func (s *Service) RecomputeTotal(ctx context.Context, orderID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		total, err = recomputeTotal(ctx, orderRepo.NewOrderRepository(tx), orderID)
		return err
	})
	return total, err
}

func recomputeTotal(ctx context.Context, orders *orderRepo.OrderRepository, orderID uint) (decimal.Decimal, error) {
	po, err := orders.FindByID(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	if po == nil {
		return decimal.Zero, &apperr.NotFoundError{Kind: "order", Key: strconv.FormatUint(uint64(orderID), 10)}
	}
	total, err := orders.SumLineTotals(ctx, orderID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum line totals: %w", err)
	}
	if err := orders.UpdateTotal(ctx, orderID, total); err != nil {
		return decimal.Zero, fmt.Errorf("update total: %w", err)
	}
	return total, nil
}

// DeleteLine removes a line of the given order and recomputes the order total.
func (s *Service) DeleteLine(ctx context.Context, poNumber string, lineID uint) (*OrderView, error) {
	var view *OrderView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := orderRepo.NewOrderRepository(tx)
		po, err := orders.FindByNumber(ctx, poNumber)
		if err != nil {
			return err
		}
		if po == nil {
			return &apperr.NotFoundError{Kind: "order", Key: poNumber}
		}
		line, err := orders.FindLine(ctx, po.ID, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return &apperr.NotFoundError{Kind: "line", Key: strconv.FormatUint(uint64(lineID), 10)}
		}
		if err := orders.DeleteLine(ctx, line); err != nil {
			return fmt.Errorf("delete line: %w", err)
		}
		total, err := recomputeTotal(ctx, orders, po.ID)
		if err != nil {
			return err
		}
		po.TotalPrice = total
		lines, err := orders.Lines(ctx, po.ID)
		if err != nil {
			return err
		}
		view = &OrderView{Order: po, Lines: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("order: deleted line %d of %s, total now %s", lineID, view.Order.Number(), view.Order.TotalPrice.StringFixed(2))
	return view, nil
}

// Get returns an order and its lines by case-insensitive order number.
func (s *Service) Get(ctx context.Context, poNumber string) (*OrderView, error) {
	orders := orderRepo.NewOrderRepository(s.db)
	po, err := orders.FindByNumber(ctx, strings.TrimSpace(poNumber))
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, &apperr.NotFoundError{Kind: "order", Key: poNumber}
	}
	lines, err := orders.Lines(ctx, po.ID)
	if err != nil {
		return nil, err
	}
	return &OrderView{Order: po, Lines: lines}, nil
}

// List returns all orders sorted by order number.
func (s *Service) List(ctx context.Context) ([]entity.PurchaseOrder, error) {
	return orderRepo.NewOrderRepository(s.db).List(ctx)
}

func partNumbers(lines []ValidLine) []string {
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l.PartNumber] {
			seen[l.PartNumber] = true
			out = append(out, l.PartNumber)
		}
	}
	return out
}

func missingParts(lines []ValidLine, parts map[string]entity.Part) []string {
	var missing []string
	seen := map[string]bool{}
	for _, l := range lines {
		if _, ok := parts[l.PartNumber]; ok || seen[l.PartNumber] {
			continue
		}
		seen[l.PartNumber] = true
		missing = append(missing, l.PartNumber)
	}
	return missing
}
