package order

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"procure.GO/model/entity"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// List returns all orders sorted by order number.
func (r *OrderRepository) List(ctx context.Context) ([]entity.PurchaseOrder, error) {
	var orders []entity.PurchaseOrder
	err := r.db.WithContext(ctx).Order("po_number").Find(&orders).Error
	return orders, err
}

// FindByNumber matches the order number case-insensitively. Returns (nil, nil) when absent.
func (r *OrderRepository) FindByNumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.db.WithContext(ctx).Where("LOWER(po_number) = LOWER(?)", poNumber).First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// FindByID returns (nil, nil) when absent.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.db.WithContext(ctx).First(&po, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// Lines returns the order's lines ordered by item sequence number.
func (r *OrderRepository) Lines(ctx context.Context, orderID uint) ([]entity.POLine, error) {
	var lines []entity.POLine
	err := r.db.WithContext(ctx).Where("po_id = ?", orderID).Order("item, id").Find(&lines).Error
	return lines, err
}

// FindLine returns the line only if it belongs to orderID. Returns (nil, nil) otherwise.
func (r *OrderRepository) FindLine(ctx context.Context, orderID, lineID uint) (*entity.POLine, error) {
	var line entity.POLine
	err := r.db.WithContext(ctx).Where("id = ? AND po_id = ?", lineID, orderID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// CreateHeader inserts the order row without lines and without a number.
func (r *OrderRepository) CreateHeader(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Omit("Lines").Create(po).Error
}

// AssignNumber stores the PO number derived from the order id.
func (r *OrderRepository) AssignNumber(ctx context.Context, po *entity.PurchaseOrder) error {
	number := entity.FormatPONumber(po.ID)
	if err := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).Where("id = ?", po.ID).Update("po_number", number).Error; err != nil {
		return err
	}
	po.PONumber = &number
	return nil
}

func (r *OrderRepository) CreateLines(ctx context.Context, lines []entity.POLine) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *OrderRepository) DeleteLine(ctx context.Context, line *entity.POLine) error {
	return r.db.WithContext(ctx).Delete(line).Error
}

// SumLineTotals adds the line totals of an order. No lines yields zero.
func (r *OrderRepository) SumLineTotals(ctx context.Context, orderID uint) (decimal.Decimal, error) {
	var totals []decimal.Decimal
	err := r.db.WithContext(ctx).Model(&entity.POLine{}).Where("po_id = ?", orderID).Pluck("line_total", &totals).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, totals...), nil
}

func (r *OrderRepository) UpdateTotal(ctx context.Context, orderID uint, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).Where("id = ?", orderID).Update("total_price", total).Error
}

// IDs returns every order id in ascending order.
func (r *OrderRepository) IDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}
