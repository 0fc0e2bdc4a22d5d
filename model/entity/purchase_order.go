package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const StatusOpen = "open"

// MaxAmount is the largest value a decimal(14,4) money column holds.
var MaxAmount = decimal.RequireFromString("9999999999.9999")

// PurchaseOrder represents purchase_order table
type PurchaseOrder struct {
	ID           uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PONumber     *string         `gorm:"column:po_number;type:varchar(32);uniqueIndex" json:"po_number"`
	CreationDate datatypes.Date  `gorm:"column:creation_date" json:"creation_date"`
	Supplier     string          `gorm:"column:supplier;type:varchar(255);not null" json:"supplier"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:decimal(14,4);not null;default:0" json:"total_price"`
	Status       string          `gorm:"column:status;type:varchar(32);not null;default:'open'" json:"status"`

	Lines []POLine `gorm:"foreignKey:POID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_order"
}

// FormatPONumber renders the human-readable order number for a surrogate id.
func FormatPONumber(id uint) string {
	return fmt.Sprintf("PO-%04d", id)
}

// Number returns the order number, or "" before one was assigned.
func (p *PurchaseOrder) Number() string {
	if p.PONumber == nil {
		return ""
	}
	return *p.PONumber
}

// POLine represents po_lines table. Description, unit and unit price are
// copied from the catalog when the line is created.
type POLine struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	POID        uint            `gorm:"column:po_id;not null;index" json:"po_id"`
	Item        int             `gorm:"column:item;not null" json:"item"`
	PartNumber  string          `gorm:"column:part_number;type:varchar(64)" json:"part_number"`
	Description string          `gorm:"column:description;type:varchar(255)" json:"description"`
	Quantity    int             `gorm:"column:quantity" json:"quantity"`
	ReqDate     datatypes.Date  `gorm:"column:req_date" json:"req_date"`
	Unit        string          `gorm:"column:unit;type:varchar(32)" json:"unit"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(14,4)" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:decimal(14,4)" json:"line_total"`
}

func (POLine) TableName() string {
	return "po_lines"
}
