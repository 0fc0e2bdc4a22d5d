package entity

import "github.com/shopspring/decimal"

// Part represents part_numbers table, the catalog reference data
type Part struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PartNumber  string          `gorm:"column:part_number;type:varchar(64);not null;uniqueIndex" json:"part_number"`
	MOQ         int             `gorm:"column:moq;not null;default:0" json:"moq"`
	Unit        string          `gorm:"column:unit;type:varchar(32)" json:"unit"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(14,4);not null" json:"unit_price"`
	Supplier    string          `gorm:"column:supplier;type:varchar(255)" json:"supplier"`
	LeadTime    int             `gorm:"column:lead_time;not null;default:0" json:"lead_time"`
	Family      string          `gorm:"column:family;type:varchar(64)" json:"family"`
	Description string          `gorm:"column:description;type:varchar(255)" json:"description"`
}

func (Part) TableName() string {
	return "part_numbers"
}
