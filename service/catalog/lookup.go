package catalog

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	partRepo "procure.GO/model/repository/part"
)

// LookupResult answers a part point query. Only Found is set for unknown parts.
type LookupResult struct {
	Found       bool    `json:"found"`
	PartNumber  string  `json:"part_number"`
	Supplier    string  `json:"supplier"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	MOQ         int     `json:"moq"`
	Unit        string  `json:"unit"`
}

// MarshalJSON renders unknown parts as {"found": false}.
func (r LookupResult) MarshalJSON() ([]byte, error) {
	if !r.Found {
		return []byte(`{"found":false}`), nil
	}
	type plain LookupResult
	return json.Marshal(plain(r))
}

// Lookup resolves a part number by exact match.
func Lookup(ctx context.Context, db *gorm.DB, partNumber string) (LookupResult, error) {
	p, err := partRepo.NewPartRepository(db).FindByPartNumber(ctx, strings.TrimSpace(partNumber))
	if err != nil || p == nil {
		return LookupResult{}, err
	}
	return LookupResult{
		Found:       true,
		PartNumber:  p.PartNumber,
		Supplier:    p.Supplier,
		Description: p.Description,
		UnitPrice:   p.UnitPrice.InexactFloat64(),
		MOQ:         p.MOQ,
		Unit:        p.Unit,
	}, nil
}
