package order

import (
	"fmt"
	"strings"
	"time"
)

// LineEntry is one candidate order line as submitted by a client. Price and
// unit are not accepted: they always come from the catalog.
type LineEntry struct {
	Item       int        `json:"item"`
	PartNumber string     `json:"part_number"`
	Quantity   *int       `json:"quantity"`
	ReqDate    *time.Time `json:"req_date"`
}

// ValidLine is a line that passed ValidateLine.
type ValidLine struct {
	Item       int
	PartNumber string
	Quantity   int
	ReqDate    time.Time
}

// Violations maps a field name to a violation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// MaxQuantity caps a requested line quantity.
const MaxQuantity = 1_000_000

func intRange(field string, val, min, max int, v Violations) {
	switch {
	case val < min:
		v[field] = fmt.Sprintf("must_be_at_least_%d", min)
	case val > max:
		v[field] = fmt.Sprintf("must_be_at_most_%d", max)
	}
}

// FilterLines keeps entries carrying an item index, a quantity and a requested date.
// Anything else is a blank form row and is dropped without complaint.
func FilterLines(entries []LineEntry) []LineEntry {
	out := make([]LineEntry, 0, len(entries))
	for _, e := range entries {
		if e.Item > 0 && e.Quantity != nil && e.ReqDate != nil {
			out = append(out, e)
		}
	}
	return out
}

// ValidateLine checks a filtered entry. It returns the normalized line or the
// violations found; it never touches storage.
func ValidateLine(e LineEntry) (ValidLine, Violations) {
	v := Violations{}
	required("part_number", e.PartNumber, v)
	if e.Quantity == nil {
		v["quantity"] = "required"
	} else {
		intRange("quantity", *e.Quantity, 1, MaxQuantity, v)
	}
	if e.ReqDate == nil {
		v["req_date"] = "required"
	}
	if !v.Empty() {
		return ValidLine{}, v
	}
	return ValidLine{
		Item:       e.Item,
		PartNumber: strings.TrimSpace(e.PartNumber),
		Quantity:   *e.Quantity,
		ReqDate:    *e.ReqDate,
	}, nil
}
