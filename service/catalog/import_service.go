package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"procure.GO/core/apperr"
	"procure.GO/model/entity"
	partRepo "procure.GO/model/repository/part"
)

// RequiredColumns is the header set every catalog file must carry.
var RequiredColumns = []string{
	"part_number", "moq", "unit", "unit_price", "supplier", "lead_time", "family", "description",
}

// ImportOptions configures a catalog import run.
type ImportOptions struct {
	BatchSize int
	// Indexer, when set, receives the parts committed by the run.
	Indexer Indexer
}

// RowError is a row that could not be imported. Line is the 1-based file line.
type RowError struct {
	Line       int    `json:"line"`
	PartNumber string `json:"part_number,omitempty"`
	Message    string `json:"message"`
}

func (e RowError) String() string {
	if e.PartNumber != "" {
		return fmt.Sprintf("line %d (%s): %s", e.Line, e.PartNumber, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int           `json:"total_rows"`
	Added     int           `json:"added"`
	Skipped   int           `json:"skipped"`
	Errors    []RowError    `json:"errors,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
	TotalTime time.Duration `json:"-"`
}

// partRow is one decoded catalog line.
type partRow struct {
	PartNumber  string          `mapstructure:"part_number"`
	MOQ         int             `mapstructure:"moq"`
	Unit        string          `mapstructure:"unit"`
	UnitPrice   decimal.Decimal `mapstructure:"unit_price"`
	Supplier    string          `mapstructure:"supplier"`
	LeadTime    int             `mapstructure:"lead_time"`
	Family      string          `mapstructure:"family"`
	Description string          `mapstructure:"description"`
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func stringToDecimalHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != decimalType || f.Kind() != reflect.String {
			return data, nil
		}
		return decimal.NewFromString(data.(string))
	}
}

// stringToIntHook accepts "10" and "10.0" (spreadsheet exports) but rejects fractions.
func stringToIntHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Int || f.Kind() != reflect.String {
			return data, nil
		}
		fv, err := strconv.ParseFloat(data.(string), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", data)
		}
		if fv != math.Trunc(fv) || math.IsInf(fv, 0) {
			return nil, fmt.Errorf("%q is not a whole number", data)
		}
		return int(fv), nil
	}
}

var rowDecodeHook = mapstructure.ComposeDecodeHookFunc(
	stringToDecimalHook(),
	stringToIntHook(),
)

func decodeRow(fields map[string]interface{}) (partRow, error) {
	var row partRow
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       rowDecodeHook,
		Result:           &row,
		TagName:          "mapstructure",
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return row, err
	}
	if err := dec.Decode(fields); err != nil {
		return row, err
	}
	return row, nil
}

// validateRow rejects rows whose values cannot back an order line.
func validateRow(fields map[string]interface{}) error {
	for _, col := range []string{"part_number", "moq", "unit_price"} {
		if fields[col] == "" {
			return fmt.Errorf("%s is empty", col)
		}
	}
	return nil
}

// ImportParts reads CSV data from r and inserts catalog parts that do not exist yet.
// Existing part numbers are never overwritten.
func ImportParts(ctx context.Context, db *gorm.DB, filename string, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".csv") {
		return nil, &apperr.FormatError{Message: "Not a valid file, please use a valid CSV file."}
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &apperr.FormatError{Message: "File is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		colIndex[headers[i]] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &apperr.FormatError{Message: "File must have titles for each column: " +
			strings.Join(RequiredColumns, ", ") + " (missing: " + strings.Join(missing, ", ") + ")"}
	}

	result := &ImportResult{}
	required := make(map[string]bool, len(RequiredColumns))
	for _, col := range RequiredColumns {
		required[col] = true
	}
	for _, h := range headers {
		if !required[h] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	// Read all rows before touching the store: a broken file commits nothing
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	candidates := make([]entity.Part, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		fields := make(map[string]interface{}, len(RequiredColumns))
		for _, col := range RequiredColumns {
			ci := colIndex[col]
			if ci >= len(row) {
				fields[col] = ""
				continue
			}
			fields[col] = strings.TrimSpace(row[ci])
		}
		pn, _ := fields["part_number"].(string)
		if err := validateRow(fields); err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, PartNumber: pn, Message: err.Error()})
			continue
		}
		pr, err := decodeRow(fields)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, PartNumber: pn, Message: err.Error()})
			continue
		}
		if pr.MOQ < 0 || pr.LeadTime < 0 || pr.UnitPrice.IsNegative() {
			result.Errors = append(result.Errors, RowError{Line: line, PartNumber: pn, Message: "moq, unit_price and lead_time must not be negative"})
			continue
		}
		candidates = append(candidates, entity.Part{
			PartNumber:  pr.PartNumber,
			MOQ:         pr.MOQ,
			Unit:        pr.Unit,
			UnitPrice:   pr.UnitPrice,
			Supplier:    pr.Supplier,
			LeadTime:    pr.LeadTime,
			Family:      pr.Family,
			Description: pr.Description,
		})
	}

	var added []entity.Part
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := partRepo.NewPartRepository(tx)
		numbers := make([]string, 0, len(candidates))
		for _, p := range candidates {
			numbers = append(numbers, p.PartNumber)
		}
		existing, err := repo.ExistingPartNumbers(ctx, numbers, opts.BatchSize)
		if err != nil {
			return fmt.Errorf("lookup existing parts: %w", err)
		}
		fresh := make([]entity.Part, 0, len(candidates))
		for _, p := range candidates {
			if existing[p.PartNumber] {
				result.Skipped++
				continue
			}
			existing[p.PartNumber] = true
			fresh = append(fresh, p)
		}
		if err := repo.CreateInBatches(ctx, fresh, opts.BatchSize); err != nil {
			return fmt.Errorf("insert parts: %w", err)
		}
		added = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Added = len(added)

	if opts.Indexer != nil && len(added) > 0 {
		if err := opts.Indexer.IndexParts(ctx, added); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("search index: %v", err))
		}
	}
	for _, re := range result.Errors {
		log.Printf("catalog: import %s: %s", filename, re)
	}
	result.TotalTime = time.Since(start)
	log.Printf("catalog: import %s: %d rows, %d added, %d skipped, %d errors", filename, result.TotalRows, result.Added, result.Skipped, len(result.Errors))
	return result, nil
}
