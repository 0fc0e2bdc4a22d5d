package part

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"

	"procure.GO/model/entity"
)

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

// FindByPartNumber returns the part with exactly this number, or (nil, nil) when absent.
func (r *PartRepository) FindByPartNumber(ctx context.Context, partNumber string) (*entity.Part, error) {
	var p entity.Part
	err := r.db.WithContext(ctx).Where("part_number = ?", partNumber).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByPartNumbers batch-loads parts keyed by part number. Missing numbers are absent from the map.
func (r *PartRepository) FindByPartNumbers(ctx context.Context, partNumbers []string) (map[string]entity.Part, error) {
	out := make(map[string]entity.Part, len(partNumbers))
	if len(partNumbers) == 0 {
		return out, nil
	}
	var parts []entity.Part
	if err := r.db.WithContext(ctx).Where("part_number IN ?", partNumbers).Find(&parts).Error; err != nil {
		return nil, err
	}
	for _, p := range parts {
		out[p.PartNumber] = p
	}
	return out, nil
}

// ExistingPartNumbers batch-queries which of the given numbers are already in the catalog.
func (r *PartRepository) ExistingPartNumbers(ctx context.Context, partNumbers []string, batchSize int) (map[string]bool, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	existing := make(map[string]bool, len(partNumbers))
	for i := 0; i < len(partNumbers); i += batchSize {
		end := i + batchSize
		if end > len(partNumbers) {
			end = len(partNumbers)
		}
		var chunk []string
		err := r.db.WithContext(ctx).Model(&entity.Part{}).
			Where("part_number IN ?", partNumbers[i:end]).
			Pluck("part_number", &chunk).Error
		if err != nil {
			return nil, err
		}
		for _, pn := range chunk {
			existing[pn] = true
		}
	}
	return existing, nil
}

// CreateInBatches inserts new catalog rows.
func (r *PartRepository) CreateInBatches(ctx context.Context, parts []entity.Part, batchSize int) error {
	if len(parts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&parts, batchSize).Error
}

// likeEscaper makes LIKE wildcards in user input match literally. '!' is
// used as the escape character since a backslash needs quoting on MySQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search matches part number, description or family with a case-insensitive substring.
func (r *PartRepository) Search(ctx context.Context, query string, limit int) ([]entity.Part, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + likeEscaper.Replace(query) + "%"
	var parts []entity.Part
	err := r.db.WithContext(ctx).
		Where("LOWER(part_number) LIKE LOWER(@q) ESCAPE '!' OR LOWER(description) LIKE LOWER(@q) ESCAPE '!' OR LOWER(family) LIKE LOWER(@q) ESCAPE '!'", sql.Named("q", like)).
		Order("part_number").
		Limit(limit).
		Find(&parts).Error
	return parts, err
}
