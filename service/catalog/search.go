package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"

	"procure.GO/model/entity"
	partRepo "procure.GO/model/repository/part"
)

// Indexer receives parts committed by a catalog import.
type Indexer interface {
	IndexParts(ctx context.Context, parts []entity.Part) error
}

// SearchService finds catalog parts through Elasticsearch when ELASTICSEARCH_HOST
// is set, and through a SQL LIKE query otherwise.
type SearchService struct {
	db     *gorm.DB
	client *elasticsearch.Client
	index  string
}

// NewSearchService builds the service from the environment.
func NewSearchService(db *gorm.DB) *SearchService {
	s := &SearchService{db: db, index: os.Getenv("ELASTICSEARCH_INDEX")}
	if s.index == "" {
		s.index = "procure_parts"
	}
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return s
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
	if err != nil {
		return s
	}
	s.client = client
	return s
}

// Enabled reports whether an Elasticsearch client is configured.
func (s *SearchService) Enabled() bool {
	return s.client != nil
}

// IndexParts bulk-indexes parts keyed by part number. No-op without a client.
func (s *SearchService) IndexParts(ctx context.Context, parts []entity.Part) error {
	if s.client == nil || len(parts) == 0 {
		return nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range parts {
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": s.index, "_id": p.PartNumber}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		doc := map[string]interface{}{
			"part_number": p.PartNumber,
			"description": p.Description,
			"family":      p.Family,
			"supplier":    p.Supplier,
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}
	res, err := s.client.Bulk(bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
		s.client.Bulk.WithIndex(s.index),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// Search returns parts matching query, best matches first.
func (s *SearchService) Search(ctx context.Context, query string, size int) ([]entity.Part, error) {
	if size <= 0 {
		size = 20
	}
	repo := partRepo.NewPartRepository(s.db)
	if s.client == nil {
		return repo.Search(ctx, query, size)
	}

	body := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"part_number^3", "description^2", "family", "supplier"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		numbers = append(numbers, hit.ID)
	}
	found, err := repo.FindByPartNumbers(ctx, numbers)
	if err != nil {
		return nil, err
	}
	parts := make([]entity.Part, 0, len(numbers))
	for _, pn := range numbers {
		if p, ok := found[pn]; ok {
			parts = append(parts, p)
		}
	}
	return parts, nil
}
