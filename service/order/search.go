package order

import (
	"context"
	"fmt"
	"strings"

	"procure.GO/core/apperr"
)

// SearchOutcome tells the presentation layer where a search should land.
// PONumber is set when an order matched; otherwise Fallback is the order
// number of the caller's current context, or "" for the listing view.
type SearchOutcome struct {
	Found    bool
	PONumber string
	Fallback string
	Warning  string
}

// Search resolves a free-text order number query.
func (s *Service) Search(ctx context.Context, query, current string) (SearchOutcome, error) {
	current = strings.TrimSpace(current)
	q := strings.TrimSpace(query)
	if q == "" {
		return SearchOutcome{Fallback: current, Warning: "Please enter a PO number to search"}, nil
	}
	view, err := s.Get(ctx, q)
	if err != nil {
		if apperr.IsNotFound(err) {
			return SearchOutcome{Fallback: current, Warning: fmt.Sprintf("PO '%s' not found", q)}, nil
		}
		return SearchOutcome{}, err
	}
	return SearchOutcome{Found: true, PONumber: view.Order.Number()}, nil
}
