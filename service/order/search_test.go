package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procure.GO/core/testdb"
)

func TestSearch(t *testing.T) {
	svc, _ := newTestService(t, testdb.Part("P100", 1, "1.00"))
	ctx := context.Background()
	_, err := svc.Create(ctx, OrderRequest{Supplier: "ACME", Lines: []LineEntry{line(1, "P100", 1)}})
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		current string
		want    SearchOutcome
	}{
		{"found case-insensitive", "  po-0001 ", "", SearchOutcome{Found: true, PONumber: "PO-0001"}},
		{"empty query", "   ", "PO-0001", SearchOutcome{Fallback: "PO-0001", Warning: "Please enter a PO number to search"}},
		{"not found keeps context", "PO-0404", "PO-0001", SearchOutcome{Fallback: "PO-0001", Warning: "PO 'PO-0404' not found"}},
		{"not found from listing", "PO-0404", "", SearchOutcome{Warning: "PO 'PO-0404' not found"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(ctx, tt.query, tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
