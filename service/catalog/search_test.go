package catalog

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procure.GO/core/testdb"
	"procure.GO/model/entity"
)

func TestSearch_SQLFallback(t *testing.T) {
	t.Setenv("ELASTICSEARCH_HOST", "")
	db := testdb.Open(t)
	p := testdb.Part("BOLT-8", 1, "1")
	p.Description = "Hex Bolt M8"
	testdb.SeedParts(t, db, p, testdb.Part("NUT-8", 1, "1"))

	s := NewSearchService(db)
	assert.False(t, s.Enabled())
	require.NoError(t, s.IndexParts(context.Background(), nil))

	parts, err := s.Search(context.Background(), "hex bolt", 10)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "BOLT-8", parts[0].PartNumber)
}

// fakeElastic answers bulk and search requests the way a cluster would.
func fakeElastic(t *testing.T, hits string) (*httptest.Server, *strings.Builder) {
	var mu sync.Mutex
	bulk := &strings.Builder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/_bulk"):
			b, _ := io.ReadAll(r.Body)
			mu.Lock()
			bulk.Write(b)
			mu.Unlock()
			io.WriteString(w, `{"took":1,"errors":false,"items":[]}`)
		case strings.HasSuffix(r.URL.Path, "/_search"):
			io.WriteString(w, `{"hits":{"hits":[`+hits+`]}}`)
		default:
			io.WriteString(w, `{}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, bulk
}

func TestSearch_Elasticsearch(t *testing.T) {
	srv, bulk := fakeElastic(t, `{"_id":"NUT-8"},{"_id":"GONE"},{"_id":"BOLT-8"}`)
	t.Setenv("ELASTICSEARCH_HOST", srv.URL)
	t.Setenv("ELASTICSEARCH_INDEX", "parts_test")
	db := testdb.Open(t)
	testdb.SeedParts(t, db, testdb.Part("BOLT-8", 1, "1"), testdb.Part("NUT-8", 1, "1"))

	s := NewSearchService(db)
	require.True(t, s.Enabled())

	require.NoError(t, s.IndexParts(context.Background(), []entity.Part{testdb.Part("BOLT-8", 1, "1")}))
	assert.Contains(t, bulk.String(), `"_id":"BOLT-8"`)
	assert.Contains(t, bulk.String(), `"_index":"parts_test"`)

	parts, err := s.Search(context.Background(), "8", 10)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "NUT-8", parts[0].PartNumber)
	assert.Equal(t, "BOLT-8", parts[1].PartNumber)
}
