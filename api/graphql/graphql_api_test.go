package graphql

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procure.GO/core/testdb"
)

func TestGraphQLRoutes(t *testing.T) {
	t.Setenv("ELASTICSEARCH_HOST", "")
	db := testdb.Open(t)
	testdb.SeedParts(t, db, testdb.Part("P100", 10, "2.50"))
	e := echo.New()
	require.NoError(t, RegisterGraphQLRoutes(e, db))

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ part(partNumber: \"P100\") { moq unitPrice } }"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"part":{"moq":10,"unitPrice":"2.50"}}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(`{ part(partNumber: "P100") { moq } }`), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"part":{"moq":10}}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/playground", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "procure.GO GraphQL")
}
