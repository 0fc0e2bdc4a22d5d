package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newAuthEcho() *echo.Echo {
	e := echo.New()
	g := e.Group("/api")
	g.Use(Middleware())
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	g.GET("/orders", ok)
	g.GET("/parts/:part_number", ok)
	return e
}

func status(e *echo.Echo, path string, prep func(*http.Request)) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if prep != nil {
		prep(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestBasicAuth(t *testing.T) {
	t.Setenv("AUTH_TYPE", "")
	t.Setenv("API_USER", "buyer")
	t.Setenv("API_PASS", "secret")
	e := newAuthEcho()

	assert.Equal(t, http.StatusUnauthorized, status(e, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, status(e, "/api/orders", func(r *http.Request) { r.SetBasicAuth("buyer", "nope") }))
	assert.Equal(t, http.StatusOK, status(e, "/api/orders", func(r *http.Request) { r.SetBasicAuth("buyer", "secret") }))
	assert.Equal(t, http.StatusOK, status(e, "/api/parts/P100", nil), "part lookup is public")
}

func TestBasicAuth_EmptyCredentialsReject(t *testing.T) {
	t.Setenv("AUTH_TYPE", "basic")
	t.Setenv("API_USER", "")
	t.Setenv("API_PASS", "")
	e := newAuthEcho()

	assert.Equal(t, http.StatusUnauthorized, status(e, "/api/orders", func(r *http.Request) { r.SetBasicAuth("", "") }))
}

func TestKeyAuth(t *testing.T) {
	t.Setenv("AUTH_TYPE", "key")
	t.Setenv("API_KEY", "k-123")
	e := newAuthEcho()

	assert.Contains(t, []int{http.StatusBadRequest, http.StatusUnauthorized}, status(e, "/api/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, status(e, "/api/orders", func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer wrong") }))
	assert.Equal(t, http.StatusOK, status(e, "/api/orders", func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer k-123") }))
}

func TestNoAuth(t *testing.T) {
	t.Setenv("AUTH_TYPE", "none")
	assert.Equal(t, http.StatusOK, status(newAuthEcho(), "/api/orders", nil))
}
