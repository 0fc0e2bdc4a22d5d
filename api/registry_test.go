package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"procure.GO/core/apperr"
	"procure.GO/core/registry"
	"procure.GO/core/testdb"
)

func TestRegistry_RegisterGET_ApplyRoutes(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	RegisterGET("/test/registry/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	e := echo.New()
	require.NoError(t, ApplyRoutes(e, testdb.Open(t)))
	assert.True(t, registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes))
	assert.Panics(t, func() { RegisterGET("/late", func(echo.Context) error { return nil }) })

	for _, path := range []string{"/test/registry/check", "/health"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRegistry_RegisterModule(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI)
	RegisterModule(func(g *echo.Group, _ *gorm.DB) {
		g.GET("/test/module", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	})

	e := echo.New()
	ApplyModules(e.Group("/api"), nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test/module", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestErrorJSON(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", &apperr.ValidationError{Message: "bad", Fields: map[string]string{"supplier": "required"}}, http.StatusUnprocessableEntity, `{"error":"bad","fields":{"supplier":"required"}}`},
		{"part not found", &apperr.PartNotFoundError{PartNumbers: []string{"X1"}}, http.StatusUnprocessableEntity, `{"error":"Part X1 does not exist","parts":["X1"]}`},
		{"not found", &apperr.NotFoundError{Kind: "order", Key: "PO-0009"}, http.StatusNotFound, `{"error":"PO 'PO-0009' not found"}`},
		{"format", &apperr.FormatError{Message: "File is empty"}, http.StatusBadRequest, `{"error":"File is empty"}`},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, `{"error":"internal error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			require.NoError(t, ErrorJSON(c, tt.err))
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestRegistry_ApplyRoutesStopsOnError(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	saved := entries[RouteFunc](registry.KeyRegistryRoutes)
	t.Cleanup(func() {
		registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, saved)
		registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	})

	boom := errors.New("schema rejected")
	RegisterRoute(func(*echo.Echo, *gorm.DB) error { return boom })

	err := ApplyRoutes(echo.New(), testdb.Open(t))
	assert.ErrorIs(t, err, boom)
	assert.True(t, registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes))
}
