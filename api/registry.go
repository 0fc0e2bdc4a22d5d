package api

import (
	"sync"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"procure.GO/core/registry"
)

var mu sync.Mutex

// ModuleFunc mounts routes on the authenticated /api group.
type ModuleFunc func(g *echo.Group, db *gorm.DB)

// RouteFunc mounts public routes on the root echo instance (health, part lookup, GraphQL).
// A route module that cannot be built returns an error instead of mounting partially.
type RouteFunc func(e *echo.Echo, db *gorm.DB) error

func entries[T any](key string) []T {
	if v, ok := registry.GlobalRegistry.GetGlobal(key); ok && v != nil {
		return v.([]T)
	}
	return nil
}

func register[T any](key string, fn T) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(key) {
		panic("api/registry: " + key + " locked (register only during init)")
	}
	registry.GlobalRegistry.SetGlobal(key, append(entries[T](key), fn))
}

// RegisterModule adds an /api module. Call from init() in API packages.
func RegisterModule(fn ModuleFunc) { register(registry.KeyRegistryAPI, fn) }

// RegisterRoute adds a root-level route module. Call from init().
func RegisterRoute(fn RouteFunc) { register(registry.KeyRegistryRoutes, fn) }

// RegisterGET is shorthand for a single public GET route.
func RegisterGET(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ *gorm.DB) error {
		e.GET(path, handler)
		return nil
	})
}

// ApplyModules mounts every registered /api module and locks the list.
func ApplyModules(g *echo.Group, db *gorm.DB) {
	for _, fn := range entries[ModuleFunc](registry.KeyRegistryAPI) {
		fn(g, db)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)
}

// ApplyRoutes mounts every registered root route and locks the list.
// It stops at the first route module that fails.
func ApplyRoutes(e *echo.Echo, db *gorm.DB) error {
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
	for _, fn := range entries[RouteFunc](registry.KeyRegistryRoutes) {
		if err := fn(e, db); err != nil {
			return err
		}
	}
	return nil
}
