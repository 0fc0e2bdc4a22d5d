// Package server assembles the echo application: middleware, renderer,
// the /api modules, root routes and the HTML pages.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"procure.GO/api"
	_ "procure.GO/api/graphql"
	_ "procure.GO/api/order"
	_ "procure.GO/api/part"
	"procure.GO/config"
	"procure.GO/core/auth"
	"procure.GO/core/flash"
	"procure.GO/html"
	catalogService "procure.GO/service/catalog"
)

// Bootstrap loads configuration and opens the backing stores. Redis is
// optional: an unreachable server is logged and disabled.
func Bootstrap() (*gorm.DB, error) {
	config.LoadAppConfig()
	config.InitRedis()
	redisStatus := "Redis not configured, flash messages kept in memory."
	if config.RedisClient != nil {
		if err := config.PingRedis(context.Background()); err == nil {
			redisStatus = "Redis connection successful."
		} else {
			redisStatus = "Redis configured but not reachable, flash messages kept in memory."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}
	sqldb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get DB instance: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	log.Println("Database connection successful.")
	return db, nil
}

// requestDuration reports the handler time in X-Request-Duration-ms. The
// header is set just before the response is committed.
func requestDuration(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		res := c.Response()
		res.Before(func() {
			res.Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		})
		return next(c)
	}
}

// New builds the echo instance. rdb may be nil.
func New(db *gorm.DB, rdb *redis.Client) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	if cfg := config.LoadAppConfig(); cfg.Debug {
		e.Debug = true
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(requestDuration)
	e.Use(flash.Middleware())

	e.Renderer = html.NewTemplate()

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, db)
	if err := api.ApplyRoutes(e, db); err != nil {
		return nil, fmt.Errorf("mount routes: %w", err)
	}

	flasher := &flash.Flasher{Store: flash.NewStore(rdb)}
	html.RegisterOrderHTMLRoutes(e, db, flasher)
	html.RegisterImportHTMLRoutes(e, db, flasher, catalogService.NewSearchService(db))
	return e, nil
}
