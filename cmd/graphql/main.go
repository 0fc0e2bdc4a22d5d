// Standalone read-only GraphQL server: go run ./cmd/graphql
package main

import (
	"fmt"
	"log"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"procure.GO/api"
	_ "procure.GO/api/graphql"
	"procure.GO/config"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadAppConfig()

	db, err := config.NewDB()
	if err != nil {
		log.Fatal("db: ", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// /graphql, /playground and /health are registered as root routes
	if err := api.ApplyRoutes(e, db); err != nil {
		log.Fatal(err)
	}

	figure.NewFigure("procure GQL", "small", true).Print()
	fmt.Println("Standalone GraphQL server")

	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", cfg.Port, cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
