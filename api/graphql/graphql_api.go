package graphql

import (
	"fmt"
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"procure.GO/api"
	"procure.GO/graphqlserver"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

// RegisterGraphQLRoutes mounts the read-only order and catalog schema.
func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB) error {
	schema, err := graphqlserver.NewSchema(db)
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}
	RegisterGraphQLRoutesWithSchema(e, schema)
	return nil
}

// RegisterGraphQLRoutesWithSchema mounts /graphql (POST body or GET query
// string) and /playground for a prepared schema.
func RegisterGraphQLRoutesWithSchema(e *echo.Echo, schema *graphql.Schema) {
	e.POST("/graphql", echo.WrapHandler(graphqlserver.Handler(schema)))
	e.GET("/graphql", echo.WrapHandler(graphqlserver.QueryHandler(schema)))
	e.GET("/playground", func(c echo.Context) error {
		return c.HTML(http.StatusOK, playgroundPage)
	})
}

const playgroundPage = `<!DOCTYPE html>
<html>
<head>
	<title>procure.GO GraphQL</title>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
</head>
<body>
	<div id="root"></div>
	<script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
	<script>window.addEventListener('load', function () {
		GraphQLPlayground.init(document.getElementById('root'), { endpoint: '/graphql' });
	});</script>
</body>
</html>`
