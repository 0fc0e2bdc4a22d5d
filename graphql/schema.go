package graphql

import (
	_ "embed"
)

//go:embed schema.graphqls
var Schema string

// DateLayout renders order and line dates.
const DateLayout = "2006-01-02"
