//go:build cli
// +build cli

package main

import (
	_ "procure.GO/cron/jobs"
	_ "procure.GO/custom"

	"procure.GO/cmd"
	"procure.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
