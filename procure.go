//go:build !cli
// +build !cli

package main

import (
	"log"

	"github.com/common-nighthawk/go-figure"

	"procure.GO/config"
	"procure.GO/server"
)

func main() {
	config.LoadEnv()
	db, err := server.Bootstrap()
	if err != nil {
		log.Fatal(err)
	}

	figure.NewFigure("procure.GO", "small", true).Print()

	e, err := server.New(db, config.RedisClient)
	if err != nil {
		log.Fatal(err)
	}
	port := config.AppConfig.Port
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
