package cmd

import (
	"log"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"procure.GO/config"
	"procure.GO/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (HTML pages, JSON API and GraphQL)",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := server.Bootstrap()
		if err != nil {
			return err
		}
		port := servePort
		if port == "" {
			port = config.AppConfig.Port
		}
		figure.NewFigure("procure.GO", "small", true).Print()
		e, err := server.New(db, config.RedisClient)
		if err != nil {
			return err
		}
		log.Printf("Server running on :%s", port)
		return e.Start(":" + port)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}
