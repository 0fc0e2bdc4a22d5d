package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads ENV_FILE (default .env) into the process environment.
// Variables already set win; a missing file is not an error.
func LoadEnv() {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("No %s loaded, using process environment", path)
		return
	}
	log.Printf("Environment loaded from %s", path)
}
