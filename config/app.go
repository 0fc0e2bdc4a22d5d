package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName           string
	Port              string
	Env               string
	Debug             bool
	SecretKey         string
	ReconcileSchedule string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() *Config {
	once.Do(func() {
		AppConfig = &Config{
			AppName:           getenv("APP_NAME", "procure.GO"),
			Port:              getenv("PORT", "8080"),
			Env:               getenv("APP_ENV", "dev"),
			Debug:             os.Getenv("DEBUG") == "true",
			SecretKey:         getenv("SECRET_KEY", "supersecretkey"),
			ReconcileSchedule: getenv("RECONCILE_SCHEDULE", "@hourly"),
		}
	})
	return AppConfig
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
