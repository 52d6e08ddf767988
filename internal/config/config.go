package config

import "os"

type Config struct {
	DatabasePath string
	LogLevel     string
	SeedOnStart  bool
}

func Load() (Config, error) {
	config := Config{
		DatabasePath: envOrDefault("DATABASE_PATH", "./data/grocery-engine.db"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		SeedOnStart:  envOrDefault("SEED_ON_START", "true") == "true",
	}
	return config, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
