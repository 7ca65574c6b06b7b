package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	JWKSURL     string // Empty disables token verification (dev only)
	// ICAT connection
	ICATHost     string
	ICATPort     int
	ICATDatabase string
	ICATUser     string
	ICATPassword string
	ICATSSLMode  string
	MaxConns     int32
	// Listing
	PermissionWorkers int
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "production")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		JWKSURL:     getEnv("JWKS_URL", ""),
		// ICAT connection
		ICATHost:     getEnv("ICAT_HOST", "localhost"),
		ICATPort:     getEnvInt("ICAT_PORT", DefaultICATPort),
		ICATDatabase: getEnv("ICAT_DB", DefaultICATDatabase),
		ICATUser:     getEnv("ICAT_USER", ""),
		ICATPassword: getEnv("ICAT_PASSWORD", ""),
		ICATSSLMode:  getEnv("ICAT_SSLMODE", "disable"),
		MaxConns:     int32(getEnvInt("ICAT_MAX_CONNS", DefaultMaxConns)),
		// Listing
		PermissionWorkers: getEnvInt("PERMISSION_WORKERS", DefaultPermissionWorkers),
		// Logging
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", DefaultLogMaxFiles),
	}
}

// IsDev reports whether development-only behavior is allowed.
// Dev mode must be requested explicitly through ENVIRONMENT.
func (c *Config) IsDev() bool {
	return c.Environment == "dev" || c.Environment == "test"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to the default when the variable is unset or not a number
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
