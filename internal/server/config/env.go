package config

import (
	"fmt"
	"net/url"
	"os"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseEnv overlays environment variables onto the config. Database
// settings follow the historical variable names: either a full
// DATABASE_DSN, or the discrete DATABASE_HOST / DATABASE_PORT /
// DATABASE_USER / DATABASE_PASSWORD / DATABASE_NAME set from which a
// pgx DSN is composed. SQL_LOGGING toggles verbose DB logging.
func parseEnv(config *Config) {
	config.EndpointAddr = getEnv("ENDPOINT_ADDR", config.EndpointAddr)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		config.DatabaseDSN = dsn
	} else if host := os.Getenv("DATABASE_HOST"); host != "" {
		port := getEnv("DATABASE_PORT", "5432")
		user := getEnv("DATABASE_USER", "postgres")
		password := getEnv("DATABASE_PASSWORD", "")
		name := getEnv("DATABASE_NAME", "boilerparts")
		config.DatabaseDSN = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			url.QueryEscape(user), url.QueryEscape(password), host, port, name)
	}

	config.SQLLogging = getEnv("SQL_LOGGING", "") == "true" || config.SQLLogging

	config.S3RootUser = getEnv("S3_ROOT_USER", config.S3RootUser)
	config.S3RootPassword = getEnv("S3_ROOT_PASSWORD", config.S3RootPassword)
	config.S3Bucket = getEnv("S3_BUCKET", config.S3Bucket)
	config.S3Region = getEnv("S3_REGION", config.S3Region)
	config.S3BaseEndpoint = getEnv("S3_BASE_ENDPOINT", config.S3BaseEndpoint)
}
