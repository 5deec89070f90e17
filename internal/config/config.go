// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds everything a run needs. Defaults reproduce the fixed
// file names and report parameters the tool has always used.
type Config struct {
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	CustomersFile string
	OrdersFile    string

	ReportCustomerID      int
	ReportAmountThreshold float64
	ReportCutoffDate      string
	ReportXLSXPath        string

	AMQPURL   string
	AMQPQueue string

	LogLevel  string
	SeedFiles []string
}

// Load reads an optional .env file and then the process environment.
func Load(logger *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, relying on OS environment variables")
	}

	return &Config{
		DBDriver:   GetEnvOrDefault("DB_DRIVER", "sqlite3"),
		DBPath:     GetEnvOrDefault("DB_PATH", "patoche.db"),
		DBHost:     GetEnvOrDefault("DB_HOST", "localhost"),
		DBPort:     GetEnvOrDefault("DB_PORT", "5432"),
		DBUser:     GetEnvOrDefault("DB_USER", "postgres"),
		DBPassword: GetEnvOrDefault("DB_PASSWORD", ""),
		DBName:     GetEnvOrDefault("DB_NAME", "patoche"),
		DBSSLMode:  GetEnvOrDefault("DB_SSLMODE", "disable"),

		CustomersFile: GetEnvOrDefault("CUSTOMERS_FILE", "data/jdd_clients.csv"),
		OrdersFile:    GetEnvOrDefault("ORDERS_FILE", "data/jdd_commande.csv"),

		ReportCustomerID:      parseIntOrDefault(logger, "REPORT_CUSTOMER_ID", 61),
		ReportAmountThreshold: parseFloatOrDefault(logger, "REPORT_AMOUNT_THRESHOLD", 100),
		ReportCutoffDate:      GetEnvOrDefault("REPORT_CUTOFF_DATE", "2023-01-01"),
		ReportXLSXPath:        GetEnvOrDefault("REPORT_XLSX_PATH", ""),

		AMQPURL:   GetEnvOrDefault("AMQP_URL", ""),
		AMQPQueue: GetEnvOrDefault("AMQP_QUEUE", "ingest_runs"),

		LogLevel:  strings.ToLower(GetEnvOrDefault("LOG_LEVEL", "info")),
		SeedFiles: splitList(GetEnvOrDefault("SEED_FILES", "seed/customers.sql,seed/orders.sql")),
	}
}

// GetEnvOrDefault returns the value of key, or def when unset or empty.
func GetEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntOrDefault(logger *zap.Logger, key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("invalid integer in environment, using default",
			zap.String("key", key), zap.String("value", raw), zap.Int("default", def))
		return def
	}
	return v
}

func parseFloatOrDefault(logger *zap.Logger, key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Warn("invalid number in environment, using default",
			zap.String("key", key), zap.String("value", raw), zap.Float64("default", def))
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
