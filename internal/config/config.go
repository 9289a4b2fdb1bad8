package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	RateLimit int
	Database  DatabaseConfig
	JWT       JWTConfig
	Borrow    BorrowConfig
	Telemetry TelemetryConfig
	Seed      SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// BorrowConfig holds borrow ledger settings
type BorrowConfig struct {
	DefaultDays int
	MaxDays     int
	OverdueCron string
}

// TelemetryConfig holds tracing configuration
type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
}

// SeedConfig holds the bootstrap admin librarian
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	database, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	borrow, err := loadBorrowConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		RateLimit: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		Database:  database,
		JWT:       loadJWTConfig(appMode),
		Borrow:    borrow,
		Telemetry: loadTelemetryConfig(),
		Seed:      loadSeedConfig(),
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s]", appMode, database.Driver)
	return config, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := modePrefix(mode)

	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", DriverMySQL)))
	defaultPort := "3306"
	switch driver {
	case DriverMySQL:
	case DriverPostgres:
		defaultPort = "5432"
	case DriverSQLite:
		defaultPort = ""
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be mysql, postgres or sqlite)", driver)
	}

	return DatabaseConfig{
		Driver:     driver,
		Host:       getEnv(prefix+"DB_HOST", "localhost"),
		Port:       getEnv(prefix+"DB_PORT", defaultPort),
		User:       getEnv(prefix+"DB_USER", "root"),
		Password:   getEnv(prefix+"DB_PASS", ""),
		DBName:     getEnv(prefix+"DB_NAME", "libraryhub"),
		SQLitePath: getEnv("SQLITE_PATH", "libraryhub.db"),
	}, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))
	if accessMins <= 0 {
		accessMins = 60
	}

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

// loadBorrowConfig loads borrow ledger settings
func loadBorrowConfig() (BorrowConfig, error) {
	defaultDays, err := strconv.Atoi(getEnv("BORROW_DEFAULT_DAYS", "14"))
	if err != nil || defaultDays <= 0 {
		return BorrowConfig{}, fmt.Errorf("invalid BORROW_DEFAULT_DAYS: must be a positive integer")
	}

	maxDays, err := strconv.Atoi(getEnv("BORROW_MAX_DAYS", "365"))
	if err != nil || maxDays <= 0 {
		return BorrowConfig{}, fmt.Errorf("invalid BORROW_MAX_DAYS: must be a positive integer")
	}
	if maxDays < defaultDays {
		return BorrowConfig{}, fmt.Errorf("invalid BORROW_MAX_DAYS: %d is below BORROW_DEFAULT_DAYS %d", maxDays, defaultDays)
	}

	return BorrowConfig{
		DefaultDays: defaultDays,
		MaxDays:     maxDays,
		// An explicitly empty OVERDUE_CRON disables the sweep
		OverdueCron: lookupEnv("OVERDUE_CRON", "30 8 * * *"),
	}, nil
}

func loadTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "libraryhub"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func loadSeedConfig() SeedConfig {
	return SeedConfig{
		AdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123456"),
		AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@libraryhub.local"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// lookupEnv is like getEnv but keeps a value that is set and empty
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// RateLimitPerMinute returns the general per-IP request budget
func (c *Config) RateLimitPerMinute() int {
	if c.RateLimit <= 0 {
		return 100
	}
	return c.RateLimit
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return origins
}
