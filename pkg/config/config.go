package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port         string
	Env          string
	LogLevel     string
	PrivateReads bool
	CORSOrigins  []string

	Database DatabaseConfig

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Load reads the configuration from the environment, after loading an optional
// .env file. Every missing or malformed variable is reported in one error.
func Load() (*Config, error) {
	// a missing .env is fine, the variables may come from the environment
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS",
			"http://localhost:3000,http://127.0.0.1:3000")),
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DATABASE_DRIVER", DriverPostgres)),
			URL:    os.Getenv("DATABASE_URL"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL environment variable not set"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable not set"))
	}
	if cfg.Database.Driver != DriverPostgres && cfg.Database.Driver != DriverSQLite {
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.Database.Driver))
	}

	cfg.PrivateReads = getBool("PRIVATE_READS", false, &errs)
	cfg.TokenTTL = getDuration("TOKEN_TTL", 72*time.Hour, &errs)
	cfg.BcryptCost = getInt("BCRYPT_COST", bcrypt.DefaultCost, &errs)
	cfg.Database.MaxOpenConns = getInt("DB_MAX_OPEN_CONNS", 25, &errs)
	cfg.Database.MaxIdleConns = getInt("DB_MAX_IDLE_CONNS", 5, &errs)
	cfg.Database.ConnMaxLifetime = getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute, &errs)

	if cfg.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be an integer: %w", key, err))
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool, errs *[]error) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a boolean: %w", key, err))
		return defaultValue
	}
	return b
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a duration: %w", key, err))
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
