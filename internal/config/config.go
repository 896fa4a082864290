package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	LogLevel string
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Policy   PolicyConfig
	Report   ReportConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RedisConfig holds the credit cache connection. An empty Addr disables the cache
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	CreditTTL time.Duration
}

// JWTConfig holds operator token configuration
type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
}

// PolicyConfig holds the admission thresholds
type PolicyConfig struct {
	MinimumAge         int
	MinimumCreditLimit int
}

// ReportConfig holds the admission report job schedule (cron expression)
type ReportConfig struct {
	Schedule string
}

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

	policy, err := loadPolicyConfig()
	if err != nil {
		return nil, err
	}

	redisCfg, err := loadRedisConfig()
	if err != nil {
		return nil, err
	}

	jwtCfg, err := loadJWTConfig(appMode)
	if err != nil {
		return nil, err
	}

	return &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: loadDatabaseConfig(appMode),
		Redis:    redisCfg,
		JWT:      jwtCfg,
		Policy:   policy,
		Report:   ReportConfig{Schedule: getEnv("ADMISSION_REPORT_SCHEDULE", "30 8 * * *")},
	}, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "user_admission"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) (JWTConfig, error) {
	ttl, err := getDuration("OPERATOR_TOKEN_TTL", 8*time.Hour)
	if err != nil {
		return JWTConfig{}, err
	}

	secret := getEnv(modePrefix(mode)+"JWT_SECRET", "")
	if secret == "" {
		if mode == "prod" {
			return JWTConfig{}, fmt.Errorf("PROD_JWT_SECRET is required in prod mode")
		}
		secret = "default_secret"
	}

	return JWTConfig{Secret: secret, AccessTTL: ttl}, nil
}

// loadRedisConfig loads the credit cache settings
func loadRedisConfig() (RedisConfig, error) {
	db, err := getInt("REDIS_DB", 0)
	if err != nil {
		return RedisConfig{}, err
	}
	ttl, err := getDuration("CREDIT_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return RedisConfig{}, err
	}

	return RedisConfig{
		Addr:      getEnv("REDIS_ADDR", ""),
		Password:  getEnv("REDIS_PASSWORD", ""),
		DB:        db,
		CreditTTL: ttl,
	}, nil
}

// loadPolicyConfig loads the admission thresholds
func loadPolicyConfig() (PolicyConfig, error) {
	minAge, err := getInt("MINIMUM_AGE", 21)
	if err != nil {
		return PolicyConfig{}, err
	}
	minCredit, err := getInt("MINIMUM_CREDIT_LIMIT", 500)
	if err != nil {
		return PolicyConfig{}, err
	}
	if minAge < 0 || minCredit < 0 {
		return PolicyConfig{}, fmt.Errorf("admission thresholds must not be negative (age=%d, credit=%d)", minAge, minCredit)
	}

	return PolicyConfig{MinimumAge: minAge, MinimumCreditLimit: minCredit}, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// CacheEnabled reports whether the redis credit cache is configured
func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != ""
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://admissions.example.com"
	}
	return origins
}
