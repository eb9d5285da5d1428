package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Frontend   FrontendConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Generation GenerationConfig
}

type RedisConfig struct {
	Enabled   bool
	URL       string
	Host      string
	Port      string
	Password  string
	DB        int
	Namespace string
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// GenerationConfig tunes the creature generator. A zero Seed asks for a
// time-derived seed.
type GenerationConfig struct {
	Seed            int64
	DefaultPreset   string
	MaxSpeciesBatch int
	Workers         int
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

// GetEnv returns the environment value for key, or fallback when unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func load() (*Config, error) {
	generation, err := loadGenerationConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server:     loadServerConfig(),
		Database:   loadDatabaseConfig(),
		Redis:      loadRedisConfig(),
		Auth:       loadAuthConfig(),
		Frontend:   loadFrontendConfig(),
		Logging:    loadLoggingConfig(),
		RateLimit:  loadRateLimitConfig(),
		Generation: generation,
	}

	return config, nil
}

func loadRedisConfig() RedisConfig {
	enabled := GetEnv("REDIS_ENABLED", "false") == "true"
	redisURL := GetEnv("REDIS_URL", "")

	db, _ := strconv.Atoi(GetEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:   enabled,
		URL:       redisURL,
		Host:      GetEnv("REDIS_HOST", "localhost"),
		Port:      GetEnv("REDIS_PORT", "6379"),
		Password:  GetEnv("REDIS_PASSWORD", ""),
		DB:        db,
		Namespace: GetEnv("REDIS_NAMESPACE", "biosphere"),
	}
}

func loadServerConfig() ServerConfig {
	readTimeout, _ := strconv.Atoi(GetEnv("SERVER_READ_TIMEOUT_SECONDS", "15"))
	writeTimeout, _ := strconv.Atoi(GetEnv("SERVER_WRITE_TIMEOUT_SECONDS", "30"))
	idleTimeout, _ := strconv.Atoi(GetEnv("SERVER_IDLE_TIMEOUT_SECONDS", "60"))

	return ServerConfig{
		Port:         GetEnv("SERVER_PORT", "8080"),
		URL:          GetEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	maxOpenConns, _ := strconv.Atoi(GetEnv("DB_MAX_OPEN_CONNS", "25"))
	maxIdleConns, _ := strconv.Atoi(GetEnv("DB_MAX_IDLE_CONNS", "5"))
	connMaxLifetime, _ := strconv.Atoi(GetEnv("DB_CONN_MAX_LIFETIME_MINUTES", "5"))

	return DatabaseConfig{
		Driver:          GetEnv("DB_DRIVER", DriverSQLite),
		DSN:             GetEnv("DB_DSN", "biosphere.db"),
		Host:            GetEnv("DB_HOST", "localhost"),
		Port:            GetEnv("DB_PORT", "5432"),
		User:            GetEnv("DB_USER", "postgres"),
		Password:        GetEnv("DB_PASSWORD", "postgres"),
		Name:            GetEnv("DB_NAME", "biosphere"),
		SSLMode:         GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
	}
}

func loadAuthConfig() AuthConfig {
	tokenExpiration, _ := strconv.Atoi(GetEnv("JWT_EXPIRATION_HOURS", "24"))

	return AuthConfig{
		JWTSecret:       GetEnv("JWT_SECRET", ""),
		TokenExpiration: time.Duration(tokenExpiration) * time.Hour,
	}
}

func loadFrontendConfig() FrontendConfig {
	corsDebug := GetEnv("CORS_DEBUG", "") == "true"

	return FrontendConfig{
		URL:       GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: corsDebug,
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := GetEnv("ENVIRONMENT", "development")
	format := GetEnv("LOG_FORMAT", "text")
	jsonFormat := environment == "production" || format == "json"

	return LoggingConfig{
		Level:      GetEnv("LOG_LEVEL", "debug"),
		Format:     format,
		JSONFormat: jsonFormat,
	}
}

func loadRateLimitConfig() RateLimitConfig {
	enabled := GetEnv("RATE_LIMIT_ENABLED", "true") == "true"
	requestsPerSecond, _ := strconv.ParseFloat(GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "10"), 64)
	burstSize, _ := strconv.Atoi(GetEnv("RATE_LIMIT_BURST_SIZE", "20"))

	return RateLimitConfig{
		Enabled:           enabled,
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
		TrustProxy:        GetEnv("RATE_LIMIT_TRUST_PROXY", "false") == "true",
	}
}

func loadGenerationConfig() (GenerationConfig, error) {
	seed, err := strconv.ParseInt(GetEnv("GENERATION_SEED", "0"), 10, 64)
	if err != nil {
		return GenerationConfig{}, fmt.Errorf("GENERATION_SEED must be an integer: %w", err)
	}
	maxBatch, _ := strconv.Atoi(GetEnv("GENERATION_MAX_SPECIES_BATCH", "200"))
	workers, _ := strconv.Atoi(GetEnv("GENERATION_WORKERS", "4"))

	return GenerationConfig{
		Seed:            seed,
		DefaultPreset:   GetEnv("GENERATION_DEFAULT_PRESET", "Gaian"),
		MaxSpeciesBatch: maxBatch,
		Workers:         workers,
	}, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case DriverSQLite:
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if c.Generation.MaxSpeciesBatch < 1 {
		return fmt.Errorf("GENERATION_MAX_SPECIES_BATCH must be positive")
	}

	if c.Generation.Workers < 1 {
		return fmt.Errorf("GENERATION_WORKERS must be positive")
	}

	return nil
}

func (c *Config) ConnectionString() string {
	if c.Database.Driver == DriverSQLite {
		return c.Database.DSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
