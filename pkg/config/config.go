package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	API      APIConfig      `mapstructure:"api"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Type         string        `mapstructure:"type"` // postgres, sqlite
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	DBName       string        `mapstructure:"dbname"`
	Path         string        `mapstructure:"path"`    // For SQLite
	SSLMode      string        `mapstructure:"sslmode"` // For PostgreSQL
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxLifetime  time.Duration `mapstructure:"max_lifetime"`
}

// AuthConfig holds the token authorizer configuration. All values are read
// once at startup; there is no hot reload.
type AuthConfig struct {
	Domain       string        `mapstructure:"domain"`   // identity provider authority domain
	Audience     string        `mapstructure:"audience"` // expected aud claim
	Issuer       string        `mapstructure:"issuer"`   // expected iss claim
	Algorithms   []string      `mapstructure:"algorithms"`
	JWKSCacheTTL time.Duration `mapstructure:"jwks_cache_ttl"`
	JWKSTimeout  time.Duration `mapstructure:"jwks_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// APIConfig holds API-related configuration
type APIConfig struct {
	RateLimit  int        `mapstructure:"rate_limit"` // requests per minute
	BurstLimit int        `mapstructure:"burst_limit"`
	CORS       CORSConfig `mapstructure:"cors"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	setDefaults()

	viper.SetConfigFile(configPath)

	// Allow environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("COFFEESHOP")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults and env vars
			fmt.Printf("Warning: Config file not found at %s, using defaults\n", configPath)
		} else {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	overrideWithEnvVars()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %v", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")

	// Database defaults
	viper.SetDefault("database.type", "sqlite")
	viper.SetDefault("database.path", "./drinks.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_lifetime", "5m")

	// Auth defaults
	viper.SetDefault("auth.algorithms", []string{"RS256"})
	viper.SetDefault("auth.jwks_cache_ttl", "10m")
	viper.SetDefault("auth.jwks_timeout", "5s")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.file", "./logs/app.log")
	viper.SetDefault("logging.max_size", 100)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 28)
	viper.SetDefault("logging.compress", true)

	// API defaults
	viper.SetDefault("api.rate_limit", 100)
	viper.SetDefault("api.burst_limit", 200)

	// CORS defaults
	viper.SetDefault("api.cors.allowed_origins", []string{"http://localhost:3000"})
	viper.SetDefault("api.cors.allow_credentials", true)
	viper.SetDefault("api.cors.max_age", 86400)
}

// overrideWithEnvVars overrides config with specific environment variables
func overrideWithEnvVars() {
	envMappings := map[string]string{
		"AUTH0_DOMAIN":   "auth.domain",
		"AUTH0_AUDIENCE": "auth.audience",
		"AUTH0_ISSUER":   "auth.issuer",
		"DB_PASSWORD":    "database.password",
		"DB_USER":        "database.user",
	}

	for envVar, configKey := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			viper.Set(configKey, value)
		}
	}
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if config.Auth.Domain == "" {
		return fmt.Errorf("auth domain is required")
	}

	if config.Auth.Audience == "" {
		return fmt.Errorf("auth audience is required")
	}

	if config.Auth.Issuer == "" {
		config.Auth.Issuer = fmt.Sprintf("https://%s/", config.Auth.Domain)
	}

	if config.IsProduction() && !strings.HasPrefix(config.Auth.Issuer, "https://") {
		return fmt.Errorf("auth issuer must use https in production")
	}

	if len(config.Auth.Algorithms) == 0 {
		return fmt.Errorf("at least one signature algorithm is required")
	}

	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Database.Type {
	case "postgres":
		if config.Database.Host == "" || config.Database.User == "" {
			return fmt.Errorf("postgres requires host and user")
		}
	case "sqlite":
		if config.Database.Path == "" {
			return fmt.Errorf("sqlite requires path")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}

	return nil
}

// JWKSURL returns the provider's well-known key set endpoint
func (c *Config) JWKSURL() string {
	return fmt.Sprintf("https://%s/.well-known/jwks.json", c.Auth.Domain)
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	switch c.Database.Type {
	case "postgres":
		sslMode := c.Database.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Database.Host, c.Database.Port, c.Database.User,
			c.Database.Password, c.Database.DBName, sslMode)
	case "sqlite":
		return c.Database.Path
	default:
		return ""
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Mode == "debug" || c.Server.Mode == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "release" || c.Server.Mode == "production"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// SanitizeForLogging returns a copy of the config with sensitive data redacted
func (c *Config) SanitizeForLogging() *Config {
	sanitized := *c

	if sanitized.Database.Password != "" {
		sanitized.Database.Password = "[REDACTED]"
	}

	return &sanitized
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// LoadConfigFromEnv loads configuration primarily from environment variables
func LoadConfigFromEnv() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Server.Host = getEnvOrDefault("SERVER_HOST", "0.0.0.0")
	config.Server.Port = getEnvOrDefault("SERVER_PORT", "8080")
	config.Server.Mode = getEnvOrDefault("GIN_MODE", "debug")
	config.Server.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second)
	config.Server.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second)
	config.Server.IdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database configuration
	config.Database.Type = getEnvOrDefault("DB_TYPE", "sqlite")
	config.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	config.Database.Port = getEnvInt("DB_PORT", 5432)
	config.Database.User = getEnvOrDefault("DB_USER", "coffeeshop")
	config.Database.Password = os.Getenv("DB_PASSWORD")
	config.Database.DBName = getEnvOrDefault("DB_NAME", "coffeeshop")
	config.Database.Path = getEnvOrDefault("DB_PATH", "./drinks.db")
	config.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 25)
	config.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 10)
	config.Database.MaxLifetime = getEnvDuration("DB_MAX_LIFETIME", 5*time.Minute)

	// Auth configuration
	config.Auth.Domain = os.Getenv("AUTH0_DOMAIN")
	config.Auth.Audience = os.Getenv("AUTH0_AUDIENCE")
	config.Auth.Issuer = os.Getenv("AUTH0_ISSUER")
	config.Auth.Algorithms = []string{getEnvOrDefault("AUTH_ALGORITHM", "RS256")}
	config.Auth.JWKSCacheTTL = getEnvDuration("JWKS_CACHE_TTL", 10*time.Minute)
	config.Auth.JWKSTimeout = getEnvDuration("JWKS_TIMEOUT", 5*time.Second)

	// Logging configuration
	config.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	config.Logging.Format = getEnvOrDefault("LOG_FORMAT", "text")
	config.Logging.File = getEnvOrDefault("LOG_FILE", "./logs/app.log")

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}
