package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Auth collaborator configuration
	Auth AuthConfig

	// Moderation configuration
	Moderation ModerationConfig

	// Upload configuration
	Upload UploadConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// AuthConfig holds the bearer token verification settings
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// ModerationConfig names the identities allowed to moderate
type ModerationConfig struct {
	ModeratorEmails []string
}

// UploadConfig holds image upload settings
type UploadConfig struct {
	Dir       string
	URLPrefix string
	MaxSize   int64 // in bytes
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from the environment, with an optional .env file
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Name:           v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			MaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxLifetime:    v.GetDuration("DB_MAX_LIFETIME"),
			MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			Issuer:    v.GetString("JWT_ISSUER"),
		},
		Moderation: ModerationConfig{
			ModeratorEmails: splitList(v.GetString("MODERATOR_EMAILS")),
		},
		Upload: UploadConfig{
			Dir:       v.GetString("UPLOAD_DIR"),
			URLPrefix: v.GetString("UPLOAD_URL_PREFIX"),
			MaxSize:   v.GetInt64("MAX_UPLOAD_SIZE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "social_blog")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("MIGRATIONS_PATH", "./migrations")

	v.SetDefault("JWT_ISSUER", "")

	v.SetDefault("UPLOAD_DIR", "./data/uploads")
	v.SetDefault("UPLOAD_URL_PREFIX", "/uploads")
	v.SetDefault("MAX_UPLOAD_SIZE", 5*1024*1024) // 5MB

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Moderation.ModeratorEmails) == 0 {
		return fmt.Errorf("MODERATOR_EMAILS is required")
	}
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// splitList parses a comma separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
