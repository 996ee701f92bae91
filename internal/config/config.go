package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Socket   SocketConfig
	Storage  StorageConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name         string
	Port         int
	Env          string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SocketConfig tunes the websocket channel.
type SocketConfig struct {
	Path           string
	MaxMessageSize int64
	WriteWait      time.Duration
	PongWait       time.Duration
}

// StorageConfig locates chat attachments. PublicBaseURL prefixes the links
// handed to clients and may be absolute; RoutePrefix is the path the API
// serves the files under.
type StorageConfig struct {
	UploadDir     string
	PublicBaseURL string
	RoutePrefix   string
	MaxUploadSize int64
}

type CronConfig struct {
	Enabled        bool
	LeaveSeedSpec  string
	MarkAbsentSpec string
	Timezone       string
	JobTimeout     time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}

	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	readTimeout, err := getEnvDuration("APP_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvDuration("APP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Name:         getEnv("APP_NAME", "hrms-backend"),
		Port:         appPort,
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:4200"}),
	}

	maxMessage, err := getEnvInt("WS_MAX_MESSAGE_SIZE", 64*1024)
	if err != nil {
		return nil, err
	}
	writeWait, err := getEnvDuration("WS_WRITE_WAIT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	pongWait, err := getEnvDuration("WS_PONG_WAIT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	config.Socket = SocketConfig{
		Path:           getEnv("WS_PATH", "/ws"),
		MaxMessageSize: int64(maxMessage),
		WriteWait:      writeWait,
		PongWait:       pongWait,
	}

	maxUpload, err := getEnvInt("UPLOAD_MAX_SIZE", 10<<20)
	if err != nil {
		return nil, err
	}

	publicURL := getEnv("UPLOAD_PUBLIC_URL", "/uploads")
	config.Storage = StorageConfig{
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL: publicURL,
		RoutePrefix:   getEnv("UPLOAD_ROUTE_PREFIX", routePrefixOf(publicURL)),
		MaxUploadSize: int64(maxUpload),
	}

	jobTimeout, err := getEnvDuration("CRON_JOB_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	config.Cron = CronConfig{
		Enabled:        getEnv("CRON_ENABLED", "true") == "true",
		LeaveSeedSpec:  getEnv("CRON_LEAVE_SEED", "5 0 1 1 *"),
		MarkAbsentSpec: getEnv("CRON_MARK_ABSENT", "30 0 * * 2-6"),
		Timezone:       getEnv("CRON_TZ", "Local"),
		JobTimeout:     jobTimeout,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.IsProduction() && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}
	if c.Storage.RoutePrefix != "" && !strings.HasPrefix(c.Storage.RoutePrefix, "/") {
		return fmt.Errorf("UPLOAD_ROUTE_PREFIX must start with /")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// routePrefixOf takes the path of an upload base URL, so that
// "https://cdn.example.com/files/" is served locally under "/files".
func routePrefixOf(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "/uploads"
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" || !strings.HasPrefix(p, "/") {
		return "/uploads"
	}
	return p
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
