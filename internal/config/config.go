package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Admin     AdminConfig
	SMTP      SMTPConfig
	App       AppConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Upload    UploadConfig
	History   HistoryConfig
	Jobs      JobsConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
	LogLevel    string
	MaxBodySize int64
}

type DatabaseConfig struct {
	Driver           string // postgres or memory
	Host             string
	Port             string
	User             string
	Password         string
	DBName           string
	SSLMode          string
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
	AutoMigrate      bool
}

type JWTConfig struct {
	Secret            string
	ExpiryHours       int
	SellerExpiryHours int
}

type AuthConfig struct {
	BcryptCost    int
	ResetTokenTTL time.Duration
	CookieName    string
}

type AdminConfig struct {
	// Secret gates the shared-secret admin surface. Empty means that surface answers 503.
	Secret         string
	BootstrapEmail string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type AppConfig struct {
	FrontendURL          string
	ServiceChargePercent float64
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
	RedisURL     string
	Window       time.Duration
	MaxRequests  int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type UploadConfig struct {
	Driver        string // disk or s3
	Dir           string
	PublicBaseURL string
	MaxBytes      int64
	S3Bucket      string
	S3Region      string
	S3Prefix      string
	S3Endpoint    string
}

type HistoryConfig struct {
	Enabled bool
}

type JobsConfig struct {
	ResetTokenCleanupSchedule string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("MAX_BODY_BYTES", 10<<20)

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", "30s")
	v.SetDefault("DB_STATEMENT_TIMEOUT", "45s")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("JWT_EXPIRY_HOURS", 720)
	v.SetDefault("SELLER_JWT_EXPIRY_HOURS", 720)

	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("RESET_TOKEN_TTL", "1h")
	v.SetDefault("AUTH_COOKIE_NAME", "token")

	v.SetDefault("SMTP_PORT", 587)

	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("SERVICE_CHARGE_PERCENT", 5.0)

	v.SetDefault("RATE_LIMIT_GENERAL_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_GENERAL_BURST", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("RATE_LIMIT_MAX", 100)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Authorization,X-Admin-Secret,X-Request-ID")
	v.SetDefault("CORS_EXPOSED_HEADERS", "X-Request-ID")
	v.SetDefault("CORS_ALLOW_CREDENTIALS", true)
	v.SetDefault("CORS_MAX_AGE", 12*3600)

	v.SetDefault("UPLOAD_DRIVER", "disk")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_PUBLIC_BASE_URL", "/uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 5<<20)

	v.SetDefault("HISTORY_ENABLED", true)
	v.SetDefault("RESET_TOKEN_CLEANUP_SCHEDULE", "@every 1h")
}

func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(homeDir)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        v.GetString("SERVER_PORT"),
			Host:        v.GetString("SERVER_HOST"),
			Environment: v.GetString("ENVIRONMENT"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			MaxBodySize: v.GetInt64("MAX_BODY_BYTES"),
		},
		Database: DatabaseConfig{
			Driver:           strings.ToLower(v.GetString("DB_DRIVER")),
			Host:             v.GetString("DB_HOST"),
			Port:             v.GetString("DB_PORT"),
			User:             v.GetString("DB_USER"),
			Password:         v.GetString("DB_PASSWORD"),
			DBName:           v.GetString("DB_NAME"),
			SSLMode:          v.GetString("DB_SSLMODE"),
			ConnectTimeout:   v.GetDuration("DB_CONNECT_TIMEOUT"),
			StatementTimeout: v.GetDuration("DB_STATEMENT_TIMEOUT"),
			AutoMigrate:      v.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:            v.GetString("JWT_SECRET"),
			ExpiryHours:       v.GetInt("JWT_EXPIRY_HOURS"),
			SellerExpiryHours: v.GetInt("SELLER_JWT_EXPIRY_HOURS"),
		},
		Auth: AuthConfig{
			BcryptCost:    v.GetInt("BCRYPT_COST"),
			ResetTokenTTL: v.GetDuration("RESET_TOKEN_TTL"),
			CookieName:    v.GetString("AUTH_COOKIE_NAME"),
		},
		Admin: AdminConfig{
			Secret:         strings.TrimSpace(v.GetString("ADMIN_SECRET")),
			BootstrapEmail: strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_BOOTSTRAP_EMAIL"))),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		App: AppConfig{
			FrontendURL:          strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
			ServiceChargePercent: v.GetFloat64("SERVICE_CHARGE_PERCENT"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   v.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: v.GetInt("RATE_LIMIT_GENERAL_BURST"),
			RedisURL:     v.GetString("REDIS_URL"),
			Window:       v.GetDuration("RATE_LIMIT_WINDOW"),
			MaxRequests:  v.GetInt("RATE_LIMIT_MAX"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods:   splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders:   splitList(v.GetString("CORS_ALLOWED_HEADERS")),
			ExposedHeaders:   splitList(v.GetString("CORS_EXPOSED_HEADERS")),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           v.GetInt("CORS_MAX_AGE"),
		},
		Upload: UploadConfig{
			Driver:        strings.ToLower(v.GetString("UPLOAD_DRIVER")),
			Dir:           v.GetString("UPLOAD_DIR"),
			PublicBaseURL: strings.TrimRight(v.GetString("UPLOAD_PUBLIC_BASE_URL"), "/"),
			MaxBytes:      v.GetInt64("UPLOAD_MAX_BYTES"),
			S3Bucket:      v.GetString("S3_BUCKET"),
			S3Region:      v.GetString("S3_REGION"),
			S3Prefix:      v.GetString("S3_PREFIX"),
			S3Endpoint:    v.GetString("S3_ENDPOINT"),
		},
		History: HistoryConfig{
			Enabled: v.GetBool("HISTORY_ENABLED"),
		},
		Jobs: JobsConfig{
			ResetTokenCleanupSchedule: v.GetString("RESET_TOKEN_CLEANUP_SCHEDULE"),
		},
	}

	return config, nil
}

// Validate reports settings the process cannot start without.
// A missing admin secret is not fatal: the admin surface fails closed instead.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for the postgres driver"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver))
	}
	switch c.Upload.Driver {
	case "disk":
	case "s3":
		if c.Upload.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 upload driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown UPLOAD_DRIVER %q", c.Upload.Driver))
	}
	if c.IsProduction() && c.SMTP.Host == "" {
		errs = append(errs, errors.New("SMTP_HOST is required in production"))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d out of range", c.Auth.BcryptCost))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "" || c.Server.Environment == "development"
}

func (c *Config) UserSessionTTL() time.Duration {
	return time.Duration(c.JWT.ExpiryHours) * time.Hour
}

func (c *Config) SellerSessionTTL() time.Duration {
	return time.Duration(c.JWT.SellerExpiryHours) * time.Hour
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d statement_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
		int(c.ConnectTimeout.Seconds()), c.StatementTimeout.Milliseconds(),
	)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
