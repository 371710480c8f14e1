package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort         string `env:"SERVER_PORT,default=8080"`
	ServerHost         string `env:"SERVER_HOST,default=0.0.0.0"`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	LogLevel           string `env:"LOG_LEVEL,default=info"`

	// Database configuration
	DBDriver      string `env:"DB_DRIVER,default=postgres"`
	DBHost        string `env:"DB_HOST,default=localhost"`
	DBPort        string `env:"DB_PORT,default=5432"`
	DBUser        string `env:"DB_USER,default=postgres"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME,default=beginvegan"`
	DBSSLMode     string `env:"DB_SSL_MODE,default=disable"`
	SQLitePath    string `env:"SQLITE_PATH,default=beginvegan.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR,default=migrations"`

	// Redis configuration; empty host and URL disables redis
	RedisURL      string `env:"REDIS_URL"`
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT,default=6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	// JWT configuration
	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,default=1h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL,default=336h"`

	// Kakao OAuth2
	KakaoClientID     string `env:"KAKAO_CLIENT_ID"`
	KakaoClientSecret string `env:"KAKAO_CLIENT_SECRET"`
	KakaoRedirectURL  string `env:"KAKAO_REDIRECT_URL,default=http://localhost:8080/oauth2/callback/kakao"`

	// Object storage
	AWSRegion    string `env:"AWS_REGION,default=ap-northeast-2"`
	S3BucketName string `env:"S3_BUCKET_NAME,default=beginvegan-images"`
	S3Endpoint   string `env:"S3_ENDPOINT"`

	// Firebase Cloud Messaging
	FCMProjectID       string  `env:"FCM_PROJECT_ID"`
	FCMCredentialsFile string  `env:"FCM_CREDENTIALS_FILE,default=firebase/beginvegan-firebase-key.json"`
	FCMSendsPerSecond  float64 `env:"FCM_SENDS_PER_SECOND,default=50"`

	// Geography
	EarthRadiusKm  float64 `env:"EARTH_RADIUS_KM,default=6371"`
	AroundRadiusKm float64 `env:"AROUND_RADIUS_KM,default=5"`
	RandomRadiusKm float64 `env:"RANDOM_RADIUS_KM,default=10"`
	PageSize       int     `env:"PAGE_SIZE,default=10"`

	// Nightly rating job
	RatingSchedule string        `env:"RATING_SCHEDULE,default=0 0 * * *"`
	RatingWindow   time.Duration `env:"RATING_WINDOW,default=24h"`
	JobTimezone    string        `env:"JOB_TIMEZONE,default=Asia/Seoul"`

	// Rate limits
	ReviewRateLimit  int           `env:"REVIEW_RATE_LIMIT,default=30"`
	ReviewRateWindow time.Duration `env:"REVIEW_RATE_WINDOW,default=1h"`
	PushRateLimit    int           `env:"PUSH_RATE_LIMIT,default=60"`
	PushRateWindow   time.Duration `env:"PUSH_RATE_WINDOW,default=1m"`
}

// secretFiles maps Docker secret file names onto sensitive fields.
var secretFiles = map[string]func(*Config) *string{
	"db_password":         func(c *Config) *string { return &c.DBPassword },
	"jwt_secret":          func(c *Config) *string { return &c.JWTSecret },
	"redis_password":      func(c *Config) *string { return &c.RedisPassword },
	"kakao_client_secret": func(c *Config) *string { return &c.KakaoClientSecret },
}

// LoadConfig builds a Config from the environment, an optional .env file and
// Docker secrets, then validates it for the current environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env.UsesDotEnv() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	cfg.Environment = env

	if env.UsesSecretFiles() {
		overlaySecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func overlaySecrets(cfg *Config) {
	for name, field := range secretFiles {
		if value := readSecret(name); value != "" {
			*field(cfg) = value
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// PostgresDSN returns the libpq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisEnabled reports whether a redis server is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
