package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type check struct {
	field string
	ok    func(*Config) bool
	msg   string
}

func required(field string, get func(*Config) string) check {
	return check{field, func(c *Config) bool { return strings.TrimSpace(get(c)) != "" }, "is required"}
}

var baseChecks = []check{
	required("JWT_SECRET", func(c *Config) string { return c.JWTSecret }),
	required("SERVER_PORT", func(c *Config) string { return c.ServerPort }),
	{"DB_DRIVER", func(c *Config) bool { return c.DBDriver == "postgres" || c.DBDriver == "sqlite" }, "must be postgres or sqlite"},
	{"DB_PASSWORD", func(c *Config) bool { return c.DBDriver != "postgres" || c.DBPassword != "" }, "is required for postgres"},
	{"EARTH_RADIUS_KM", func(c *Config) bool { return c.EarthRadiusKm > 0 }, "must be positive"},
	{"AROUND_RADIUS_KM", func(c *Config) bool { return c.AroundRadiusKm > 0 }, "must be positive"},
	{"RANDOM_RADIUS_KM", func(c *Config) bool { return c.RandomRadiusKm > 0 }, "must be positive"},
	{"PAGE_SIZE", func(c *Config) bool { return c.PageSize > 0 }, "must be positive"},
	{"ACCESS_TOKEN_TTL", func(c *Config) bool { return c.AccessTokenTTL > 0 }, "must be positive"},
	{"REFRESH_TOKEN_TTL", func(c *Config) bool { return c.RefreshTokenTTL > c.AccessTokenTTL }, "must be longer than ACCESS_TOKEN_TTL"},
	{"JOB_TIMEZONE", func(c *Config) bool { _, err := time.LoadLocation(c.JobTimezone); return err == nil }, "must be a valid IANA zone"},
}

// requirements adds checks per environment on top of baseChecks.
var requirements = map[Environment][]check{
	Production: {
		{"JWT_SECRET", func(c *Config) bool { return len(c.JWTSecret) >= 32 }, "must be at least 32 bytes in production"},
		{"DB_DRIVER", func(c *Config) bool { return c.DBDriver == "postgres" }, "must be postgres in production"},
		required("S3_BUCKET_NAME", func(c *Config) string { return c.S3BucketName }),
		required("FCM_PROJECT_ID", func(c *Config) string { return c.FCMProjectID }),
		required("FCM_CREDENTIALS_FILE", func(c *Config) string { return c.FCMCredentialsFile }),
		required("KAKAO_CLIENT_ID", func(c *Config) string { return c.KakaoClientID }),
	},
}

// ValidateConfig checks the configuration against the requirements of its
// environment and reports every failure at once.
func ValidateConfig(cfg *Config) error {
	checks := append([]check{}, baseChecks...)
	checks = append(checks, requirements[cfg.Environment]...)

	var errs []string
	for _, c := range checks {
		if !c.ok(cfg) {
			errs = append(errs, ValidationError{Field: c.field, Message: c.msg}.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
