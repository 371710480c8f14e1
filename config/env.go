package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI=true wins over ENV,
// and an unknown or empty ENV means development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps an ENV value to an Environment.
func ParseEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	case "ci":
		return CI
	default:
		return Development
	}
}

// UsesDotEnv reports whether a local .env file should be consulted.
func (e Environment) UsesDotEnv() bool {
	return e == Development || e == Test
}

// UsesSecretFiles reports whether secrets may be overlaid from SECRETS_DIR.
// CI injects everything through the environment.
func (e Environment) UsesSecretFiles() bool {
	return e != CI
}

func IsDevelopment() bool {
	return GetEnvironment() == Development
}

func IsTest() bool {
	return GetEnvironment() == Test
}

func IsCI() bool {
	return GetEnvironment() == CI
}

func IsProduction() bool {
	return GetEnvironment() == Production
}
