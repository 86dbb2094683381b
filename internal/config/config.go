package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DataPath         string
	StorageNamespace string
	JWTSecret        string
	AppEnv           string
	LogLevel         string
	LogFormat        string
	EnableDemoSignin bool
	EnableDocs       bool
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DataPath:         getEnv("DATA_PATH", "data/portal.db"),
		StorageNamespace: getEnv("STORAGE_NAMESPACE", "myfirstday"),
		JWTSecret:        jwtSecret,
		AppEnv:           normalizeEnv(getEnv("APP_ENV", "production")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		EnableDemoSignin: getEnvBool("ENABLE_DEMO_SIGNIN", false),
		EnableDocs:       getEnvBool("ENABLE_DOCS", false),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

// DemoSigninEnabled gates the unverified identity-token sign-in path. It is
// a demo shortcut, never a security boundary, so it only exists in
// development builds that opt in.
func (c *Config) DemoSigninEnabled() bool {
	return c != nil && c.EnableDemoSignin && c.AppEnv == "development"
}

// DocsEnabled gates the self-hosted API docs pages. The docs surface is a
// development aid and never ships in other environments.
func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}
