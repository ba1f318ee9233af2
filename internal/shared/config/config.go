package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string

	GCPProjectID    string
	DocAILocation   string
	FormProcessorID string
	BankProcessorID string

	APIKey          string
	UpstreamTimeout time.Duration

	AWSRegion     string
	LocalStoreDir string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	projectID := os.Getenv("GCP_PROJECT_ID")

	if env == "production" && projectID == "" {
		log.Printf("GCP_PROJECT_ID is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		LogLevel:        normalizeLogLevel(getEnv("LOG_LEVEL", "info")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		GCPProjectID:    projectID,
		DocAILocation:   getEnv("DOCUMENT_AI_LOCATION", "us"),
		FormProcessorID: getEnv("DOCUMENT_AI_FORM_PROCESSOR", ""),
		BankProcessorID: getEnv("DOCUMENT_AI_BANK_STATEMENT_PROCESSOR", ""),
		APIKey:          getEnv("API_KEY", ""),
		UpstreamTimeout: getEnvSeconds("UPSTREAM_TIMEOUT_SECONDS", 120*time.Second),
		AWSRegion:       getEnv("AWS_REGION", ""),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("invalid %s=%q, using default %s", key, raw, def)
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeLogLevel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return "debug"
	case "warn", "warning":
		return "warn"
	case "error":
		return "error"
	default:
		return "info"
	}
}
