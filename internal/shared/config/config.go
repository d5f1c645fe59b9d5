package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration.
type Config struct {
	Port            string   `validate:"required"`
	CORSAllowOrigin []string
	ObjectStoreType string `validate:"oneof=local s3"`
	LocalStoreDir   string
	AWSRegion       string `validate:"required_if=ObjectStoreType s3"`
	S3Bucket        string `validate:"required_if=ObjectStoreType s3"`
	S3Prefix        string
	SSEKMSKeyID     string
	DatabaseURL     string
	Env             string `validate:"oneof=production staging local dev"`

	LLMProvider       string `validate:"oneof=vertex gemini none"`
	LLMModel          string `validate:"required"`
	GoogleProject     string `validate:"required_if=LLMProvider vertex"`
	GoogleRegion      string
	GeminiAPIKey      string
	LLMTimeoutSeconds int  `validate:"gte=0"`
	RequireRealAI     bool
	AllowAIFallbacks  bool
	LLMProfiles       map[string]LLMProfile

	FirebaseProjectID string
	AuthDevBypass     bool

	AIRateWindowMS int `validate:"gt=0"`
	AIRateMax      int `validate:"gt=0"`
}

// LLMProfile carries per-call generation defaults.
type LLMProfile struct {
	Temperature     float32
	MaxOutputTokens int32
}

var defaultProfiles = map[string]LLMProfile{
	"resume_extract":  {Temperature: 0.3, MaxOutputTokens: 2048},
	"interview":       {Temperature: 0.6, MaxOutputTokens: 2048},
	"cover_letter":    {Temperature: 0.7, MaxOutputTokens: 1024},
	"market_trends":   {Temperature: 0.5, MaxOutputTokens: 1536},
	"recommendations": {Temperature: 0.5, MaxOutputTokens: 2048},
	"resume_analysis": {Temperature: 0.3, MaxOutputTokens: 1536},
	"probe":           {Temperature: 0, MaxOutputTokens: 5},
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Env:             env,

		LLMProvider:       normalizeProvider(getEnv("LLM_PROVIDER", "vertex")),
		LLMModel:          getEnv("LLM_MODEL", "gemini-1.5-flash"),
		GoogleProject:     getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleRegion:      getEnv("GOOGLE_CLOUD_REGION", "us-central1"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		LLMTimeoutSeconds: getInt("LLM_TIMEOUT_SECONDS", 60),
		RequireRealAI:     getBool("REQUIRE_REAL_AI", false),
		AllowAIFallbacks:  getBool("ALLOW_AI_FALLBACKS", true),
		LLMProfiles:       loadProfiles(),

		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		AuthDevBypass:     getBool("AUTH_DEV_BYPASS", false),

		AIRateWindowMS: getInt("AI_RATE_WINDOW_MS", 60000),
		AIRateMax:      getInt("AI_RATE_MAX", 15),
	}
	if env == "production" {
		cfg.AuthDevBypass = false
	}
	return cfg
}

// Validate checks the struct tags and cross-field rules.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Env == "production" && c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required in production")
	}
	if c.LLMProvider == "gemini" && c.GeminiAPIKey == "" && c.GoogleProject == "" {
		return fmt.Errorf("config: gemini provider needs GEMINI_API_KEY or GOOGLE_CLOUD_PROJECT")
	}
	return nil
}

// StrictAI reports whether an LLM failure must fail the request.
func (c Config) StrictAI() bool {
	return c.RequireRealAI || !c.AllowAIFallbacks
}

// IsDev reports whether error details may be exposed to clients.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "local"
}

// Profile returns the generation defaults for a call type.
func (c Config) Profile(name string) LLMProfile {
	if p, ok := c.LLMProfiles[name]; ok {
		return p
	}
	if p, ok := defaultProfiles[name]; ok {
		return p
	}
	return LLMProfile{Temperature: 0.3, MaxOutputTokens: 1024}
}

func loadProfiles() map[string]LLMProfile {
	out := make(map[string]LLMProfile, len(defaultProfiles))
	for name, p := range defaultProfiles {
		prefix := "LLM_" + strings.ToUpper(name) + "_"
		if raw := os.Getenv(prefix + "TEMPERATURE"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 32); err == nil {
				p.Temperature = float32(v)
			}
		}
		if n := getInt(prefix+"MAX_TOKENS", 0); n > 0 {
			p.MaxOutputTokens = int32(n)
		}
		out[name] = p
	}
	return out
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
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
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "s3") {
		return "s3"
	}
	return "local"
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "genai":
		return "gemini"
	case "none", "off", "disabled":
		return "none"
	default:
		return "vertex"
	}
}
