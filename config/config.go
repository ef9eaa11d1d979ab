package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port      string
	LogLevel  string
	SecretKey string

	DatabaseURL string

	GiftProvider  string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	UnsplashAccessKey string
	UnsplashBaseURL   string

	StripeSecretKey string
	Currency        string

	MetricsUser string
	MetricsPass string

	RateLimitRPS   float64
	RateLimitBurst int
	TrustProxy     bool
}

func LoadConfig() *Config {
	return &Config{
		Port:      getEnv("PORT", "3333"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		SecretKey: getEnv("SECRET_KEY", "dev-secret-key"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		GiftProvider:  strings.ToLower(getEnv("GIFT_PROVIDER", "gemini")),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		UnsplashAccessKey: getEnv("UNSPLASH_ACCESS_KEY", ""),
		UnsplashBaseURL:   getEnv("UNSPLASH_BASE_URL", "https://api.unsplash.com"),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		Currency:        strings.ToLower(getEnv("CURRENCY", "usd")),

		MetricsUser: getEnv("METRICS_USER", ""),
		MetricsPass: getEnv("METRICS_PASS", ""),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 30),
		TrustProxy:     strings.EqualFold(getEnv("TRUST_PROXY", "false"), "true"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
