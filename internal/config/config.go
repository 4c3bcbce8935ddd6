package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config carries every runtime knob of the chatbot backend. All values come
// from the environment, optionally seeded from a .env file.
type Config struct {
	Port string

	GeminiAPIKey      string
	GeminiModel       string
	GeminiTemperature float64
	GeminiMaxTokens   int
	FallbackEnabled   bool
	EmbeddingModel    string

	RedisAddr           string
	SessionMessageLimit int

	QdrantHost       string
	QdrantPort       int
	QdrantCollection string
	CacheThreshold   float64

	AnalyticsDBPath string

	LogLevel  string
	LogToFile bool
}

// Load reads the environment. Missing optional integrations (Redis, Qdrant,
// Gemini key) leave their fields empty and the corresponding feature off.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using system environment variables")
	}

	return Config{
		Port: getEnv("PORT", "3000"),

		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiTemperature: clampFloat(getFloat("GEMINI_TEMPERATURE", 0.7), 0, 1),
		GeminiMaxTokens:   clampInt(getInt("GEMINI_MAX_TOKENS", 500), 100, 2000),
		FallbackEnabled:   os.Getenv("GEMINI_FALLBACK_ENABLED") != "false",
		EmbeddingModel:    getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),

		RedisAddr:           os.Getenv("REDIS_ADDR"),
		SessionMessageLimit: getInt("SESSION_MESSAGE_LIMIT", 100),

		QdrantHost:       os.Getenv("QDRANT_HOST"),
		QdrantPort:       getInt("QDRANT_PORT", 6334),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "reply_cache"),
		CacheThreshold:   getFloat("CACHE_SCORE_THRESHOLD", 0.90),

		AnalyticsDBPath: os.Getenv("ANALYTICS_DB_PATH"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogToFile: os.Getenv("LOG_TO_FILE") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
