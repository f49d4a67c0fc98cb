package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        int

	// embedding providers
	OpenAIKey            string
	OpenAIBaseURL        string
	OpenAIEmbeddingModel string
	EmbeddingDim         int

	// ocr providers
	TrOCRURL string

	// ingestion config
	ChunkSize      int
	TopKResults    int
	WorkerPoolSize int

	// database pool
	MaxOpenConns int
	MaxIdleConns int
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnvInt("PORT", 8080),

		// embedding providers
		OpenAIKey:            getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", ""),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "all-MiniLM-L6-v2"),
		EmbeddingDim:         getEnvInt("EMBEDDING_DIM", 384),

		// OCR
		TrOCRURL: getEnv("TROCR_URL", ""),

		// ingestion
		ChunkSize:      getEnvInt("CHUNK_SIZE", 500),
		TopKResults:    getEnvInt("TOP_K_RESULTS", 5),
		WorkerPoolSize: getEnvInt("WORKER_POOL_SIZE", 4),

		// database pool
		MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
