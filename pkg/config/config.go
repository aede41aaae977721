package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        int

	// database pool
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBPingTimeout     time.Duration

	// open ai
	OpenAIKey            string
	OpenAIEmbeddingModel string
	OpenAIChatModel      string

	// rag config
	ChunkSize       int
	ChunkOverlap    int
	TopKResults     int
	SnippetLength   int
	EmbeddingDim    int
	MaxAnswerTokens int

	// embedding provider limits
	EmbedBatchSize   int
	EmbedConcurrency int
	EmbedMaxRetries  int
	EmbedTimeout     time.Duration
	LLMTimeout       time.Duration

	// ingestion
	StoragePath     string
	VectorBackend   string // pgvector or memory
	StuckJobTimeout time.Duration
}

func Load() *Config {
	godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		port = 8080
	}

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        port,

		// Database pool
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBPingTimeout:     getEnvDuration("DB_PING_TIMEOUT", 5*time.Second),

		// OpenAI
		OpenAIKey:            getEnv("OPENAI_API_KEY", ""),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		OpenAIChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),

		// RAG Config
		ChunkSize:       getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap:    getEnvInt("CHUNK_OVERLAP", 200),
		TopKResults:     getEnvInt("TOP_K_RESULTS", 5),
		SnippetLength:   getEnvInt("SNIPPET_LENGTH", 200),
		EmbeddingDim:    getEnvInt("EMBEDDING_DIM", 1536),
		MaxAnswerTokens: getEnvInt("MAX_ANSWER_TOKENS", 1024),

		// Embedding provider
		EmbedBatchSize:   getEnvInt("EMBED_BATCH_SIZE", 64),
		EmbedConcurrency: getEnvInt("EMBED_CONCURRENCY", 4),
		EmbedMaxRetries:  getEnvInt("EMBED_MAX_RETRIES", 3),
		EmbedTimeout:     getEnvDuration("EMBED_TIMEOUT", 30*time.Second),
		LLMTimeout:       getEnvDuration("LLM_TIMEOUT", 45*time.Second),

		// Ingestion
		StoragePath:     getEnv("STORAGE_PATH", "./uploads"),
		VectorBackend:   getEnv("VECTOR_BACKEND", "pgvector"),
		StuckJobTimeout: getEnvDuration("STUCK_JOB_TIMEOUT", 10*time.Minute),
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

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
