package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//embeddings - all vectors in a collection must share this dimensionality
	EmbeddingOutputDimensionality int32 = 768
	MaxEmbedBatch                       = 100

	//collection holding the textbook chunks
	CollectionName = "history_textbook"

	//chunking defaults (sentence-grouped segmenter)
	ChunkSentenceCount  = 4
	MinSentenceLength   = 30
	SplitterChunkSize   = 1000
	SplitterOverlap     = 150
	UpsertBatchSize     = 100
	RetrievalTopK       = 5
	ContextPreviewLen   = 250

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	ServerListenAddr = ":3000"

	//vectorDB
	QdrantHost             = "127.0.0.1"
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1

	//llm
	GeminiModelName      = "gemini-2.5-flash"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIModelName      = "gpt-4o-mini"

	//web augmentation
	ScrapeTimeout        = 15 * time.Second
	ScrapeDelay          = 1 * time.Second
	ScrapeMaxURLs        = 5
	ScrapePageLimit      = 3000
	ScrapeCacheTTL       = 24 * time.Hour

	//synthesis degrade budgets (characters)
	BudgetTotal       = 8000
	BudgetWebBio      = 6000
	BudgetContextBio  = 2000

	//redis
	RedisAddr     = "127.0.0.1:6379"
	RedisPassword = ""
	RedisScrapeDB = 2
)

// Settings carries everything read from the environment at startup. Missing
// credentials are a refusal to start, not a degraded mode.
type Settings struct {
	GoogleAPIKey  string
	OpenAIAPIKey  string
	LLMProvider   string // "gemini" or "openai"
	AuthToken     string
	NoAuthBypass  bool
	QdrantHost    string
	QdrantPort    int
	RedisAddr     string
	WebAugEnabled bool
}

// Load reads .env (if present) and the process environment. The Google key is
// mandatory: it backs both the embedder and the default generation model.
func Load() (Settings, error) {
	_ = godotenv.Load()

	s := Settings{
		GoogleAPIKey:  os.Getenv("GOOGLE_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		LLMProvider:   getEnvDefault("LLM_PROVIDER", "gemini"),
		AuthToken:     os.Getenv("AUTH_TOKEN"),
		NoAuthBypass:  os.Getenv("AUTH_TOKEN") == "",
		QdrantHost:    getEnvDefault("QDRANT_HOST", QdrantHost),
		QdrantPort:    getEnvIntDefault("QDRANT_PORT", QdrantGrpcPort),
		RedisAddr:     getEnvDefault("REDIS_ADDR", RedisAddr),
		WebAugEnabled: os.Getenv("WEB_AUGMENT") != "off",
	}

	if s.GoogleAPIKey == "" {
		return Settings{}, fmt.Errorf("GOOGLE_API_KEY not set")
	}
	if s.LLMProvider == "openai" && s.OpenAIAPIKey == "" {
		return Settings{}, fmt.Errorf("LLM_PROVIDER=openai but OPENAI_API_KEY not set")
	}
	return s, nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntDefault(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
