package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/data/scrapeCache"
	"github.com/ravidu/futureminds/internal/handlers"
	"github.com/ravidu/futureminds/internal/rag"
	"github.com/ravidu/futureminds/internal/rag/embedding/googleEmbedding"
	"github.com/ravidu/futureminds/internal/rag/llm"
	"github.com/ravidu/futureminds/internal/rag/llm/gemini"
	"github.com/ravidu/futureminds/internal/rag/llm/openai"
	"github.com/ravidu/futureminds/internal/rag/synthesis"
	"github.com/ravidu/futureminds/internal/rag/vectorDB/qdrantDB"
	"github.com/ravidu/futureminds/internal/rag/webaug"
	"github.com/ravidu/futureminds/internal/server"
	"github.com/ravidu/futureminds/pkg/logging"
)

func main() {
	logging.Init(config.IS_PROD, config.LOG_LEVEL_PROD)
	logger := logging.NewLogger("main")

	settings, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	embedder, err := googleEmbedding.NewClient(ctx, config.GoogleEmbeddingModel, settings.GoogleAPIKey)
	if err != nil {
		logger.Error("embedding client failed to initialize", "error", err)
		os.Exit(1)
	}

	index, err := qdrantDB.NewStore(qdrantDB.Config{
		Host:       settings.QdrantHost,
		Port:       settings.QdrantPort,
		UseTLS:     config.QdrantUseTLS,
		Collection: config.CollectionName,
	}, embedder)
	if err != nil {
		logger.Error("vector store failed to initialize", "error", err)
		os.Exit(1)
	}
	defer index.Close()

	// a missing collection is a refusal to serve, not a degraded mode
	if err := index.EnsureCollection(ctx); err != nil {
		logger.Error("collection check failed, run ingestion first", "error", err)
		os.Exit(1)
	}

	var provider llm.Provider
	switch settings.LLMProvider {
	case "openai":
		provider = openai.NewClient(config.OpenAIModelName, settings.OpenAIAPIKey)
	default:
		provider, err = gemini.NewClient(ctx, config.GeminiModelName, settings.GoogleAPIKey)
		if err != nil {
			logger.Error("gemini client failed to initialize", "error", err)
			os.Exit(1)
		}
	}

	var augmentor rag.Augmentor
	if settings.WebAugEnabled {
		cache := scrapeCache.New(ctx, settings.RedisAddr, config.RedisScrapeDB)
		defer cache.Close()
		augmentor = webaug.NewAugmentor(webaug.NewScraper(cache))
	} else {
		logger.Info("web augmentation disabled")
	}

	ragService := rag.NewService(index, synthesis.New(provider), augmentor)
	srv := server.New(settings, handlers.New(ragService))

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() { serverErr <- srv.Run() }()

	select {
	case sig := <-gracefulShutdown:
		logger.Info("shutting down", "signal", sig.String())
		if err := srv.Shutdown(); err != nil {
			os.Exit(1)
		}
	case err := <-serverErr:
		if err != nil {
			logger.Error("server crashed", "error", err)
			os.Exit(1)
		}
	}
}
