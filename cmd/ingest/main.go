package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/domain/chunkModel"
	"github.com/ravidu/futureminds/internal/rag/chunkio"
	"github.com/ravidu/futureminds/internal/rag/embedding/googleEmbedding"
	"github.com/ravidu/futureminds/internal/rag/segment"
	"github.com/ravidu/futureminds/internal/rag/vectorDB/qdrantDB"
	"github.com/ravidu/futureminds/pkg/logging"
)

var (
	docPath    string
	collection string
	outDir     string
	sentences  int
	minLength  int
	skipIndex  bool
)

// Offline ingestion: extract, segment, persist the chunk files, then rebuild
// the vector collection from scratch.
func main() {
	logging.Init(config.IS_PROD, config.LOG_LEVEL_PROD)
	logger := logging.NewLogger("ingest")

	flag.StringVar(&docPath, "doc", "", "path to the source document (pdf, docx, txt)")
	flag.StringVar(&collection, "collection", config.CollectionName, "vector collection name")
	flag.StringVar(&outDir, "out", "data", "directory for chunk JSON/CSV output")
	flag.IntVar(&sentences, "sentences", config.ChunkSentenceCount, "sentences per chunk")
	flag.IntVar(&minLength, "min-length", config.MinSentenceLength, "minimum sentence length in characters")
	flag.BoolVar(&skipIndex, "skip-index", false, "write chunk files only, do not touch the vector store")
	flag.Parse()

	if docPath == "" {
		logger.Error("missing required -doc flag")
		os.Exit(1)
	}

	settings, err := config.Load()
	if err != nil && !skipIndex {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	pages, err := segment.ExtractPages(docPath)
	if err != nil {
		logger.Error("extraction failed", "doc", docPath, "error", err)
		os.Exit(1)
	}

	opts := segment.Options{ChunkSentences: sentences, MinSentenceLength: minLength}
	chunks := segment.Segment(pages, opts)
	if len(chunks) == 0 {
		logger.Error("no chunks produced", "doc", docPath)
		os.Exit(1)
	}
	logger.Info("segmented document", "pages", len(pages), "chunks", len(chunks))

	if err := os.MkdirAll(outDir, 0750); err != nil {
		logger.Error("cannot create output directory", "dir", outDir, "error", err)
		os.Exit(1)
	}
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	jsonPath := filepath.Join(outDir, base+"_chunks.json")
	csvPath := filepath.Join(outDir, base+"_chunks.csv")
	if err := chunkio.SaveFiles(chunks, jsonPath, csvPath); err != nil {
		logger.Error("writing chunk files failed", "error", err)
		os.Exit(1)
	}
	logger.Info("chunk files written", "json", jsonPath, "csv", csvPath)

	if skipIndex {
		return
	}

	ctx := context.Background()
	embedder, err := googleEmbedding.NewClient(ctx, config.GoogleEmbeddingModel, settings.GoogleAPIKey)
	if err != nil {
		logger.Error("embedding client failed to initialize", "error", err)
		os.Exit(1)
	}

	store, err := qdrantDB.NewStore(qdrantDB.Config{
		Host:       settings.QdrantHost,
		Port:       settings.QdrantPort,
		UseTLS:     config.QdrantUseTLS,
		Collection: collection,
	}, embedder)
	if err != nil {
		logger.Error("vector store failed to initialize", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	doc := chunkModel.Document{
		Id:          uuid.NewString(),
		Name:        filepath.Base(docPath),
		IngestedAt:  time.Now().UTC(),
		ContentType: segment.DocTypeOf(docPath),
	}

	// same collection name means a full rebuild, never an append
	if err := store.Reset(ctx); err != nil {
		logger.Error("resetting collection failed", "error", err)
		os.Exit(1)
	}
	if err := store.Add(ctx, doc, chunks, nil); err != nil {
		logger.Error("indexing failed", "error", err)
		os.Exit(1)
	}
	logger.Info("ingestion complete", "collection", collection, "chunks", len(chunks))
}
