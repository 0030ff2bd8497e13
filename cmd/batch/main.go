package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/rag"
	"github.com/ravidu/futureminds/internal/rag/embedding/googleEmbedding"
	"github.com/ravidu/futureminds/internal/rag/llm/gemini"
	"github.com/ravidu/futureminds/internal/rag/synthesis"
	"github.com/ravidu/futureminds/internal/rag/vectorDB/qdrantDB"
	"github.com/ravidu/futureminds/pkg/logging"
)

type questionEntry struct {
	Id       string `json:"id"`
	Question string `json:"question"`
}

var (
	inPath  string
	outPath string
)

// Batch evaluation: answer every question in a JSON file against the indexed
// textbook and write one CSV row per question with its citations.
func main() {
	logging.Init(config.IS_PROD, config.LOG_LEVEL_PROD)
	logger := logging.NewLogger("batch")

	flag.StringVar(&inPath, "questions", "", "path to questions JSON ([{id, question}, ...])")
	flag.StringVar(&outPath, "out", "answers.csv", "path for the answers CSV")
	flag.Parse()

	if inPath == "" {
		logger.Error("missing required -questions flag")
		os.Exit(1)
	}

	settings, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	questions, err := loadQuestions(inPath)
	if err != nil {
		logger.Error("loading questions failed", "path", inPath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
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
	if err := index.EnsureCollection(ctx); err != nil {
		logger.Error("collection check failed, run ingestion first", "error", err)
		os.Exit(1)
	}

	provider, err := gemini.NewClient(ctx, config.GeminiModelName, settings.GoogleAPIKey)
	if err != nil {
		logger.Error("gemini client failed to initialize", "error", err)
		os.Exit(1)
	}
	svc := rag.NewService(index, synthesis.New(provider), nil)

	out, err := os.Create(outPath)
	if err != nil {
		logger.Error("cannot create output file", "path", outPath, "error", err)
		os.Exit(1)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{"id", "question", "context", "answer", "sections", "pages"}); err != nil {
		logger.Error("writing header failed", "error", err)
		os.Exit(1)
	}

	answered := 0
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			logger.Warn("skipping entry with no question", "index", i)
			continue
		}
		id := q.Id
		if id == "" {
			id = strconv.Itoa(i + 1)
		}

		result, err := svc.Answer(ctx, q.Question)
		if err != nil {
			logger.Error("answer failed", "id", id, "error", err)
			result.Answer = "Error generating answer"
		}

		row := []string{
			id,
			q.Question,
			result.ContextText,
			result.Answer,
			strings.Join(result.Sections, ", "),
			joinInts(result.Pages),
		}
		if err := w.Write(row); err != nil {
			logger.Error("writing row failed", "id", id, "error", err)
			os.Exit(1)
		}
		answered++
	}

	logger.Info("batch complete", "questions", len(questions), "answered", answered, "out", outPath)
}

func loadQuestions(path string) ([]questionEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var questions []questionEntry
	if err := json.NewDecoder(f).Decode(&questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}
