package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/domain/chunkModel"
	"github.com/ravidu/futureminds/internal/metrics"
	"github.com/ravidu/futureminds/internal/rag/segment"
	"github.com/ravidu/futureminds/internal/rag/vectorDB"
	"github.com/ravidu/futureminds/pkg/logging"
)

// Augmentor supplies supplementary web content for a query.
type Augmentor interface {
	Augment(ctx context.Context, query string) string
}

// Synthesizer turns retrieved context and optional web content into an answer.
type Synthesizer interface {
	Synthesize(ctx context.Context, question, contextText, webContent string) (string, error)
}

// Result is the full outcome of answering one question, including the
// citation metadata aggregated from the retrieved chunks.
type Result struct {
	Answer         string
	Sections       []string
	Pages          []int
	ContextText    string
	ContextPreview string
}

// Service is the public contract for the retrieval pipeline. Handlers and
// commands depend on this interface, never on the collaborators directly.
type Service interface {
	Answer(ctx context.Context, question string) (Result, error)
	IngestDocument(ctx context.Context, path string) (chunkModel.Document, int, error)
}

type service struct {
	index       vectorDB.Index
	synthesizer Synthesizer
	augmentor   Augmentor
	topK        int
	logger      *logging.Logger
}

// NewService wires the pipeline. augmentor may be nil, which disables web
// augmentation entirely.
func NewService(index vectorDB.Index, synthesizer Synthesizer, augmentor Augmentor) Service {
	return &service{
		index:       index,
		synthesizer: synthesizer,
		augmentor:   augmentor,
		topK:        config.RetrievalTopK,
		logger:      logging.NewLogger("rag_service"),
	}
}

// Answer runs retrieve, aggregate, optionally augment, then synthesize.
// Retrieval failures degrade to empty context so the model can state that
// the information is insufficient; synthesis failures propagate.
func (s *service) Answer(ctx context.Context, question string) (Result, error) {
	log := s.logger.With(config.TRACE_ID_KEY, traceIdFrom(ctx))
	start := time.Now()
	status := "ok"
	defer func() { metrics.CaptureAskMetrics(status, time.Since(start)) }()

	hits := s.executeRetrievalStep(ctx, log, question)
	qc := aggregateContext(hits)

	webContent := s.executeAugmentStep(ctx, log, question)

	answer, err := s.executeSynthesisStep(ctx, question, qc.ContextText, webContent)
	if err != nil {
		status = "error"
		return Result{}, fmt.Errorf("answering question: %w", err)
	}

	return Result{
		Answer:         answer,
		Sections:       qc.Sections,
		Pages:          qc.Pages,
		ContextText:    qc.ContextText,
		ContextPreview: preview(qc.ContextText, config.ContextPreviewLen),
	}, nil
}

// IngestDocument extracts, segments and indexes one source document,
// replacing any prior index contents. It returns the document record and the
// number of chunks written.
func (s *service) IngestDocument(ctx context.Context, path string) (chunkModel.Document, int, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	doc := chunkModel.Document{
		Id:          uuid.NewString(),
		Name:        path,
		IngestedAt:  time.Now().UTC(),
		ContentType: segment.DocTypeOf(path),
	}

	pages, err := segment.ExtractPages(path)
	if err != nil {
		return doc, 0, fmt.Errorf("extracting %s: %w", path, err)
	}

	chunks := segment.Segment(pages, segment.DefaultOptions())
	if len(chunks) == 0 {
		return doc, 0, fmt.Errorf("no chunks produced from %s", path)
	}

	if err := s.index.Reset(ctx); err != nil {
		return doc, 0, fmt.Errorf("resetting index: %w", err)
	}
	if err := s.index.Add(ctx, doc, chunks, nil); err != nil {
		return doc, 0, fmt.Errorf("indexing %s: %w", path, err)
	}

	metrics.AddChunksIngested(len(chunks))
	s.logger.Info("document ingested", "doc", path, "pages", len(pages), "chunks", len(chunks))
	return doc, len(chunks), nil
}
