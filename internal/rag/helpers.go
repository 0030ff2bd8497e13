package rag

import (
	"context"
	"strings"
	"time"

	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/domain/chunkModel"
	"github.com/ravidu/futureminds/internal/metrics"
	"github.com/ravidu/futureminds/pkg/logging"
)

func (s *service) executeRetrievalStep(ctx context.Context, log *logging.Logger, question string) []chunkModel.RetrievalHit {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	hits, err := s.index.Query(ctx, question, s.topK)
	if err != nil {
		log.Warn("retrieval failed, continuing with empty context", "error", err)
		return nil
	}
	log.Debug("retrieval", "hits", len(hits))
	return hits
}

func (s *service) executeAugmentStep(ctx context.Context, log *logging.Logger, question string) string {
	if s.augmentor == nil {
		return ""
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("web_augmentation", time.Since(start)) }()

	web := s.augmentor.Augment(ctx, question)
	log.Debug("augmentation", "webLen", len(web))
	return web
}

func (s *service) executeSynthesisStep(ctx context.Context, question, contextText, webContent string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.synthesizer.Synthesize(ctx, question, contextText, webContent)
}

// aggregateContext joins hit texts into one context block and collects the
// section and page citations in first-seen order without duplicates.
func aggregateContext(hits []chunkModel.RetrievalHit) chunkModel.QueryContext {
	var texts []string
	var sections []string
	var pages []int
	seenSection := make(map[string]bool)
	seenPage := make(map[int]bool)

	for _, h := range hits {
		texts = append(texts, h.Text)

		if sec := h.Metadata.Section; sec != "" && !seenSection[sec] {
			seenSection[sec] = true
			sections = append(sections, sec)
		}
		if p := h.Metadata.PageNumber; p > 0 && !seenPage[p] {
			seenPage[p] = true
			pages = append(pages, p)
		}
	}

	return chunkModel.QueryContext{
		ContextText: strings.Join(texts, "\n\n"),
		Sections:    sections,
		Pages:       pages,
	}
}

func preview(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

func traceIdFrom(ctx context.Context) string {
	if v, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		return v
	}
	return ""
}
