package googleEmbedding

import (
	"context"
	"fmt"
	"time"

	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/rag/embedding"
	"github.com/ravidu/futureminds/pkg/logging"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var dimension = config.EmbeddingOutputDimensionality

type client struct {
	genAi    *genai.Client
	model    string
	maxBatch int
	logger   *logging.Logger
}

// NewClient builds a Gemini embedding client. Callers own the lifecycle and
// pass the client down explicitly; there is no package singleton.
func NewClient(ctx context.Context, modelName string, apikey string) (embedding.Embedder, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, fmt.Errorf("creating google embedding client: %w", err)
	}
	return &client{
		genAi:    c,
		model:    modelName,
		maxBatch: config.MaxEmbedBatch,
		logger:   logging.NewLogger("google_embedding"),
	}, nil
}

func (c *client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	result, err := c.doCall(ctx, genai.Text(text), "RETRIEVAL_QUERY")
	if err != nil {
		c.logger.Error("embedding query failed", "error", err)
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return result.Embeddings[0].Values, nil
}

// EmbedBatch embeds texts in sub-batches of maxBatch to bound request size.
// A rate-limited sub-batch is retried once after a short pause.
func (c *client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32

	for start := 0; start < len(texts); start += c.maxBatch {
		end := start + c.maxBatch
		if end > len(texts) {
			end = len(texts)
		}

		content := getContent(texts[start:end])
		result, err := c.doCall(ctx, content, "RETRIEVAL_DOCUMENT")
		if err != nil && isRateLimited(err) {
			c.logger.Warn("rate limit hit, retrying sub-batch in 5s", "offset", start)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			result, err = c.doCall(ctx, content, "RETRIEVAL_DOCUMENT")
		}
		if err != nil {
			return nil, fmt.Errorf("embedding sub-batch at %d: %w", start, err)
		}

		if len(result.Embeddings) != end-start {
			return nil, fmt.Errorf("expected %d embeddings, got %d", end-start, len(result.Embeddings))
		}
		for _, e := range result.Embeddings {
			vectors = append(vectors, e.Values)
		}
	}
	return vectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content, taskType string) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             taskType,
	})
}

func getContent(texts []string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: t}},
		})
	}
	return contents
}

func isRateLimited(err error) bool {
	if s, ok := status.FromError(err); ok {
		return s.Code() == codes.ResourceExhausted
	}
	return false
}
