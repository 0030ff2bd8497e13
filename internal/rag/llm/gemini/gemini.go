package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/ravidu/futureminds/internal/rag/llm"
	"github.com/ravidu/futureminds/pkg/logging"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type client struct {
	genAi  *genai.Client
	model  string
	logger *logging.Logger
}

// NewClient builds a Gemini text-generation client.
func NewClient(ctx context.Context, modelName string, apikey string) (llm.Provider, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &client{
		genAi:  c,
		model:  modelName,
		logger: logging.NewLogger("gemini"),
	}, nil
}

func (c *client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genAi.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		if isInputTooLarge(err) {
			return "", llm.ErrPromptTooLarge
		}
		c.logger.Error("generation failed", "error", err)
		return "", fmt.Errorf("generating content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty generation response")
	}
	return text, nil
}

// The API reports an oversized prompt as InvalidArgument with a token-count
// message rather than a dedicated code.
func isInputTooLarge(err error) bool {
	s, ok := status.FromError(err)
	if !ok || s.Code() != codes.InvalidArgument {
		return false
	}
	msg := strings.ToLower(s.Message())
	return strings.Contains(msg, "token") || strings.Contains(msg, "too large") || strings.Contains(msg, "exceeds")
}
