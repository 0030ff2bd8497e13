package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openaigo "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/ravidu/futureminds/internal/rag/llm"
	"github.com/ravidu/futureminds/pkg/logging"
)

type client struct {
	api    openaigo.Client
	model  string
	logger *logging.Logger
}

// NewClient builds an OpenAI chat-completion client.
func NewClient(modelName string, apikey string) llm.Provider {
	return &client{
		api:    openaigo.NewClient(option.WithAPIKey(apikey)),
		model:  modelName,
		logger: logging.NewLogger("openai"),
	}
}

func (c *client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(c.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.UserMessage(prompt),
		},
	})
	if err != nil {
		if isInputTooLarge(err) {
			return "", llm.ErrPromptTooLarge
		}
		c.logger.Error("generation failed", "error", err)
		return "", fmt.Errorf("generating completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion response")
	}
	return text, nil
}

func isInputTooLarge(err error) bool {
	var apiErr *openaigo.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusRequestEntityTooLarge {
		return true
	}
	return apiErr.StatusCode == http.StatusBadRequest &&
		strings.Contains(strings.ToLower(apiErr.Error()), "context length")
}
