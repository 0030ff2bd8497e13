package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/rag/llm"
	"github.com/ravidu/futureminds/pkg/logging"
)

const truncationMarker = "... [content truncated]"

// biographicalTerms flag questions about dates and life events, where scraped
// web text is more likely than textbook prose to hold the precise fact.
var biographicalTerms = []string{"born", "birth", "when", "date", "died", "death", "year"}

type Synthesizer struct {
	provider llm.Provider
	logger   *logging.Logger
}

func New(provider llm.Provider) *Synthesizer {
	return &Synthesizer{
		provider: provider,
		logger:   logging.NewLogger("synthesizer"),
	}
}

// Synthesize sends the full prompt once. On a size-limit rejection it trims
// context and web content to a character budget and retries exactly once.
func (s *Synthesizer) Synthesize(ctx context.Context, question, contextText, webContent string) (string, error) {
	answer, err := s.attempt(ctx, question, contextText, webContent)
	if err == nil {
		return answer, nil
	}
	if !errors.Is(err, llm.ErrPromptTooLarge) {
		return "", fmt.Errorf("answer generation failed: %w", err)
	}

	s.logger.Warn("prompt rejected for size, retrying with budgeted prompt",
		"contextLen", len(contextText), "webLen", len(webContent))
	budgetedWeb, budgetedContext := applyBudget(question, webContent, contextText)

	answer, err = s.attempt(ctx, question, budgetedContext, budgetedWeb)
	if err != nil {
		return "", fmt.Errorf("answer generation failed after size reduction: %w", err)
	}
	return answer, nil
}

func (s *Synthesizer) attempt(ctx context.Context, question, contextText, webContent string) (string, error) {
	prompt := buildPrompt(question, contextText, webContent)
	answer, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// applyBudget caps web content and context for the degraded retry.
// Biographical questions bias the budget toward web content; everything else
// splits a combined budget proportionally to the original lengths.
func applyBudget(question, webContent, contextText string) (string, string) {
	if isBiographical(question) {
		return truncate(webContent, config.BudgetWebBio),
			truncate(contextText, config.BudgetContextBio)
	}

	total := len(webContent) + len(contextText)
	if total == 0 {
		return webContent, contextText
	}
	webBudget := config.BudgetTotal * len(webContent) / total
	contextBudget := config.BudgetTotal - webBudget
	return truncate(webContent, webBudget), truncate(contextText, contextBudget)
}

func isBiographical(question string) bool {
	q := strings.ToLower(question)
	for _, term := range biographicalTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit < 0 {
		limit = 0
	}
	return s[:limit] + truncationMarker
}
