// Package answer composes natural-language answers from retrieved passages.
package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/models"
)

// noMatchAnswer is the safety-relevant default when retrieval finds nothing.
const noMatchAnswer = "I don't have specific information about that topic. " +
	"Please consult with a healthcare professional for medical advice."

// Generator produces an answer to query grounded in the given context text.
type Generator interface {
	Generate(ctx context.Context, query, context string) (string, error)
}

// Composer turns ranked matches into an answer string. It never fails:
// without a generator, or when the generator errors, it falls back to a
// templated answer built from the top match.
type Composer struct {
	generator Generator
	logger    *zap.Logger
}

// NewComposer creates a composer. generator may be nil, in which case only
// templated answers are produced.
func NewComposer(generator Generator, logger *zap.Logger) *Composer {
	return &Composer{generator: generator, logger: logger}
}

// Compose returns an answer for query based on matches.
func (c *Composer) Compose(ctx context.Context, query string, matches []models.Match) string {
	if len(matches) == 0 {
		return noMatchAnswer
	}
	if c.generator == nil {
		return templateAnswer(matches) +
			" (Note: AI answer generation is not configured.)"
	}
	contextText := joinMatchTexts(matches)
	generated, err := c.generator.Generate(ctx, query, contextText)
	if err != nil || strings.TrimSpace(generated) == "" {
		c.logger.Warn("answer generation failed, using templated answer", zap.Error(err))
		return templateAnswer(matches)
	}
	return generated
}

// templateAnswer embeds the top match verbatim plus a consultation disclaimer.
func templateAnswer(matches []models.Match) string {
	return fmt.Sprintf("Based on the available information: %s. "+
		"Please consult a healthcare professional for personalized advice.", matches[0].Text)
}

func joinMatchTexts(matches []models.Match) string {
	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Text
	}
	return strings.Join(texts, "\n\n")
}
