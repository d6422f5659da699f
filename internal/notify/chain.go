package notify

import (
	"context"
	"unicode/utf8"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

// Chain tries strategies in order, most desirable first, and accepts the
// first output within the length budget. A 140-rune output is accepted
// as-is. When every strategy runs over budget the last output is returned
// and the caller decides whether to reject it.
type Chain struct {
	strategies []FormattingStrategy
}

func NewChain(strategies ...FormattingStrategy) *Chain {
	return &Chain{strategies: strategies}
}

func (c *Chain) Format(ctx context.Context, post *models.Post, prefix string) (string, error) {
	var status string

	for _, strategy := range c.strategies {
		formatted, err := strategy.Format(ctx, post, prefix)
		if err != nil {
			return "", err
		}

		status = formatted

		if utf8.RuneCountInString(status) <= MaxStatusLength {
			break
		}
	}

	return status, nil
}
