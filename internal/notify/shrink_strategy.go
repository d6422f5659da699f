package notify

import (
	"context"
	"fmt"

	"github.com/codemonkeylabs/graffiti-extensions/internal/clients"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

// ShrinkURLStrategy composes the same status line as its base strategy but
// substitutes a shortened URL. Shortener failures propagate: silently
// falling back to the long URL would defeat the point of this strategy.
type ShrinkURLStrategy struct {
	base      *DefaultStrategy
	shortener clients.URLShortener
}

func NewShrinkURLStrategy(base *DefaultStrategy, shortener clients.URLShortener) *ShrinkURLStrategy {
	return &ShrinkURLStrategy{
		base:      base,
		shortener: shortener,
	}
}

func (s *ShrinkURLStrategy) Format(ctx context.Context, post *models.Post, prefix string) (string, error) {
	fullURL, err := s.base.FullURL(post)
	if err != nil {
		return "", err
	}

	shortURL, err := s.shortener.Shorten(ctx, fullURL)
	if err != nil {
		return "", fmt.Errorf("failed to shorten post URL: %w", err)
	}

	return s.base.compose(post, prefix, shortURL), nil
}
