package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/codemonkeylabs/graffiti-extensions/internal/clients"
)

// CachingShortener decorates a URLShortener with a Redis cache. Shortened
// URLs are stable, so hits avoid a remote round trip. Cache failures are
// logged and bypassed; they are never reported as shortening failures.
type CachingShortener struct {
	client *redis.Client
	inner  clients.URLShortener
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachingShortener(
	redisURL, password string,
	db int,
	ttl time.Duration,
	inner clients.URLShortener,
	logger *slog.Logger,
) (*CachingShortener, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis")

	return &CachingShortener{
		client: client,
		inner:  inner,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func (c *CachingShortener) Shorten(ctx context.Context, longURL string) (string, error) {
	key := "shorturl:" + longURL

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return cached, nil
	}

	if err != nil && err != redis.Nil {
		c.logger.Warn("Failed to read shortened URL from cache",
			"error", err,
			"url", longURL,
		)
	}

	short, err := c.inner.Shorten(ctx, longURL)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, short, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache shortened URL",
			"error", err,
			"url", longURL,
		)
	}

	return short, nil
}

func (c *CachingShortener) Close() error {
	return c.client.Close()
}
