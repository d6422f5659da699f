package cache_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/codemonkeylabs/graffiti-extensions/internal/cache"
)

type countingShortener struct {
	calls atomic.Int64
}

func (s *countingShortener) Shorten(_ context.Context, longURL string) (string, error) {
	s.calls.Add(1)
	return "http://is.gd/" + longURL[len(longURL)-1:], nil
}

func startRedisContainer(t *testing.T) (testcontainers.Container, string) {
	t.Helper()

	ctx := context.Background()

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)

	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return redisC, port.Port()
}

func TestCachingShortener(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	redisC, redisPort := startRedisContainer(t)
	defer func() {
		if err := redisC.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate Redis container: %v", err)
		}
	}()

	inner := &countingShortener{}

	shortener, err := cache.NewCachingShortener("localhost:"+redisPort, "", 0, 30*time.Second, inner, logger)
	require.NoError(t, err)

	defer shortener.Close()

	ctx := context.Background()

	first, err := shortener.Shorten(ctx, "http://x.io/p/1")
	require.NoError(t, err)

	second, err := shortener.Shorten(ctx, "http://x.io/p/1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), inner.calls.Load())

	_, err = shortener.Shorten(ctx, "http://x.io/p/2")
	require.NoError(t, err)

	assert.Equal(t, int64(2), inner.calls.Load())
}
