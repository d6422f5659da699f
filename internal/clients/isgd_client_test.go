package clients_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemonkeylabs/graffiti-extensions/internal/clients"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsGdClient_Shorten(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		assert.Equal(t, "http://x.io/p/1", r.URL.Query().Get("longurl"))

		_, _ = w.Write([]byte("http://is.gd/abc\n"))
	}))
	defer server.Close()

	client := clients.NewIsGdClient(server.URL, testConfig(), testLogger())

	short, err := client.Shorten(context.Background(), "http://x.io/p/1")

	require.NoError(t, err)
	assert.Equal(t, "http://is.gd/abc", short)
}

func TestIsGdClient_EmptyURL(t *testing.T) {
	t.Parallel()

	client := clients.NewIsGdClient("http://localhost:0", testConfig(), testLogger())

	_, err := client.Shorten(context.Background(), "")

	assert.ErrorIs(t, err, &errors.ErrMissingRequiredField{})
}

func TestIsGdClient_ServiceErrorSurfacesBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Error: Please specify a URL to shorten.\n"))
	}))
	defer server.Close()

	client := clients.NewIsGdClient(server.URL, testConfig(), testLogger())

	short, err := client.Shorten(context.Background(), "not-a-url")

	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.ErrShortenFailed{})
	assert.Contains(t, err.Error(), "Please specify a URL to shorten")
	assert.Empty(t, short)
}
