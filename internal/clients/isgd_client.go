package clients

import (
	"context"
	"log/slog"
	"strings"

	"github.com/codemonkeylabs/graffiti-extensions/internal/common/httputil"
	"github.com/codemonkeylabs/graffiti-extensions/internal/common/metrics"
	"github.com/codemonkeylabs/graffiti-extensions/internal/config"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/go-resty/resty/v2"
)

// URLShortener shortens a URL. Failures are real failures: callers must not
// quietly substitute the original URL.
type URLShortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

// IsGdClient shortens URLs through http://is.gd/. On success the shortened
// URL is the response text; on failure the service answers with an error
// body, which is surfaced in the returned error when available.
type IsGdClient struct {
	client  *resty.Client
	baseURL string
	logger  *slog.Logger
}

func NewIsGdClient(baseURL string, cfg *config.Config, logger *slog.Logger) *IsGdClient {
	if baseURL == "" {
		baseURL = "http://is.gd"
	}

	client := httputil.CreateResilientHTTPClient(cfg, logger, "isgd")

	return &IsGdClient{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (c *IsGdClient) Shorten(ctx context.Context, longURL string) (string, error) {
	if longURL == "" {
		return "", &errors.ErrMissingRequiredField{FieldName: "url"}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("longurl", longURL).
		Get(c.baseURL + "/api.php")

	if err != nil {
		metrics.RecordShortenRequest("error")
		return "", &errors.ErrShortenFailed{URL: longURL, Message: err.Error()}
	}

	if !resp.IsSuccess() {
		metrics.RecordShortenRequest("error")
		return "", &errors.ErrShortenFailed{URL: longURL, Message: strings.TrimSpace(resp.String())}
	}

	metrics.RecordShortenRequest("success")

	return strings.TrimSpace(resp.String()), nil
}
