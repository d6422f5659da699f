package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/codemonkeylabs/graffiti-extensions/internal/common/httputil"
	"github.com/codemonkeylabs/graffiti-extensions/internal/config"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/go-resty/resty/v2"
)

const maxStatusLength = 140

// TwitterClient talks to the status-update service over basic auth.
type TwitterClient struct {
	client  *resty.Client
	baseURL string
	logger  *slog.Logger
}

func NewTwitterClient(baseURL string, cfg *config.Config, logger *slog.Logger) *TwitterClient {
	if baseURL == "" {
		baseURL = "http://twitter.com"
	}

	client := httputil.CreateResilientHTTPClient(cfg, logger, "twitter")

	return &TwitterClient{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// UpdateStatus posts a status update. Empty arguments and over-long status
// text are caller bugs and fail fast.
func (c *TwitterClient) UpdateStatus(ctx context.Context, username, password, status string) error {
	if username == "" {
		return &errors.ErrMissingRequiredField{FieldName: "username"}
	}

	if password == "" {
		return &errors.ErrMissingRequiredField{FieldName: "password"}
	}

	if status == "" {
		return &errors.ErrMissingRequiredField{FieldName: "status"}
	}

	if length := utf8.RuneCountInString(status); length > maxStatusLength {
		return &errors.ErrMessageTooLong{Length: length}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(username, password).
		SetQueryParam("status", status).
		Post(c.baseURL + "/statuses/update.xml")

	if err != nil {
		return fmt.Errorf("failed to post status update: %w", err)
	}

	if !resp.IsSuccess() {
		return &errors.HTTPError{StatusCode: resp.StatusCode()}
	}

	return nil
}

// ValidateCredentials checks the credential pair against the verification
// endpoint. An authorization rejection reads as (false, nil); an error is
// returned only when no HTTP answer was obtainable at all.
func (c *TwitterClient) ValidateCredentials(ctx context.Context, username, password string) (bool, error) {
	if username == "" {
		return false, &errors.ErrMissingRequiredField{FieldName: "username"}
	}

	if password == "" {
		return false, &errors.ErrMissingRequiredField{FieldName: "password"}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(username, password).
		Get(c.baseURL + "/account/verify_credentials.xml")

	if err != nil {
		return false, fmt.Errorf("failed to verify credentials: %w", err)
	}

	return resp.StatusCode() == http.StatusOK, nil
}
