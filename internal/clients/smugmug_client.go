package clients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codemonkeylabs/graffiti-extensions/internal/common/httputil"
	"github.com/codemonkeylabs/graffiti-extensions/internal/config"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// SmugMugClient fetches a user's recent-photos RSS feed.
type SmugMugClient struct {
	client  *resty.Client
	parser  *gofeed.Parser
	baseURL string
	logger  *slog.Logger
}

func NewSmugMugClient(baseURL string, cfg *config.Config, logger *slog.Logger) *SmugMugClient {
	if baseURL == "" {
		baseURL = "http://www.smugmug.com"
	}

	client := httputil.CreateResilientHTTPClient(cfg, logger, "smugmug")

	return &SmugMugClient{
		client:  client,
		parser:  gofeed.NewParser(),
		baseURL: baseURL,
		logger:  logger,
	}
}

// RecentPhotos fetches and parses the nickname's recent-photos feed. Items
// without an enclosure are skipped.
func (c *SmugMugClient) RecentPhotos(ctx context.Context, nickname string) ([]*models.Photo, error) {
	if nickname == "" {
		return nil, &errors.ErrMissingRequiredField{FieldName: "nickname"}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"Type":   "nicknameRecentPhotos",
			"Data":   nickname,
			"format": "rss200",
		}).
		Get(c.baseURL + "/hack/feed.mg")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch SmugMug feed: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &errors.HTTPError{StatusCode: resp.StatusCode()}
	}

	feed, err := c.parser.ParseString(resp.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse SmugMug feed: %w", err)
	}

	photos := make([]*models.Photo, 0, len(feed.Items))

	for _, item := range feed.Items {
		if len(item.Enclosures) == 0 {
			continue
		}

		photos = append(photos, &models.Photo{
			Title:    item.Title,
			PageURL:  item.Link,
			ImageURL: item.Enclosures[0].URL,
		})
	}

	return photos, nil
}
