package widgets

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"

	"github.com/codemonkeylabs/graffiti-extensions/internal/common/metrics"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

// PhotoSource fetches the recent photos for a gallery account.
type PhotoSource interface {
	RecentPhotos(ctx context.Context, nickname string) ([]*models.Photo, error)
}

// SmugMugWidget renders a recent-photos list from a SmugMug feed. The feed
// is polled in the background; rendering always serves the last good
// snapshot so a feed outage never breaks page rendering.
type SmugMugWidget struct {
	source PhotoSource
	logger *slog.Logger

	mu             sync.RWMutex
	nickname       string
	itemsToDisplay int
	photos         []*models.Photo
}

func NewSmugMugWidget(source PhotoSource, nickname string, itemsToDisplay int, logger *slog.Logger) *SmugMugWidget {
	if itemsToDisplay <= 0 {
		itemsToDisplay = 5
	}

	return &SmugMugWidget{
		source:         source,
		logger:         logger,
		nickname:       nickname,
		itemsToDisplay: itemsToDisplay,
	}
}

func (w *SmugMugWidget) Name() string {
	return "SmugMug Recent Photos"
}

// SetValues updates the widget configuration from the admin form.
func (w *SmugMugWidget) SetValues(ctx context.Context, values map[string]string) error {
	nickname := strings.TrimSpace(values["nickname"])
	if nickname == "" {
		return &errors.ErrMissingRequiredField{FieldName: "nickname"}
	}

	items := w.itemsToDisplay
	if raw, ok := values["itemsToDisplay"]; ok {
		parsed := 0
		if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d", &parsed); err != nil || parsed <= 0 {
			return &errors.ErrInvalidValue{
				FieldName: "itemsToDisplay",
				Value:     raw,
				Reason:    "must be a positive integer",
			}
		}

		items = parsed
	}

	w.mu.Lock()
	w.nickname = nickname
	w.itemsToDisplay = items
	w.mu.Unlock()

	return w.Refresh(ctx)
}

// Refresh fetches the feed and replaces the cached snapshot. On failure the
// previous snapshot is kept.
func (w *SmugMugWidget) Refresh(ctx context.Context) error {
	w.mu.RLock()
	nickname := w.nickname
	w.mu.RUnlock()

	if nickname == "" {
		return &errors.ErrMissingRequiredField{FieldName: "nickname"}
	}

	photos, err := w.source.RecentPhotos(ctx, nickname)
	if err != nil {
		metrics.RecordFeedRefresh("error")
		w.logger.Error("Failed to refresh photo feed",
			"error", err,
			"nickname", nickname,
		)

		return fmt.Errorf("failed to refresh photo feed: %w", err)
	}

	metrics.RecordFeedRefresh("success")

	w.mu.Lock()
	w.photos = photos
	w.mu.Unlock()

	return nil
}

// Render returns the widget markup. Secure rewrites image URLs to https so
// the widget does not produce mixed content on secure pages. Errors never
// escape rendering; an empty string is returned instead.
func (w *SmugMugWidget) Render(ctx context.Context, secure bool) string {
	w.mu.RLock()
	photos := w.photos
	limit := w.itemsToDisplay
	w.mu.RUnlock()

	if len(photos) == 0 {
		if err := w.Refresh(ctx); err != nil {
			return ""
		}

		w.mu.RLock()
		photos = w.photos
		w.mu.RUnlock()
	}

	if limit > len(photos) {
		limit = len(photos)
	}

	var sb strings.Builder

	sb.WriteString("<ul class=\"pic\">\n")

	for _, photo := range photos[:limit] {
		imageURL := FixVideoURL(photo.ImageURL)
		pageURL := photo.PageURL

		if secure {
			imageURL = strings.Replace(imageURL, "http://", "https://", 1)
		}

		sb.WriteString(fmt.Sprintf(
			"<li><a href=\"%s\"><img src=\"%s\" alt=\"%s\"/></a></li>\n",
			html.EscapeString(pageURL),
			html.EscapeString(imageURL),
			html.EscapeString(photo.Title),
		))
	}

	sb.WriteString("</ul>")

	return sb.String()
}

// FixVideoURL maps a video media URL to its thumbnail image. Feed entries
// for videos point at the .mp4 file; the thumbnail lives next to it with a
// "-Th.jpg" suffix replacing everything from the last '-' on.
func FixVideoURL(mediaURL string) string {
	if !strings.HasSuffix(mediaURL, ".mp4") {
		return mediaURL
	}

	idx := strings.LastIndex(mediaURL, "-")
	if idx < 0 {
		return mediaURL
	}

	return mediaURL[:idx] + "-Th.jpg"
}
