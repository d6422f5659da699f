package repositories

import (
	"context"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

// PostRepository is the read view of the host's post store used by the
// sitemap generator. The host CMS owns the data.
type PostRepository interface {
	ListPublished(ctx context.Context) ([]*models.Post, error)

	ListCategories(ctx context.Context) ([]*models.Category, error)
}
