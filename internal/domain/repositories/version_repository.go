package repositories

import (
	"context"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

// VersionRepository reads (and, for the host side, appends) the ordered
// version history of a post. History is append-only: snapshots are never
// mutated or removed.
type VersionRepository interface {
	History(ctx context.Context, postID int64) ([]*models.VersionSnapshot, error)

	Append(ctx context.Context, snapshot *models.VersionSnapshot) error
}
