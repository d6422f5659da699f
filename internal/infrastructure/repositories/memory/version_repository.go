package memory

import (
	"context"
	"sync"
	"time"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

// VersionRepository keeps version history in process memory, ordered by
// revision. Useful for tests and for hosts without a durable store.
type VersionRepository struct {
	versions map[int64][]*models.VersionSnapshot
	nextID   int64
	mu       sync.RWMutex
}

func NewVersionRepository() *VersionRepository {
	return &VersionRepository{
		versions: make(map[int64][]*models.VersionSnapshot),
	}
}

func (r *VersionRepository) Append(_ context.Context, snapshot *models.VersionSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++

	stored := *snapshot
	stored.ID = r.nextID
	stored.Revision = len(r.versions[snapshot.PostID]) + 1

	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	r.versions[snapshot.PostID] = append(r.versions[snapshot.PostID], &stored)

	return nil
}

func (r *VersionRepository) History(_ context.Context, postID int64) ([]*models.VersionSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := make([]*models.VersionSnapshot, len(r.versions[postID]))
	copy(history, r.versions[postID])

	return history, nil
}
