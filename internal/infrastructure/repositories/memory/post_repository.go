package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

// PostRepository is an in-memory read view of the host's posts, enough to
// feed the sitemap generator and the demo harness.
type PostRepository struct {
	posts      map[int64]*models.Post
	categories map[string]*models.Category
	mu         sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:      make(map[int64]*models.Post),
		categories: make(map[string]*models.Category),
	}
}

func (r *PostRepository) Save(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *post
	r.posts[post.ID] = &stored

	return nil
}

func (r *PostRepository) SaveCategory(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *category
	r.categories[category.Name] = &stored

	return nil
}

func (r *PostRepository) ListPublished(_ context.Context) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*models.Post, 0, len(r.posts))

	for _, post := range r.posts {
		if !post.IsPublished || post.IsDeleted {
			continue
		}

		copied := *post
		posts = append(posts, &copied)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Published.Before(posts[j].Published)
	})

	return posts, nil
}

func (r *PostRepository) ListCategories(_ context.Context) ([]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*models.Category, 0, len(r.categories))

	for _, category := range r.categories {
		copied := *category
		categories = append(categories, &copied)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}
