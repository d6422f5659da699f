package sitemap_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
	"github.com/codemonkeylabs/graffiti-extensions/internal/infrastructure/repositories/memory"
	"github.com/codemonkeylabs/graffiti-extensions/internal/sitemap"
)

func seedRepo(t *testing.T) *memory.PostRepository {
	t.Helper()

	repo := memory.NewPostRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveCategory(ctx, &models.Category{Name: "News", URL: "/category/news"}))
	require.NoError(t, repo.SaveCategory(ctx, &models.Category{Name: "Uncategorized", URL: "/category/uncategorized"}))

	require.NoError(t, repo.Save(ctx, &models.Post{
		ID:          1,
		Title:       "Older",
		URL:         "/p/1",
		IsPublished: true,
		Published:   time.Date(2009, 7, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, repo.Save(ctx, &models.Post{
		ID:          2,
		Title:       "Newer",
		URL:         "/p/2",
		IsPublished: true,
		Published:   time.Date(2009, 8, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, repo.Save(ctx, &models.Post{
		ID:          3,
		Title:       "Draft",
		URL:         "/p/3",
		IsPublished: false,
	}))
	require.NoError(t, repo.Save(ctx, &models.Post{
		ID:          4,
		Title:       "Scheduled",
		URL:         "/p/4",
		IsPublished: true,
		Published:   time.Now().Add(24 * time.Hour),
	}))
	require.NoError(t, repo.Save(ctx, &models.Post{
		ID:          5,
		Title:       "Dirty",
		URL:         "/p/5",
		IsPublished: true,
		IsDirty:     true,
		Published:   time.Date(2009, 6, 1, 0, 0, 0, 0, time.UTC),
	}))

	return repo
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	generator, err := sitemap.NewGenerator(seedRepo(t), "http://x.io/", false)
	require.NoError(t, err)

	out, err := generator.Generate(context.Background())
	require.NoError(t, err)

	xml := string(out)

	assert.Contains(t, xml, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, xml, "<loc>http://x.io/</loc>")
	assert.Contains(t, xml, "<loc>http://x.io/category/news</loc>")
	assert.Contains(t, xml, "<loc>http://x.io/p/1</loc>")
	assert.Contains(t, xml, "<lastmod>2009-07-01</lastmod>")
	assert.Contains(t, xml, "<changefreq>daily</changefreq>")
	assert.Contains(t, xml, "<priority>0.5</priority>")

	assert.NotContains(t, xml, "/p/3")
	assert.NotContains(t, xml, "/p/4")
	assert.NotContains(t, xml, "/p/5")
	assert.NotContains(t, xml, "uncategorized")
}

func TestGenerator_PostsOrderedByPublicationDate(t *testing.T) {
	t.Parallel()

	generator, err := sitemap.NewGenerator(seedRepo(t), "http://x.io/", false)
	require.NoError(t, err)

	out, err := generator.Generate(context.Background())
	require.NoError(t, err)

	xml := string(out)

	older := strings.Index(xml, "/p/1")
	newer := strings.Index(xml, "/p/2")

	require.Positive(t, older)
	require.Positive(t, newer)
	assert.Less(t, older, newer)
}

func TestGenerator_UncategorizedIncludedWhenConfigured(t *testing.T) {
	t.Parallel()

	generator, err := sitemap.NewGenerator(seedRepo(t), "http://x.io/", true)
	require.NoError(t, err)

	out, err := generator.Generate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, string(out), "<loc>http://x.io/category/uncategorized</loc>")
}
