package host_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
	"github.com/codemonkeylabs/graffiti-extensions/internal/host"
	"github.com/codemonkeylabs/graffiti-extensions/internal/infrastructure/repositories/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplication_CommitDispatchesHandlers(t *testing.T) {
	t.Parallel()

	versions := memory.NewVersionRepository()
	app := host.NewApplication(versions, testLogger())

	var seen []any

	app.OnAfterCommit(func(_ context.Context, entity any) {
		seen = append(seen, entity)
	})

	post := &models.Post{ID: 1, Title: "Hi", IsPublished: true}

	require.NoError(t, app.Commit(context.Background(), post))

	require.Len(t, seen, 1)
	assert.Same(t, post, seen[0])
}

func TestApplication_HandlersSeeOnlyEarlierHistory(t *testing.T) {
	t.Parallel()

	versions := memory.NewVersionRepository()
	app := host.NewApplication(versions, testLogger())

	ctx := context.Background()
	post := &models.Post{ID: 1, Title: "Hi", IsPublished: true}

	var historyAtDispatch int

	app.OnAfterCommit(func(ctx context.Context, _ any) {
		history, err := versions.History(ctx, post.ID)
		require.NoError(t, err)
		historyAtDispatch = len(history)
	})

	require.NoError(t, app.Commit(ctx, post))

	// Handlers ran before the snapshot was appended.
	assert.Equal(t, 0, historyAtDispatch)

	history, err := versions.History(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestApplication_CommitAppendsSnapshotPerCommit(t *testing.T) {
	t.Parallel()

	versions := memory.NewVersionRepository()
	app := host.NewApplication(versions, testLogger())

	ctx := context.Background()
	post := &models.Post{ID: 7, Title: "Hi"}

	require.NoError(t, app.Commit(ctx, post))

	post.Title = "Hi again"
	require.NoError(t, app.Commit(ctx, post))

	history, err := versions.History(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, 1, history[0].Revision)
	assert.Equal(t, "Hi", history[0].Post.Title)
	assert.Equal(t, 2, history[1].Revision)
	assert.Equal(t, "Hi again", history[1].Post.Title)
}

func TestApplication_CommitIgnoresNonPostEntities(t *testing.T) {
	t.Parallel()

	versions := memory.NewVersionRepository()
	app := host.NewApplication(versions, testLogger())

	called := false

	app.OnAfterCommit(func(_ context.Context, _ any) {
		called = true
	})

	require.NoError(t, app.Commit(context.Background(), "a comment"))
	assert.True(t, called)
}

func TestApplication_RenderHTMLHeader(t *testing.T) {
	t.Parallel()

	app := host.NewApplication(memory.NewVersionRepository(), testLogger())

	app.OnRenderHTMLHeader(func(context.Context) string {
		return `<link rel="search" href="/opensearch.xml">`
	})
	app.OnRenderHTMLHeader(func(context.Context) string {
		return `<meta name="generator" content="graffiti">`
	})

	header := app.RenderHTMLHeader(context.Background())

	assert.Equal(t,
		"<link rel=\"search\" href=\"/opensearch.xml\">\n<meta name=\"generator\" content=\"graffiti\">\n",
		header,
	)
}

func TestMemorySettings(t *testing.T) {
	t.Parallel()

	settings := host.NewMemorySettings()
	ctx := context.Background()

	value, err := settings.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, settings.Set(ctx, "key", "value"))

	value, err = settings.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}
