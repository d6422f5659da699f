package widgets_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
	"github.com/codemonkeylabs/graffiti-extensions/internal/widgets"
)

type mockPhotoSource struct {
	mock.Mock
}

func (m *mockPhotoSource) RecentPhotos(ctx context.Context, nickname string) ([]*models.Photo, error) {
	args := m.Called(ctx, nickname)

	if photos := args.Get(0); photos != nil {
		return photos.([]*models.Photo), args.Error(1)
	}

	return nil, args.Error(1)
}

func testWidgetLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFixVideoURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"http://example.smugmug.com/photos/3-Th.jpg",
		widgets.FixVideoURL("http://example.smugmug.com/photos/3-640.mp4"),
	)

	assert.Equal(t,
		"http://example.smugmug.com/photos/1-M.jpg",
		widgets.FixVideoURL("http://example.smugmug.com/photos/1-M.jpg"),
	)

	assert.Equal(t, "clip.mp4", widgets.FixVideoURL("clip.mp4"))
}

func TestSmugMugWidget_Render(t *testing.T) {
	t.Parallel()

	source := new(mockPhotoSource)
	source.On("RecentPhotos", mock.Anything, "alice").Return([]*models.Photo{
		{
			Title:    "Sunset",
			PageURL:  "http://example.smugmug.com/photos/1",
			ImageURL: "http://example.smugmug.com/photos/1-M.jpg",
		},
		{
			Title:    "Clip",
			PageURL:  "http://example.smugmug.com/photos/3",
			ImageURL: "http://example.smugmug.com/photos/3-640.mp4",
		},
	}, nil)

	widget := widgets.NewSmugMugWidget(source, "alice", 5, testWidgetLogger())

	require.NoError(t, widget.Refresh(context.Background()))

	markup := widget.Render(context.Background(), false)

	assert.Contains(t, markup, `<ul class="pic">`)
	assert.Contains(t, markup, `src="http://example.smugmug.com/photos/1-M.jpg"`)
	assert.Contains(t, markup, `src="http://example.smugmug.com/photos/3-Th.jpg"`)
	assert.Contains(t, markup, `alt="Sunset"`)
}

func TestSmugMugWidget_SecureRenderUsesHTTPS(t *testing.T) {
	t.Parallel()

	source := new(mockPhotoSource)
	source.On("RecentPhotos", mock.Anything, "alice").Return([]*models.Photo{
		{
			Title:    "Sunset",
			PageURL:  "http://example.smugmug.com/photos/1",
			ImageURL: "http://example.smugmug.com/photos/1-M.jpg",
		},
	}, nil)

	widget := widgets.NewSmugMugWidget(source, "alice", 5, testWidgetLogger())

	require.NoError(t, widget.Refresh(context.Background()))

	markup := widget.Render(context.Background(), true)

	assert.Contains(t, markup, `src="https://example.smugmug.com/photos/1-M.jpg"`)
}

func TestSmugMugWidget_RenderLimitsItems(t *testing.T) {
	t.Parallel()

	source := new(mockPhotoSource)
	source.On("RecentPhotos", mock.Anything, "alice").Return([]*models.Photo{
		{Title: "One", PageURL: "http://e/1", ImageURL: "http://e/1.jpg"},
		{Title: "Two", PageURL: "http://e/2", ImageURL: "http://e/2.jpg"},
		{Title: "Three", PageURL: "http://e/3", ImageURL: "http://e/3.jpg"},
	}, nil)

	widget := widgets.NewSmugMugWidget(source, "alice", 2, testWidgetLogger())

	require.NoError(t, widget.Refresh(context.Background()))

	markup := widget.Render(context.Background(), false)

	assert.Contains(t, markup, "One")
	assert.Contains(t, markup, "Two")
	assert.NotContains(t, markup, "Three")
}

func TestSmugMugWidget_FeedFailureKeepsLastSnapshot(t *testing.T) {
	t.Parallel()

	source := new(mockPhotoSource)
	source.On("RecentPhotos", mock.Anything, "alice").Return([]*models.Photo{
		{Title: "Sunset", PageURL: "http://e/1", ImageURL: "http://e/1.jpg"},
	}, nil).Once()
	source.On("RecentPhotos", mock.Anything, "alice").Return(nil, &errors.HTTPError{StatusCode: 503})

	widget := widgets.NewSmugMugWidget(source, "alice", 5, testWidgetLogger())

	require.NoError(t, widget.Refresh(context.Background()))
	require.Error(t, widget.Refresh(context.Background()))

	markup := widget.Render(context.Background(), false)

	assert.Contains(t, markup, "Sunset")
}

func TestSmugMugWidget_SetValues(t *testing.T) {
	t.Parallel()

	source := new(mockPhotoSource)
	source.On("RecentPhotos", mock.Anything, "bob").Return([]*models.Photo{}, nil)

	widget := widgets.NewSmugMugWidget(source, "alice", 5, testWidgetLogger())

	err := widget.SetValues(context.Background(), map[string]string{"nickname": ""})
	assert.ErrorIs(t, err, &errors.ErrMissingRequiredField{})

	err = widget.SetValues(context.Background(), map[string]string{
		"nickname":       "bob",
		"itemsToDisplay": "nope",
	})
	assert.ErrorIs(t, err, &errors.ErrInvalidValue{})

	err = widget.SetValues(context.Background(), map[string]string{
		"nickname":       "bob",
		"itemsToDisplay": "3",
	})
	require.NoError(t, err)

	source.AssertCalled(t, "RecentPhotos", mock.Anything, "bob")
}
