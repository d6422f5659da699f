package widgets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/codemonkeylabs/graffiti-extensions/internal/widgets"
)

const userExampleHash = "b58996c504c5638798eb6b511e6f49af"

func TestGravatar_URL(t *testing.T) {
	t.Parallel()

	g, err := widgets.NewGravatar()
	require.NoError(t, err)

	got, err := g.URL("user@example.com", false)

	require.NoError(t, err)
	assert.Equal(t, "http://www.gravatar.com/avatar/"+userExampleHash+"?r=g&s=80", got)
}

func TestGravatar_SecureURL(t *testing.T) {
	t.Parallel()

	g, err := widgets.NewGravatar()
	require.NoError(t, err)

	got, err := g.URL("user@example.com", true)

	require.NoError(t, err)
	assert.Equal(t, "https://secure.gravatar.com/avatar/"+userExampleHash+"?r=g&s=80", got)
}

func TestGravatar_NormalizesEmail(t *testing.T) {
	t.Parallel()

	g, err := widgets.NewGravatar()
	require.NoError(t, err)

	mixed, err := g.URL("  User@Example.COM  ", false)
	require.NoError(t, err)

	plain, err := g.URL("user@example.com", false)
	require.NoError(t, err)

	assert.Equal(t, plain, mixed)
}

func TestGravatar_Options(t *testing.T) {
	t.Parallel()

	g, err := widgets.NewGravatar(
		widgets.WithSize(128),
		widgets.WithDefaultIcon("identicon"),
		widgets.WithRating("pg"),
	)
	require.NoError(t, err)

	got, err := g.URL("user@example.com", false)

	require.NoError(t, err)
	assert.Contains(t, got, "s=128")
	assert.Contains(t, got, "d=identicon")
	assert.Contains(t, got, "r=pg")
}

func TestGravatar_EmptyRating(t *testing.T) {
	t.Parallel()

	g, err := widgets.NewGravatar(widgets.WithRating(""))
	require.NoError(t, err)

	got, err := g.URL("user@example.com", false)

	require.NoError(t, err)
	assert.Equal(t, "http://www.gravatar.com/avatar/"+userExampleHash+"?s=80", got)
}

func TestGravatar_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := widgets.NewGravatar(widgets.WithSize(0))
	assert.ErrorIs(t, err, &errors.ErrInvalidValue{})

	_, err = widgets.NewGravatar(widgets.WithSize(513))
	assert.ErrorIs(t, err, &errors.ErrInvalidValue{})

	_, err = widgets.NewGravatar(widgets.WithDefaultIcon("dragon"))
	assert.ErrorIs(t, err, &errors.ErrInvalidValue{})

	_, err = widgets.NewGravatar(widgets.WithDefaultIcon("404"))
	assert.ErrorIs(t, err, &errors.ErrInvalidValue{})

	_, err = widgets.NewGravatar(widgets.WithDefaultIcon("retro"))
	assert.ErrorIs(t, err, &errors.ErrInvalidValue{})

	_, err = widgets.NewGravatar(widgets.WithRating("nc17"))
	assert.ErrorIs(t, err, &errors.ErrInvalidValue{})
}

func TestGravatar_EmptyEmail(t *testing.T) {
	t.Parallel()

	g, err := widgets.NewGravatar()
	require.NoError(t, err)

	_, err = g.URL("   ", false)

	assert.ErrorIs(t, err, &errors.ErrMissingRequiredField{})
}
