package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemonkeylabs/graffiti-extensions/internal/config"
	"github.com/codemonkeylabs/graffiti-extensions/internal/host"
	"github.com/codemonkeylabs/graffiti-extensions/internal/notify"
)

func TestSeedTwitterSettings(t *testing.T) {
	t.Parallel()

	settings := host.NewMemorySettings()
	cfg := &config.Config{
		TwitterUsername: " user ",
		TwitterPassword: "secret",
		TwitterTitle:    "My Blog",
	}

	err := seedTwitterSettings(context.Background(), settings, cfg)
	require.NoError(t, err)

	username, err := settings.Get(context.Background(), notify.SettingUsername)
	require.NoError(t, err)
	assert.Equal(t, "user", username)

	password, err := settings.Get(context.Background(), notify.SettingPassword)
	require.NoError(t, err)
	assert.Equal(t, "secret", password)

	title, err := settings.Get(context.Background(), notify.SettingTitle)
	require.NoError(t, err)
	assert.Equal(t, "My Blog", title)
}

func TestSeedTwitterSettings_NoUsernameConfigured(t *testing.T) {
	t.Parallel()

	settings := host.NewMemorySettings()

	err := seedTwitterSettings(context.Background(), settings, &config.Config{})
	require.NoError(t, err)

	username, err := settings.Get(context.Background(), notify.SettingUsername)
	require.NoError(t, err)
	assert.Empty(t, username)
}
