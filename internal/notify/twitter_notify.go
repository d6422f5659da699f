package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/codemonkeylabs/graffiti-extensions/internal/common/metrics"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/repositories"
	"github.com/codemonkeylabs/graffiti-extensions/internal/host"
)

const ModuleName = "Twitter Notify"

// Settings-store keys for this module's configuration.
const (
	SettingUsername = "codemonkeylabs.twitternotify.username"
	SettingPassword = "codemonkeylabs.twitternotify.password"
	SettingTitle    = "codemonkeylabs.twitternotify.title"
)

// StatusUpdater is the remote status-update service consumed by the
// notifier. Both calls may block on network I/O; callers apply their own
// timeouts through ctx.
type StatusUpdater interface {
	ValidateCredentials(ctx context.Context, username, password string) (bool, error)

	UpdateStatus(ctx context.Context, username, password, status string) error
}

// TwitterNotify posts a status update the first time a post is published.
// Failures on the notification path are logged and swallowed; the commit
// that triggered the notification is never failed.
type TwitterNotify struct {
	chain    *Chain
	versions repositories.VersionRepository
	client   StatusUpdater
	settings host.Settings
	logger   *slog.Logger

	mu       sync.RWMutex
	username string
	password string
	title    string
}

func NewTwitterNotify(
	chain *Chain,
	versions repositories.VersionRepository,
	client StatusUpdater,
	settings host.Settings,
	logger *slog.Logger,
) *TwitterNotify {
	n := &TwitterNotify{
		chain:    chain,
		versions: versions,
		client:   client,
		settings: settings,
		logger:   logger,
	}

	n.loadSettings(context.Background())

	return n
}

func (n *TwitterNotify) Init(app *host.Application) {
	app.OnAfterCommit(n.OnAfterCommit)
}

func (n *TwitterNotify) loadSettings(ctx context.Context) {
	if n.settings == nil {
		return
	}

	username, _ := n.settings.Get(ctx, SettingUsername)
	password, _ := n.settings.Get(ctx, SettingPassword)
	title, _ := n.settings.Get(ctx, SettingTitle)

	n.mu.Lock()
	defer n.mu.Unlock()

	n.username = username
	n.password = password
	n.title = title
}

// SetValues validates and applies module configuration. The credentials are
// verified against the remote service before anything is stored; a failed
// verification rejects the whole configuration. The open question of
// distinguishing transport failures from bad credentials during
// verification is resolved as the original resolved it: both read as
// invalid credentials.
func (n *TwitterNotify) SetValues(ctx context.Context, values map[string]string) error {
	username := strings.TrimSpace(values[SettingUsername])
	if username == "" {
		return &errors.ErrEmptyUsername{}
	}

	password := strings.TrimSpace(values[SettingPassword])
	if password == "" {
		return &errors.ErrEmptyPassword{}
	}

	valid, err := n.client.ValidateCredentials(ctx, username, password)
	if err != nil || !valid {
		if err != nil {
			n.logger.Warn("Credential verification failed",
				"module", ModuleName,
				"error", err,
			)
		}

		return &errors.ErrInvalidCredentials{}
	}

	title := strings.TrimSpace(values[SettingTitle])

	if n.settings != nil {
		if err := n.settings.Set(ctx, SettingUsername, username); err != nil {
			return fmt.Errorf("failed to store username: %w", err)
		}

		if err := n.settings.Set(ctx, SettingPassword, password); err != nil {
			return fmt.Errorf("failed to store password: %w", err)
		}

		if err := n.settings.Set(ctx, SettingTitle, title); err != nil {
			return fmt.Errorf("failed to store title: %w", err)
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.username = username
	n.password = password
	n.title = title

	return nil
}

// OnAfterCommit reacts to a completed commit. Only posts matter; anything
// else is ignored.
func (n *TwitterNotify) OnAfterCommit(ctx context.Context, entity any) {
	post, ok := entity.(*models.Post)
	if !ok {
		return
	}

	should, err := n.ShouldNotify(ctx, post)
	if err != nil {
		n.logger.Error("Failed to decide whether to tweet",
			"module", ModuleName,
			"error", err,
		)

		metrics.RecordNotificationSkipped("decision_error")

		return
	}

	if !should {
		metrics.RecordNotificationSkipped("filtered")
		return
	}

	n.mu.RLock()
	username, password, title := n.username, n.password, n.title
	n.mu.RUnlock()

	// The post is being published for the first time.
	status, err := n.chain.Format(ctx, post, title)
	if err != nil {
		n.logger.Error("Failed to format post for twitter",
			"module", ModuleName,
			"title", post.Title,
			"error", err,
		)

		metrics.RecordNotificationSkipped("format_error")

		return
	}

	if utf8.RuneCountInString(status) > MaxStatusLength {
		n.logger.Warn("Unable to format post for twitter",
			"module", ModuleName,
			"title", post.Title,
		)

		metrics.RecordNotificationSkipped("too_long")

		return
	}

	if err := n.client.UpdateStatus(ctx, username, password, status); err != nil {
		n.logger.Error("Failed to post status update",
			"module", ModuleName,
			"error", err,
		)

		metrics.RecordNotificationSkipped("transport_error")

		return
	}

	metrics.RecordTweetSent()
}

// ShouldNotify reports whether this commit is the post's first publish.
// Any published snapshot in the history means the post has been announced
// before, so edits and republishes stay quiet.
func (n *TwitterNotify) ShouldNotify(ctx context.Context, post *models.Post) (bool, error) {
	if post == nil {
		return false, &errors.ErrNilPost{}
	}

	if !post.IsPublished || post.IsDeleted {
		return false, nil
	}

	history, err := n.versions.History(ctx, post.ID)
	if err != nil {
		return false, fmt.Errorf("failed to read version history: %w", err)
	}

	for _, snapshot := range history {
		if snapshot.Post.IsPublished {
			return false, nil
		}
	}

	return true, nil
}
