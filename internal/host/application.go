package host

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/repositories"
)

type AfterCommitHandler func(ctx context.Context, entity any)

type BeginRequestHandler func(ctx context.Context, r *http.Request)

type HeaderRenderer func(ctx context.Context) string

// Application is the extension point the host CMS exposes: explicit handler
// registration for its request and commit pipelines. Extensions register at
// startup; registration is not synchronized against dispatch, so all
// handlers must be in place before traffic flows.
type Application struct {
	mu              sync.RWMutex
	afterCommit     []AfterCommitHandler
	beginRequest    []BeginRequestHandler
	headerRenderers []HeaderRenderer

	versions repositories.VersionRepository
	logger   *slog.Logger
}

func NewApplication(versions repositories.VersionRepository, logger *slog.Logger) *Application {
	return &Application{
		versions: versions,
		logger:   logger,
	}
}

func (a *Application) OnAfterCommit(handler AfterCommitHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.afterCommit = append(a.afterCommit, handler)
}

func (a *Application) OnBeginRequest(handler BeginRequestHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.beginRequest = append(a.beginRequest, handler)
}

func (a *Application) OnRenderHTMLHeader(renderer HeaderRenderer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.headerRenderers = append(a.headerRenderers, renderer)
}

// Commit dispatches AfterCommit handlers and then records the committed
// post as a new version snapshot. Handlers that inspect version history
// therefore see strictly earlier revisions only.
func (a *Application) Commit(ctx context.Context, entity any) error {
	a.mu.RLock()
	handlers := make([]AfterCommitHandler, len(a.afterCommit))
	copy(handlers, a.afterCommit)
	a.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, entity)
	}

	post, ok := entity.(*models.Post)
	if !ok || a.versions == nil {
		return nil
	}

	snapshot := &models.VersionSnapshot{
		PostID:    post.ID,
		Post:      *post,
		CreatedAt: time.Now(),
	}

	if err := a.versions.Append(ctx, snapshot); err != nil {
		a.logger.Error("Failed to record version snapshot",
			"postID", post.ID,
			"error", err,
		)

		return fmt.Errorf("failed to record version snapshot: %w", err)
	}

	return nil
}

func (a *Application) BeginRequest(ctx context.Context, r *http.Request) {
	a.mu.RLock()
	handlers := make([]BeginRequestHandler, len(a.beginRequest))
	copy(handlers, a.beginRequest)
	a.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, r)
	}
}

// RenderHTMLHeader collects every registered header line, one per renderer.
func (a *Application) RenderHTMLHeader(ctx context.Context) string {
	a.mu.RLock()
	renderers := make([]HeaderRenderer, len(a.headerRenderers))
	copy(renderers, a.headerRenderers)
	a.mu.RUnlock()

	var header strings.Builder

	for _, renderer := range renderers {
		line := renderer(ctx)
		if line == "" {
			continue
		}

		header.WriteString(line)
		header.WriteString("\n")
	}

	return header.String()
}
