package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/codemonkeylabs/graffiti-extensions/internal/common/metrics"
)

type SitemapGenerator interface {
	Generate(ctx context.Context) ([]byte, error)
}

type OpenSearchProvider interface {
	Descriptor() ([]byte, error)
}

// XMLHandler serves the sitemap and OpenSearch descriptor endpoints.
type XMLHandler struct {
	sitemap    SitemapGenerator
	openSearch OpenSearchProvider
	logger     *slog.Logger
}

func NewXMLHandler(sitemap SitemapGenerator, openSearch OpenSearchProvider, logger *slog.Logger) *XMLHandler {
	return &XMLHandler{
		sitemap:    sitemap,
		openSearch: openSearch,
		logger:     logger,
	}
}

func (h *XMLHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /sitemap.xml", h.HandleSitemap)
	mux.HandleFunc("GET /opensearch.xml", h.HandleOpenSearch)
}

func (h *XMLHandler) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	out, err := h.sitemap.Generate(r.Context())
	if err != nil {
		h.logger.Error("Failed to generate sitemap",
			"error", err,
		)
		http.Error(w, "failed to generate sitemap", http.StatusInternalServerError)

		return
	}

	metrics.RecordSitemapRender(time.Since(start))

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(out); err != nil {
		h.logger.Error("Failed to write sitemap response",
			"error", err,
		)
	}
}

func (h *XMLHandler) HandleOpenSearch(w http.ResponseWriter, r *http.Request) {
	out, err := h.openSearch.Descriptor()
	if err != nil {
		h.logger.Error("Failed to generate search descriptor",
			"error", err,
		)
		http.Error(w, "failed to generate search descriptor", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(out); err != nil {
		h.logger.Error("Failed to write descriptor response",
			"error", err,
		)
	}
}
