package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "graffiti_extensions"

	NotifySubsystem  = "twitter_notify"
	WidgetsSubsystem = "widgets"
)

// Shared metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)
)

// Twitter notifier metrics.
var (
	TweetsSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: NotifySubsystem,
			Name:      "tweets_sent_total",
			Help:      "Total number of status updates posted",
		},
	)

	NotificationsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: NotifySubsystem,
			Name:      "notifications_skipped_total",
			Help:      "Total number of commits that did not produce a status update",
		},
		[]string{"reason"},
	)

	ShortenRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: NotifySubsystem,
			Name:      "shorten_requests_total",
			Help:      "Total number of URL shortening requests",
		},
		[]string{"status"},
	)
)

// Widget and XML endpoint metrics.
var (
	FeedRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: WidgetsSubsystem,
			Name:      "feed_refreshes_total",
			Help:      "Total number of SmugMug feed refreshes",
		},
		[]string{"status"},
	)

	SitemapRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "sitemap_render_duration_seconds",
			Help:      "Sitemap render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RecordHTTPRequest(service, method, endpoint string, statusCode int, duration time.Duration) {
	status := "success"
	if statusCode >= 400 {
		status = "error"
	}

	HTTPRequestsTotal.WithLabelValues(service, method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(service, method, endpoint).Observe(duration.Seconds())
}

func RecordTweetSent() {
	TweetsSentTotal.Inc()
}

func RecordNotificationSkipped(reason string) {
	NotificationsSkippedTotal.WithLabelValues(reason).Inc()
}

func RecordShortenRequest(status string) {
	ShortenRequestsTotal.WithLabelValues(status).Inc()
}

func RecordFeedRefresh(status string) {
	FeedRefreshesTotal.WithLabelValues(status).Inc()
}

func RecordSitemapRender(duration time.Duration) {
	SitemapRenderDuration.Observe(duration.Seconds())
}
