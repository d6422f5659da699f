package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type ClientRateLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterMiddleware applies a per-client-IP token bucket to the public
// XML endpoints. Stale client entries are evicted in the background.
type RateLimiterMiddleware struct {
	clients    map[string]*ClientRateLimiter
	mu         sync.Mutex
	rate       rate.Limit
	burst      int
	expiration time.Duration
	logger     *slog.Logger

	ctx context.Context
}

func NewRateLimiterMiddleware(
	ctx context.Context,
	requestsPerWindow int,
	window time.Duration,
	logger *slog.Logger,
) *RateLimiterMiddleware {
	r := rate.Limit(float64(requestsPerWindow) / window.Seconds())

	m := &RateLimiterMiddleware{
		clients:    make(map[string]*ClientRateLimiter),
		rate:       r,
		burst:      requestsPerWindow,
		expiration: 1 * time.Hour,
		logger:     logger,
		ctx:        ctx,
	}

	go m.cleanupClients()

	return m
}

func (m *RateLimiterMiddleware) getClientLimiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, exists := m.clients[ip]
	if !exists {
		client = &ClientRateLimiter{
			limiter: rate.NewLimiter(m.rate, m.burst),
		}
		m.clients[ip] = client
	}

	client.lastSeen = time.Now()

	return client.limiter
}

func (m *RateLimiterMiddleware) cleanupClients() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.mu.Lock()

			for ip, client := range m.clients {
				if time.Since(client.lastSeen) > m.expiration {
					delete(m.clients, ip)
				}
			}

			m.mu.Unlock()
		}
	}
}

func (m *RateLimiterMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		limiter := m.getClientLimiter(ip)

		if !limiter.Allow() {
			m.logger.Warn("Request rate limited",
				"ip", ip,
				"path", r.URL.Path,
			)

			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)

			return
		}

		next.ServeHTTP(w, r)
	})
}
