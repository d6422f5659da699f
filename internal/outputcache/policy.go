package outputcache

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// PageKind classifies a request path for cache-policy purposes.
type PageKind int

const (
	PageOther PageKind = iota
	PageHome
	PagePost
	PageCategory
	PageTag
)

var postPathPattern = regexp.MustCompile(`^/(?:\d{4}/\d{1,2}/\d{1,2}/|post/)`)

// Classify maps a request path to a page kind. Anything that is not a
// public content page counts as PageOther and is never cached.
func Classify(path string) PageKind {
	switch {
	case path == "/" || path == "/default.aspx":
		return PageHome
	case strings.HasPrefix(path, "/category/"):
		return PageCategory
	case strings.HasPrefix(path, "/tag/"):
		return PageTag
	case postPathPattern.MatchString(path):
		return PagePost
	default:
		return PageOther
	}
}

// Policy adds browser cache headers to public content pages. The window is
// short so that edits show up quickly while repeat hits within a browsing
// session stay cheap.
type Policy struct {
	maxAge time.Duration
	now    func() time.Time
}

func NewPolicy(maxAge time.Duration) *Policy {
	if maxAge <= 0 {
		maxAge = 30 * time.Second
	}

	return &Policy{
		maxAge: maxAge,
		now:    time.Now,
	}
}

func (p *Policy) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && Classify(r.URL.Path) != PageOther {
			now := p.now().UTC()

			w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(p.maxAge.Seconds())))
			w.Header().Set("Expires", now.Add(p.maxAge).Format(http.TimeFormat))
			w.Header().Set("Last-Modified", now.Format(http.TimeFormat))
		}

		next.ServeHTTP(w, r)
	})
}
