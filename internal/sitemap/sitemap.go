package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/repositories"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	Xmlns   string    `xml:"xmlns,attr"`
	URLs    []urlNode `xml:"url"`
}

type urlNode struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Generator renders the site's sitemap from the published post set.
type Generator struct {
	posts                repositories.PostRepository
	siteBaseURL          *url.URL
	includeUncategorized bool
	now                  func() time.Time
}

func NewGenerator(posts repositories.PostRepository, siteBaseURL string, includeUncategorized bool) (*Generator, error) {
	base, err := url.Parse(siteBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site base URL: %w", err)
	}

	return &Generator{
		posts:                posts,
		siteBaseURL:          base,
		includeUncategorized: includeUncategorized,
		now:                  time.Now,
	}, nil
}

// Generate renders the sitemap XML. The home page comes first, then the
// category pages, then the posts ordered by publication date. Posts that
// are unpublished, deleted, dirty or dated in the future are left out.
func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	set := urlSet{Xmlns: sitemapNamespace}

	set.URLs = append(set.URLs, urlNode{
		Loc:        g.siteBaseURL.String(),
		ChangeFreq: "daily",
		Priority:   "0.5",
	})

	categories, err := g.posts.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	for _, category := range categories {
		if !g.includeUncategorized && strings.EqualFold(category.Name, "uncategorized") {
			continue
		}

		set.URLs = append(set.URLs, urlNode{
			Loc:        g.resolve(category.URL),
			ChangeFreq: "daily",
			Priority:   "0.5",
		})
	}

	posts, err := g.posts.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	now := g.now()

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Published.Before(posts[j].Published)
	})

	for _, post := range posts {
		if !post.IsPublished || post.IsDeleted || post.IsDirty {
			continue
		}

		if post.Published.After(now) {
			continue
		}

		set.URLs = append(set.URLs, urlNode{
			Loc:        g.resolve(post.URL),
			LastMod:    post.Published.Format("2006-01-02"),
			ChangeFreq: "daily",
			Priority:   "0.5",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}

func (g *Generator) resolve(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	return g.siteBaseURL.ResolveReference(parsed).String()
}
