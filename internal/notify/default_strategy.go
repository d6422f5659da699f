package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

// DefaultStrategy composes prefix, title, the post's absolute URL and a
// hashtag list into one status line.
type DefaultStrategy struct {
	site *url.URL
}

func NewDefaultStrategy(siteBaseURL string) (*DefaultStrategy, error) {
	site, err := url.Parse(siteBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site base URL: %w", err)
	}

	return &DefaultStrategy{site: site}, nil
}

func (s *DefaultStrategy) Format(_ context.Context, post *models.Post, prefix string) (string, error) {
	fullURL, err := s.FullURL(post)
	if err != nil {
		return "", err
	}

	return s.compose(post, prefix, fullURL), nil
}

// FullURL resolves the post's URL against the site base, so relative host
// paths come out absolute.
func (s *DefaultStrategy) FullURL(post *models.Post) (string, error) {
	ref, err := url.Parse(post.URL)
	if err != nil {
		return "", fmt.Errorf("failed to parse post URL: %w", err)
	}

	return s.site.ResolveReference(ref).String(), nil
}

func (s *DefaultStrategy) compose(post *models.Post, prefix, postURL string) string {
	var text strings.Builder

	text.WriteString(formatPrefix(prefix))
	fmt.Fprintf(&text, " %s %s", post.Title, postURL)

	if tags := formatTags(post); tags != "" {
		fmt.Fprintf(&text, " %s", tags)
	}

	return strings.TrimSpace(text.String())
}

func formatPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}

	return strings.ReplaceAll(prefix, ":", "") + ":"
}

func formatTags(post *models.Post) string {
	var tags strings.Builder

	for _, tag := range post.Tags() {
		if tags.Len() != 0 {
			tags.WriteString(" ")
		}

		tags.WriteString("#" + tag)
	}

	return tags.String()
}
