package models

import (
	"strings"
	"time"
)

// Post is the host CMS content item. The extensions consume it read-only.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	TagList     string    `json:"tagList"`
	IsPublished bool      `json:"isPublished"`
	IsDeleted   bool      `json:"isDeleted"`
	IsDirty     bool      `json:"isDirty"`
	Published   time.Time `json:"published"`
}

// Tags splits the comma-separated tag list, dropping empty segments.
func (p *Post) Tags() []string {
	if p.TagList == "" {
		return nil
	}

	parts := strings.Split(p.TagList, ",")
	tags := make([]string, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}

		tags = append(tags, part)
	}

	return tags
}
