package models

// Photo is a single SmugMug feed entry.
type Photo struct {
	Title    string `json:"title"`
	PageURL  string `json:"pageUrl"`
	ImageURL string `json:"imageUrl"`
}

// Category is a host CMS post category, as far as the sitemap cares.
type Category struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
