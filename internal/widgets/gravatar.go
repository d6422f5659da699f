package widgets

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
)

const (
	gravatarBaseURL       = "http://www.gravatar.com/avatar/"
	gravatarSecureBaseURL = "https://secure.gravatar.com/avatar/"

	GravatarMinSize = 1
	GravatarMaxSize = 512
)

var gravatarDefaultIcons = map[string]struct{}{
	"identicon": {},
	"monsterid": {},
	"wavatar":   {},
}

var gravatarRatings = map[string]struct{}{
	"g":  {},
	"pg": {},
	"r":  {},
	"x":  {},
}

// Gravatar builds avatar URLs for an email address. The zero value is not
// usable; construct through NewGravatar.
type Gravatar struct {
	size        int
	defaultIcon string
	rating      string
}

type GravatarOption func(*Gravatar)

func WithSize(size int) GravatarOption {
	return func(g *Gravatar) { g.size = size }
}

func WithDefaultIcon(icon string) GravatarOption {
	return func(g *Gravatar) { g.defaultIcon = icon }
}

func WithRating(rating string) GravatarOption {
	return func(g *Gravatar) { g.rating = rating }
}

func NewGravatar(opts ...GravatarOption) (*Gravatar, error) {
	g := &Gravatar{
		size:   80,
		rating: "g",
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.size < GravatarMinSize || g.size > GravatarMaxSize {
		return nil, &errors.ErrInvalidValue{
			FieldName: "size",
			Value:     fmt.Sprintf("%d", g.size),
			Reason:    fmt.Sprintf("must be between %d and %d", GravatarMinSize, GravatarMaxSize),
		}
	}

	if g.defaultIcon != "" {
		if _, ok := gravatarDefaultIcons[g.defaultIcon]; !ok {
			return nil, &errors.ErrInvalidValue{
				FieldName: "defaultIcon",
				Value:     g.defaultIcon,
				Reason:    "unknown default icon",
			}
		}
	}

	if g.rating != "" {
		if _, ok := gravatarRatings[g.rating]; !ok {
			return nil, &errors.ErrInvalidValue{
				FieldName: "rating",
				Value:     g.rating,
				Reason:    "unknown rating",
			}
		}
	}

	return g, nil
}

// URL returns the avatar URL for the given email address. Secure selects
// the https endpoint. The email is hashed after trimming and lowercasing,
// and the whole URL is emitted lowercase.
func (g *Gravatar) URL(email string, secure bool) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", &errors.ErrMissingRequiredField{FieldName: "email"}
	}

	base := gravatarBaseURL
	if secure {
		base = gravatarSecureBaseURL
	}

	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	hash := hex.EncodeToString(sum[:])

	params := url.Values{}
	params.Set("s", fmt.Sprintf("%d", g.size))

	if g.rating != "" {
		params.Set("r", g.rating)
	}

	if g.defaultIcon != "" {
		params.Set("d", g.defaultIcon)
	}

	return strings.ToLower(base + hash + "?" + params.Encode()), nil
}
