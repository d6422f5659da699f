package notify

import (
	"context"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

// MaxStatusLength is the status length budget, counted in runes.
const MaxStatusLength = 140

// FormattingStrategy turns a post and an optional prefix into a single
// status line. A strategy may produce more than MaxStatusLength runes;
// over-budget output is a quality failure handled by the chain, not an
// error. Strategies hold no mutable state and are safe for concurrent use.
type FormattingStrategy interface {
	Format(ctx context.Context, post *models.Post, prefix string) (string, error)
}
