package pkg

import (
	"io"
	"log/slog"
)

// NewLogger builds the JSON logger shared by the extension binary and its
// outbound clients. Every component receives it at construction; no package
// logs through the slog default.
func NewLogger(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, nil)
	return slog.New(handler)
}
