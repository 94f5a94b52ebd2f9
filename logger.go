package main

import (
	"io"
	"log/slog"
)

// NewLogger returns a structured JSON logger writing to w at the given level.
// The GUI logs to stdout; subcommands log to stderr so their own output stays
// machine readable.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("app", "image-splitter")
}
