// Package logging configures the structured logger.
package logging

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

type Config struct {
	Level slog.Level `help:"The default logging level." default:"info"`
	JSON  bool       `help:"Enable JSON logging."`
}

// New creates a logger writing to w.
func New(config Config, w io.Writer) *slog.Logger {
	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: config.Level,
		})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      config.Level,
			TimeFormat: "15:04:05",
		})
	}
	return slog.New(handler)
}
