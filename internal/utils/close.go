package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs a warning when closing fails. It is meant to
// be deferred on response bodies where a close error must not override the
// primary error of the surrounding function.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}
