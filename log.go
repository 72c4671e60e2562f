package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

var debugLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// setDebug routes dbg output to w.
func setDebug(w io.Writer) {
	debugLog = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func dbg(format string, args ...any) {
	if !debugLog.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	debugLog.Debug(fmt.Sprintf(format, args...))
}
