// SPDX-License-Identifier: MIT

// Package logging provides leveled logging and step tracing for neurowave.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A StepTracer for structured JSONL per-step records
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// LevelTrace is a custom slog level below Debug for per-step logging.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "trace", "debug", "info", "warn", "error" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// StepTracer writes one JSON object per line to an io.Writer.
// It is safe for concurrent use. A nil StepTracer is safe to use;
// all methods are no-ops on nil receiver.
type StepTracer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStepTracer returns a tracer writing to w, or nil when w is nil.
func NewStepTracer(w io.Writer) *StepTracer {
	if w == nil {
		return nil
	}
	return &StepTracer{w: w}
}

// Log writes event as a single JSONL line. Marshal failures are dropped.
// Safe to call on nil receiver.
func (st *StepTracer) Log(event map[string]any) {
	if st == nil || st.w == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')

	st.mu.Lock()
	defer st.mu.Unlock()
	_, _ = st.w.Write(data)
}
