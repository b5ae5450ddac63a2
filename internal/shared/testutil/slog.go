// Package testutil provides the log capture handler used by tests that
// assert on structured log output.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// Record is one captured log record.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that buffers every record it
// receives. All levels are captured regardless of configuration.
type CaptureHandler struct {
	mu      *sync.Mutex
	attrs   []slog.Attr
	records *[]Record
}

// NewLogger returns a logger whose records can be inspected through the
// returned handler.
func NewLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	t.Helper()
	h := &CaptureHandler{mu: new(sync.Mutex), records: new([]Record)}
	return slog.New(h), h
}

func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, Record{Level: r.Level, Message: r.Message, Attrs: attrs})
	return nil
}

// WithAttrs returns a handler sharing this handler's record buffer, so
// records logged through derived loggers remain visible to the test.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CaptureHandler{mu: h.mu, attrs: merged, records: h.records}
}

// WithGroup flattens groups; tests assert on keys, not nesting.
func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of everything captured so far.
func (h *CaptureHandler) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, len(*h.records))
	copy(out, *h.records)
	return out
}

// HasMessage reports whether a record with the exact message was logged
// at the given level.
func (h *CaptureHandler) HasMessage(level slog.Level, message string) bool {
	for _, r := range h.Records() {
		if r.Level == level && r.Message == message {
			return true
		}
	}
	return false
}

// HasAttr reports whether any record carries the attribute.
func (h *CaptureHandler) HasAttr(key string, value any) bool {
	for _, r := range h.Records() {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}
