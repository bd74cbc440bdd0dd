package goCred

import (
	"context"
	"encoding/json"
	"io"
	"sync"
)

// AuditSink receives lifecycle events emitted by the engine, in addition to
// the persisted per-user trail. Sinks run on the dispatcher goroutine and
// must not block indefinitely.
type AuditSink interface {
	Emit(ctx context.Context, entry AuditEntry)
}

// NoOpSink drops audit events.
type NoOpSink struct{}

// Emit implements [AuditSink].
func (NoOpSink) Emit(context.Context, AuditEntry) {}

// ChannelSink writes audit events into a buffered channel for the host to
// consume.
type ChannelSink struct {
	entries chan AuditEntry
}

// NewChannelSink allocates a sink with the given buffer depth (minimum 1).
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		entries: make(chan AuditEntry, buffer),
	}
}

// Emit implements [AuditSink].
func (s *ChannelSink) Emit(ctx context.Context, entry AuditEntry) {
	select {
	case s.entries <- entry:
	case <-ctx.Done():
	}
}

// Entries exposes the consuming side of the channel.
func (s *ChannelSink) Entries() <-chan AuditEntry {
	return s.entries
}

// JSONWriterSink serializes each event as one JSON line to a writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink wraps w. The sink serializes concurrent writes itself.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit implements [AuditSink].
func (s *JSONWriterSink) Emit(_ context.Context, entry AuditEntry) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
