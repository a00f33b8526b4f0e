// Package diag provides the per-match diagnostic side channel. The combat core
// records one Entry per notable decision; the Sink it records to is injected by
// the caller and is never shared between concurrently running matches.
package diag

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Level is the severity of a diagnostic entry.
type Level int

const (
	Debug Level = iota
	Info
	Warning
)

// String returns a short upper-case label for the level.
func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

// Entry is one diagnostic record.
type Entry struct {
	Level Level
	// Location names the rule that produced the entry, e.g. "TakeDamage".
	Location string
	Text     string
}

// String formats the entry as a single log line.
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Level, e.Location, e.Text)
}

// Sink receives diagnostic entries.
type Sink interface {
	Record(e Entry)
}

// Recordf formats and records an entry on s. A nil sink discards the entry.
func Recordf(s Sink, level Level, location, format string, args ...any) {
	if s == nil {
		return
	}
	s.Record(Entry{Level: level, Location: location, Text: fmt.Sprintf(format, args...)})
}

// Buffer is an append-only, in-memory Sink scoped to one match.
// It is safe for concurrent use, although the combat core only ever writes
// to it from a single goroutine.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Record appends e.
func (b *Buffer) Record(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
}

// Entries returns a snapshot of all recorded entries in order.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of recorded entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// String renders the buffer as newline-separated log lines.
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, e := range b.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ZapSink forwards entries to a zap logger.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a Sink that logs each entry to logger.
//
// Precondition: logger must be non-nil.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Record logs Warning entries at warn and everything else at debug. The
// diagnostic level is kept in the "diag_level" field.
func (z *ZapSink) Record(e Entry) {
	fields := []zap.Field{
		zap.String("location", e.Location),
		zap.Stringer("diag_level", e.Level),
	}
	if e.Level == Warning {
		z.logger.Warn(e.Text, fields...)
		return
	}
	z.logger.Debug(e.Text, fields...)
}

// Tee fans every entry out to all of its sinks in order.
type Tee []Sink

// Record forwards e to each non-nil sink.
func (t Tee) Record(e Entry) {
	for _, s := range t {
		if s != nil {
			s.Record(e)
		}
	}
}

// Discard is a Sink that drops every entry.
var Discard Sink = discard{}

type discard struct{}

func (discard) Record(Entry) {}
