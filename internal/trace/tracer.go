package trace

import (
	"fmt"
	"io"
	"sync"
)

// Tracer is the sink for best-effort trace output. Mirrored diagnostic
// lines and side-channel logging go through a Tracer so the core never
// writes to process streams directly and tests can substitute a no-op.
type Tracer interface {
	// Emitf records one formatted line at the given level. Must be
	// goroutine-safe.
	Emitf(level Level, format string, args ...any)

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// StreamTracer writes lines to an io.Writer, one per Emitf call.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStream constructs a StreamTracer at the given level.
func NewStream(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{w: w, level: level}
}

// Emitf writes one line if the event level is enabled. Write errors are
// swallowed: tracing is best-effort and must never affect callers.
func (t *StreamTracer) Emitf(level Level, format string, args ...any) {
	if level == LevelOff || level > t.level {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "dxspv: %s: ", level)
	fmt.Fprintf(t.w, format, args...)
	io.WriteString(t.w, "\n")
}

// Level returns the configured level.
func (t *StreamTracer) Level() Level { return t.level }

// Enabled reports whether any output can be produced.
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
