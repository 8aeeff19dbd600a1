package diag

import (
	"dxspv/internal/source"
	"dxspv/internal/trace"
)

// Reporter — минимальный контракт для компонентов, которые сообщают о
// проблемах во входном шейдере. Реализации: *Context, NopReporter.
type Reporter interface {
	Reportf(sev Severity, code Code, format string, args ...any)
}

// Context accumulates rendered diagnostic lines for one scan or compile
// call. It carries the severity threshold, the source name used to
// prefix messages, and the current synthetic location. One Context
// exists per top-level call and is discarded when the call returns.
type Context struct {
	threshold Severity
	source    string
	loc       source.Location
	messages  Buffer
	tracer    trace.Tracer
}

// NewContext constructs a Context. An empty sourceName is replaced with
// a placeholder; a nil tracer disables mirroring.
func NewContext(threshold Severity, sourceName string, tracer trace.Tracer) *Context {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Context{
		threshold: threshold,
		source:    source.Name(sourceName),
		tracer:    tracer,
	}
}

// SetLocation replaces the current location used to prefix messages.
func (c *Context) SetLocation(loc source.Location) {
	c.loc = loc
}

// Location returns the current location.
func (c *Context) Location() source.Location {
	return c.loc
}

// AdvanceLine moves the location one instruction further down.
func (c *Context) AdvanceLine() {
	c.loc = c.loc.NextLine()
}

// Reportf appends one rendered message line. Messages below the
// threshold are dropped before any formatting happens. The line is
// `source:line:col: E####: <message>` when a location is set, or
// `source: E####: <message>` otherwise.
func (c *Context) Reportf(sev Severity, code Code, format string, args ...any) {
	if sev < c.threshold {
		return
	}

	start := c.messages.Len()
	if c.loc.IsSet() {
		c.messages.Appendf("%s:%d:%d: %s: ", c.source, c.loc.Line, c.loc.Column, code)
	} else {
		c.messages.Appendf("%s: %s: ", c.source, code)
	}
	c.messages.Appendf(format, args...)
	c.messages.AppendString("\n")

	if c.tracer.Level() >= trace.LevelTrace {
		line := c.messages.String()[start:]
		c.tracer.Emitf(trace.LevelTrace, "%s", line[:len(line)-1])
	}
}

// Messages returns an owned copy of all accumulated text. It does not
// clear the buffer; callers are expected to discard the Context next.
func (c *Context) Messages() string {
	return c.messages.String()
}

// HasMessages reports whether anything was accumulated.
func (c *Context) HasMessages() bool {
	return c.messages.Len() != 0
}

// NopReporter drops every diagnostic. Useful in tests and internal
// passes whose message text is discarded anyway.
type NopReporter struct{}

// Reportf does nothing.
func (NopReporter) Reportf(Severity, Code, string, ...any) {}
