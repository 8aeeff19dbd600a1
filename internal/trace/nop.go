package trace

// nopTracer is a no-op implementation for zero overhead when tracing is disabled.
type nopTracer struct{}

// Emitf does nothing.
func (nopTracer) Emitf(Level, string, ...any) {}

// Level returns LevelOff.
func (nopTracer) Level() Level { return LevelOff }

// Enabled always returns false.
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level singleton nop tracer.
var Nop Tracer = nopTracer{}
