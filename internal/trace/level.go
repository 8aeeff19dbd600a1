package trace

import "fmt"

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff   Level = iota // no tracing
	LevelError              // decode and container failures
	LevelWarn               // recoverable oddities (unknown data types, dump failures)
	LevelInfo               // per-call summaries
	LevelTrace              // every diagnostic line mirrored
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "error", "ERROR":
		return LevelError, nil
	case "warn", "WARN":
		return LevelWarn, nil
	case "info", "INFO":
		return LevelInfo, nil
	case "trace", "TRACE":
		return LevelTrace, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|warn|info|trace)", s)
	}
}
