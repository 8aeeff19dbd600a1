package diag

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for recoverable problems in the input.
	SevWarning
	// SevError is for problems that make the input unusable.
	SevError
	// SevSilent is a threshold-only value: no message reaches it, so a
	// context configured with SevSilent emits nothing at all.
	SevSilent
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevSilent:
		return "SILENT"
	}
	return "UNKNOWN"
}

// ParseSeverity converts a string to a threshold Severity.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info", "INFO":
		return SevInfo, nil
	case "warning", "WARNING":
		return SevWarning, nil
	case "error", "ERROR":
		return SevError, nil
	case "silent", "SILENT", "none", "NONE":
		return SevSilent, nil
	default:
		return SevError, fmt.Errorf("invalid severity: %q (expected: info|warning|error|silent)", s)
	}
}
