package trace

import (
	"strings"
	"testing"
)

func TestStreamTracer_LevelFilter(t *testing.T) {
	var sb strings.Builder
	tr := NewStream(&sb, LevelWarn)

	tr.Emitf(LevelError, "container truncated")
	tr.Emitf(LevelWarn, "unknown data type %#x", 9)
	tr.Emitf(LevelInfo, "scanned %d instructions", 42)
	tr.Emitf(LevelTrace, "mirrored line")

	out := sb.String()
	if !strings.Contains(out, "container truncated") {
		t.Errorf("error line missing from output: %q", out)
	}
	if !strings.Contains(out, "unknown data type 0x9") {
		t.Errorf("warn line missing from output: %q", out)
	}
	if strings.Contains(out, "scanned") || strings.Contains(out, "mirrored") {
		t.Errorf("lines above threshold leaked into output: %q", out)
	}
}

func TestNopTracer(t *testing.T) {
	if Nop.Enabled() {
		t.Error("nop tracer must report disabled")
	}
	if Nop.Level() != LevelOff {
		t.Errorf("nop tracer level = %v, want off", Nop.Level())
	}
	// Must not panic.
	Nop.Emitf(LevelError, "ignored %d", 1)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{"warn", LevelWarn, false},
		{"info", LevelInfo, false},
		{"trace", LevelTrace, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
