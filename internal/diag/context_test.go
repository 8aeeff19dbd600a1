package diag

import (
	"strings"
	"testing"

	"dxspv/internal/source"
	"dxspv/internal/trace"
)

func TestContext_MessageFormat(t *testing.T) {
	tests := []struct {
		name    string
		srcName string
		loc     source.Location
		want    string
	}{
		{
			name:    "with location",
			srcName: "water.hlsl",
			loc:     source.Location{Line: 7, Column: 1},
			want:    "water.hlsl:7:1: E3500: mismatched control flow\n",
		},
		{
			name:    "without location",
			srcName: "water.hlsl",
			want:    "water.hlsl: E3500: mismatched control flow\n",
		},
		{
			name: "anonymous source",
			loc:  source.Location{Line: 2, Column: 1},
			want: "<anonymous>:2:1: E3500: mismatched control flow\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(SevInfo, tt.srcName, nil)
			ctx.SetLocation(tt.loc)
			ctx.Reportf(SevError, ScanMismatchedControlFlow, "mismatched control flow")
			if got := ctx.Messages(); got != tt.want {
				t.Errorf("Messages() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContext_ThresholdDropsMessages(t *testing.T) {
	ctx := NewContext(SevError, "s", nil)
	ctx.Reportf(SevInfo, ScanInfo, "ignored")
	ctx.Reportf(SevWarning, ScanInvalidDataType, "also ignored")
	if ctx.HasMessages() {
		t.Errorf("messages below threshold were kept: %q", ctx.Messages())
	}

	ctx.Reportf(SevError, ScanMismatchedControlFlow, "kept")
	if !ctx.HasMessages() {
		t.Error("error message above threshold was dropped")
	}
}

func TestContext_SilentThresholdYieldsEmptyText(t *testing.T) {
	ctx := NewContext(SevSilent, "s", nil)
	ctx.Reportf(SevError, ScanMismatchedControlFlow, "suppressed")
	if got := ctx.Messages(); got != "" {
		t.Errorf("silent context produced text: %q", got)
	}
}

func TestContext_MessagesAppendInOrder(t *testing.T) {
	ctx := NewContext(SevInfo, "s", nil)
	ctx.Reportf(SevWarning, ScanInvalidDataType, "first")
	ctx.AdvanceLine()
	ctx.Reportf(SevError, ScanMismatchedControlFlow, "second")

	lines := strings.Split(strings.TrimSuffix(ctx.Messages(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "first") || !strings.Contains(lines[1], "second") {
		t.Errorf("messages out of order: %v", lines)
	}
}

func TestContext_MirrorsToTracer(t *testing.T) {
	var sb strings.Builder
	tr := trace.NewStream(&sb, trace.LevelTrace)
	ctx := NewContext(SevInfo, "s", tr)
	ctx.SetLocation(source.InstructionStart())
	ctx.Reportf(SevError, ScanMismatchedControlFlow, "boom")

	if !strings.Contains(sb.String(), "s:2:1: E3500: boom") {
		t.Errorf("line not mirrored to tracer: %q", sb.String())
	}
	// Mirroring must not change what the caller receives.
	if got := ctx.Messages(); got != "s:2:1: E3500: boom\n" {
		t.Errorf("Messages() affected by mirroring: %q", got)
	}
}
