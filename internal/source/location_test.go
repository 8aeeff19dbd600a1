package source

import "testing"

func TestLocation_NextLine(t *testing.T) {
	tests := []struct {
		name     string
		loc      Location
		expected Location
	}{
		{
			name:     "advance from instruction start",
			loc:      InstructionStart(),
			expected: Location{Line: 3, Column: 1},
		},
		{
			name:     "column is preserved",
			loc:      Location{Line: 10, Column: 4},
			expected: Location{Line: 11, Column: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.NextLine(); got != tt.expected {
				t.Errorf("NextLine() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLocation_IsSet(t *testing.T) {
	if (Location{}).IsSet() {
		t.Error("zero location must not be set")
	}
	if !InstructionStart().IsSet() {
		t.Error("instruction start must be set")
	}
}

func TestName(t *testing.T) {
	if got := Name(""); got != AnonymousName {
		t.Errorf("Name(\"\") = %q, want %q", got, AnonymousName)
	}
	if got := Name("shader.hlsl"); got != "shader.hlsl" {
		t.Errorf("Name(shader.hlsl) = %q", got)
	}
}
