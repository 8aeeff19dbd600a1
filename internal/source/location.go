package source

import "fmt"

// AnonymousName is used when a caller does not supply a source name.
const AnonymousName = "<anonymous>"

// Location is a (line, column) position inside a shader.
//
// Shader bytecode has no real source text, so locations are synthetic:
// line 1 is the version token, every following instruction advances the
// line by one. Column is always 1 in practice but kept for the message
// format. A zero Location means "no position known".
type Location struct {
	Line   uint32
	Column uint32
}

// IsSet reports whether the location carries a real position.
func (l Location) IsSet() bool {
	return l.Line != 0
}

// NextLine returns the location one instruction further down.
func (l Location) NextLine() Location {
	return Location{Line: l.Line + 1, Column: l.Column}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// InstructionStart is the location of the first instruction after the
// version token.
func InstructionStart() Location {
	return Location{Line: 2, Column: 1}
}

// Name normalizes a caller-provided source name.
func Name(s string) string {
	if s == "" {
		return AnonymousName
	}
	return s
}
