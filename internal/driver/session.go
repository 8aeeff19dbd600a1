package driver

import (
	"fmt"

	"dxspv/internal/diag"
	"dxspv/internal/dxbc"
	"dxspv/internal/sm4"
)

// Session is one open pass over a shader's token stream. Sessions are
// cheap; the compile path opens two per call rather than rewinding.
type Session struct {
	dec    *sm4.Decoder
	cur    sm4.Cursor
	ver    sm4.Version
	closed bool
}

// Open parses the container and positions the session on the first
// instruction. Structural container problems come back wrapped in
// ErrInvalidArgument; diagnostics about them go through r.
func Open(data []byte, r diag.Reporter) (*Session, error) {
	prog, err := dxbc.Extract(data, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	dec, err := sm4.Init(prog)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	s := &Session{dec: dec}
	s.cur, s.ver = dec.ReadHeader()
	return s, nil
}

// Version returns the shader type and model read from the header.
func (s *Session) Version() sm4.Version { return s.ver }

// OutputSignature returns the container's output signature.
func (s *Session) OutputSignature() dxbc.Signature { return s.dec.OutputSignature() }

// HasNext reports whether another instruction remains.
func (s *Session) HasNext() bool {
	return !s.dec.AtEnd(s.cur)
}

// DecodeNext decodes the next instruction into ins. Callers must check
// for the sm4.OpInvalid sentinel: it means the stream is structurally
// broken or the opcode is unknown, and decoding cannot be trusted past
// that point.
func (s *Session) DecodeNext(ins *sm4.Instruction) {
	s.dec.Decode(&s.cur, ins)
}

// Close releases the session. Exactly once per successful Open.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.dec = nil
}
