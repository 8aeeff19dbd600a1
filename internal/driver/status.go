package driver

import "errors"

// Status is the coarse outcome classification callers branch on.
// It is derived from the wrapped sentinel errors below and never
// carries message text; text lives in Result.Messages.
type Status int

const (
	StatusOK Status = iota
	StatusInvalidArgument
	StatusInvalidShader
	StatusOutOfMemory
	StatusInternalError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidArgument:
		return "invalid argument"
	case StatusInvalidShader:
		return "invalid shader"
	case StatusOutOfMemory:
		return "out of memory"
	case StatusInternalError:
		return "internal error"
	}
	return "unknown"
}

var (
	// ErrInvalidArgument covers malformed options and callers handing
	// us data that is not a shader container at all.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidShader covers well-formed containers whose token
	// stream violates a structural rule.
	ErrInvalidShader = errors.New("invalid shader")
	// ErrInternal covers failures in our own machinery, generator
	// included.
	ErrInternal = errors.New("internal error")
)

// StatusOf maps an error chain onto a Status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrInvalidArgument):
		return StatusInvalidArgument
	case errors.Is(err, ErrInvalidShader):
		return StatusInvalidShader
	default:
		return StatusInternalError
	}
}
