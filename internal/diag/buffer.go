package diag

import "fmt"

// initial capacity of a message buffer; doubles on demand
const bufferStartCap = 32

// Buffer accumulates rendered message text. Capacity only grows, by
// doubling until the pending write fits, and content is never truncated.
// Not safe for concurrent use without external synchronization.
type Buffer struct {
	buf []byte
}

// Appendf appends formatted text, growing capacity as needed.
func (b *Buffer) Appendf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	b.reserve(len(text))
	b.buf = append(b.buf, text...)
}

// AppendString appends raw text, growing capacity as needed.
func (b *Buffer) AppendString(text string) {
	b.reserve(len(text))
	b.buf = append(b.buf, text...)
}

func (b *Buffer) reserve(n int) {
	if cap(b.buf)-len(b.buf) >= n {
		return
	}
	newCap := cap(b.buf)
	if newCap == 0 {
		newCap = bufferStartCap
	}
	for newCap-len(b.buf) < n {
		newCap *= 2
	}
	grown := make([]byte, len(b.buf), newCap)
	copy(grown, b.buf)
	b.buf = grown
}

// Clear resets logical length to zero without releasing capacity.
func (b *Buffer) Clear() {
	b.buf = b.buf[:0]
}

// Len returns the logical content length in bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// String returns an owned copy of the accumulated text.
func (b *Buffer) String() string {
	return string(b.buf)
}
