// Package scratch provides a per-frame byte arena for transient strings.
package scratch

import (
	"fmt"
	"unsafe"
)

// Buffer hands out strings that alias its storage. They stay valid until
// the next Reset; a Buffer must not be shared between goroutines.
type Buffer struct {
	buf  []byte
	peak int
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Reset forgets the contents without freeing memory. Call it once per frame.
func (b *Buffer) Reset() {
	b.peak = max(b.peak, len(b.buf))
	b.buf = b.buf[:0]
}

func (b *Buffer) Cap() int { return cap(b.buf) }

// Peak is the largest length seen at a Reset, for sizing the capacity.
func (b *Buffer) Peak() int { return max(b.peak, len(b.buf)) }

// Sprintf formats into the buffer. If the buffer grows, earlier strings keep
// pointing at the old storage, which is never written again.
func (b *Buffer) Sprintf(format string, args ...any) string {
	mark := len(b.buf)
	b.buf = fmt.Appendf(b.buf, format, args...)
	return b.view(mark)
}

func (b *Buffer) view(mark int) string {
	n := len(b.buf) - mark
	if n == 0 {
		return ""
	}
	return unsafe.String(&b.buf[mark], n)
}
