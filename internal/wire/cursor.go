package wire

import "encoding/binary"

// cursor is a forward-only reader over a message buffer. Every read checks
// the remaining length first and reports ok=false instead of going past
// the end, in which case the position is left untouched.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

// remaining returns the number of unread octets.
func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

// next returns the next n octets and advances past them.
func (c *cursor) next(n int) ([]byte, bool) {
	if n < 0 || n > c.remaining() {
		return nil, false
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, true
}

func (c *cursor) skip(n int) bool {
	_, ok := c.next(n)
	return ok
}

func (c *cursor) uint8() (uint8, bool) {
	b, ok := c.next(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

func (c *cursor) uint16() (uint16, bool) {
	b, ok := c.next(2)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint16(b), true
}

func (c *cursor) uint32() (uint32, bool) {
	b, ok := c.next(4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(b), true
}
