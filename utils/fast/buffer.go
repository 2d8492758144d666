// Package fast wraps byte slices with an append-only Writer and a cursor Reader.
//
// Neither type checks bounds: reading past the end panics. The cser decoder
// recovers such panics and reports them as malformed input, so callers never
// see them.
package fast

// Reader consumes a byte slice from the front.
type Reader struct {
	buf    []byte
	offset int
}

// Writer appends to a byte slice.
type Writer struct {
	buf []byte
}

// NewReader returns a Reader positioned at the start of bb.
func NewReader(bb []byte) *Reader {
	return &Reader{buf: bb}
}

// NewWriter returns a Writer that appends to bb.
func NewWriter(bb []byte) *Writer {
	return &Writer{buf: bb}
}

// WriteByte appends v.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends all of v.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// Bytes returns everything written so far.
func (b *Writer) Bytes() []byte {
	return b.buf
}

// Read returns the next n bytes. The result aliases the underlying buffer.
func (b *Reader) Read(n int) []byte {
	res := b.buf[b.offset : b.offset+n]
	b.offset += n
	return res
}

// ReadByte returns the next byte.
func (b *Reader) ReadByte() byte {
	res := b.buf[b.offset]
	b.offset++
	return res
}

// Position is the number of bytes consumed.
func (b *Reader) Position() int {
	return b.offset
}

// Bytes returns the whole underlying buffer, consumed or not.
func (b *Reader) Bytes() []byte {
	return b.buf
}

// Empty reports whether every byte was consumed.
func (b *Reader) Empty() bool {
	return len(b.buf) == b.offset
}
