package cser

import (
	"errors"
	"math/big"

	"github.com/rony4d/go-opera-adventure/utils/bits"
	"github.com/rony4d/go-opera-adventure/utils/fast"
)

// Decoding errors. Every decode path reports one of these, so a given input
// is rejected the same way on every node.
var (
	ErrNonCanonicalEncoding = errors.New("non canonical encoding")
	ErrMalformedEncoding    = errors.New("malformed encoding")
	ErrTooLargeAlloc        = errors.New("too large allocation")
)

// MaxAlloc bounds a single decoded byte slice.
const MaxAlloc = 100 * 1024

// Writer writes the two cser streams. Length prefixes and flags go to BitsW,
// payload bytes to BytesW.
type Writer struct {
	BitsW  *bits.Writer
	BytesW *fast.Writer
}

// Reader is the decoding counterpart of Writer.
type Reader struct {
	BitsR  *bits.Reader
	BytesR *fast.Reader
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	bbits := &bits.Array{Bytes: make([]byte, 0, 32)}
	bbytes := make([]byte, 0, 200)
	return &Writer{
		BitsW:  bits.NewWriter(bbits),
		BytesW: fast.NewWriter(bbytes),
	}
}

// writeUint64Compact writes a base-128 varint where a set top bit marks the
// LAST byte. Only the frame suffix uses it.
func writeUint64Compact(bytesW *fast.Writer, v uint64) {
	for {
		chunk := v & 0x7f
		v >>= 7
		if v == 0 {
			bytesW.WriteByte(byte(chunk | 0x80))
			return
		}
		bytesW.WriteByte(byte(chunk))
	}
}

func readUint64Compact(bytesR *fast.Reader) uint64 {
	v := uint64(0)
	stop := false
	for i := 0; !stop; i++ {
		chunk := uint64(bytesR.ReadByte())
		stop = chunk&0x80 != 0
		word := chunk & 0x7f
		v |= word << (i * 7)
		// a zero terminal chunk means the value was padded
		if i > 0 && stop && word == 0 {
			panic(ErrNonCanonicalEncoding)
		}
	}
	return v
}

// writeUint64BitCompact writes v little-endian using as few bytes as possible,
// but no fewer than minSize. It returns the number of bytes written.
func writeUint64BitCompact(bytesW *fast.Writer, v uint64, minSize int) (size int) {
	for size < minSize || v != 0 {
		bytesW.WriteByte(byte(v))
		size++
		v >>= 8
	}
	return
}

func readUint64BitCompact(bytesR *fast.Reader, size int) uint64 {
	var (
		v    uint64
		last byte
	)
	buf := bytesR.Read(size)
	for i, b := range buf {
		v |= uint64(b) << uint(8*i)
		last = b
	}
	if size > 1 && last == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	return v
}

// readU64_bits reads the byte length (minus minSize) from the bit stream and
// then that many bytes from the byte stream.
func (r *Reader) readU64_bits(minSize int, bitsForSize int) uint64 {
	size := r.BitsR.Read(bitsForSize)
	size += uint(minSize)
	return readUint64BitCompact(r.BytesR, int(size))
}

func (w *Writer) writeU64_bits(minSize int, bitsForSize int, v uint64) {
	size := writeUint64BitCompact(w.BytesW, v, minSize)
	w.BitsW.Write(bitsForSize, uint(size-minSize))
}

// U8 writes one raw byte.
func (w *Writer) U8(v uint8) {
	w.BytesW.WriteByte(v)
}

// U8 reads one raw byte.
func (r *Reader) U8() uint8 {
	return r.BytesR.ReadByte()
}

// U56 is used for lengths: 3 size bits, 0..7 bytes.
func (w *Writer) U56(v uint64) {
	const max = 1<<(8*7) - 1
	if v > max {
		panic("value too big")
	}
	w.writeU64_bits(0, 3, v)
}

func (r *Reader) U56() uint64 {
	return r.readU64_bits(0, 3)
}

// Bool is a single bit.
func (w *Writer) Bool(v bool) {
	u := uint(0)
	if v {
		u = 1
	}
	w.BitsW.Write(1, u)
}

func (r *Reader) Bool() bool {
	return r.BitsR.Read(1) != 0
}

// FixedBytes writes v without a length prefix.
func (w *Writer) FixedBytes(v []byte) {
	w.BytesW.Write(v)
}

// FixedBytes fills v entirely.
func (r *Reader) FixedBytes(v []byte) {
	copy(v, r.BytesR.Read(len(v)))
}

// SliceBytes writes a U56 length then the bytes.
func (w *Writer) SliceBytes(v []byte) {
	w.U56(uint64(len(v)))
	w.FixedBytes(v)
}

func (r *Reader) SliceBytes(maxLen int) []byte {
	size := r.U56()
	if size > uint64(maxLen) {
		panic(ErrTooLargeAlloc)
	}
	buf := make([]byte, size)
	r.FixedBytes(buf)
	return buf
}

// BigInt writes the big-endian magnitude of v. The sign is dropped; use
// SignedBigInt for values that may be negative.
func (w *Writer) BigInt(v *big.Int) {
	var b []byte
	if v.Sign() != 0 {
		b = v.Bytes()
	}
	w.SliceBytes(b)
}

// BigInt reads a magnitude written by Writer.BigInt. A leading zero byte is
// non-canonical.
func (r *Reader) BigInt() *big.Int {
	buf := r.SliceBytes(512)
	if len(buf) == 0 {
		return new(big.Int)
	}
	if buf[0] == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	return new(big.Int).SetBytes(buf)
}

// SignedBigInt is a sign bit followed by BigInt.
func (w *Writer) SignedBigInt(v *big.Int) {
	w.Bool(v.Sign() < 0)
	w.BigInt(v)
}

func (r *Reader) SignedBigInt() *big.Int {
	neg := r.Bool()
	v := r.BigInt()
	if neg {
		if v.Sign() == 0 {
			panic(ErrNonCanonicalEncoding)
		}
		v.Neg(v)
	}
	return v
}
