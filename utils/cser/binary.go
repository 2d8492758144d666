// Package cser is the canonical serializer used for action payloads.
//
// A message is two streams written side by side: a bit stream carrying flags
// and length prefixes, and a byte stream carrying payload. Every value has
// exactly one valid encoding; decoders reject padding, unused trailing bits and
// leftover bytes, which is what makes payload hashes agree across nodes.
//
// Wire layout:
//
//	[body bytes][bit stream bytes][reversed varint(len(bit stream bytes))]
package cser

import (
	"github.com/rony4d/go-opera-adventure/utils/bits"
	"github.com/rony4d/go-opera-adventure/utils/fast"
)

// MarshalBinaryAdapter runs marshalCser against a fresh Writer and frames the
// two streams into one slice.
func MarshalBinaryAdapter(marshalCser func(*Writer) error) ([]byte, error) {
	w := NewWriter()
	if err := marshalCser(w); err != nil {
		return nil, err
	}
	return binaryFromCSER(w.BitsW.Array, w.BytesW.Bytes())
}

func binaryFromCSER(bbits *bits.Array, bbytes []byte) (raw []byte, err error) {
	body := fast.NewWriter(bbytes)
	body.Write(bbits.Bytes)

	size := fast.NewWriter(make([]byte, 0, 4))
	writeUint64Compact(size, uint64(len(bbits.Bytes)))
	// reversed so that a reader can decode it from the tail
	body.Write(reversed(size.Bytes()))

	return body.Bytes(), nil
}

func binaryToCSER(raw []byte) (bbits *bits.Array, bbytes []byte, err error) {
	sizeBuf := reversed(tail(raw, 9))
	sizeReader := fast.NewReader(sizeBuf)
	bitsSize := readUint64Compact(sizeReader)

	raw = raw[:len(raw)-sizeReader.Position()]
	if uint64(len(raw)) < bitsSize {
		err = ErrMalformedEncoding
		return
	}

	bbits = &bits.Array{Bytes: raw[uint64(len(raw))-bitsSize:]}
	bbytes = raw[:uint64(len(raw))-bitsSize]
	return
}

// UnmarshalBinaryAdapter splits raw into streams, runs unmarshalCser, and
// checks that the input was consumed exactly. Panics raised by truncated
// input are reported as ErrMalformedEncoding, or as the error they carry when
// it is one of this package's errors.
func UnmarshalBinaryAdapter(raw []byte, unmarshalCser func(reader *Reader) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case error:
				if e == ErrNonCanonicalEncoding || e == ErrTooLargeAlloc {
					err = e
					return
				}
			}
			err = ErrMalformedEncoding
		}
	}()

	if len(raw) == 0 {
		return ErrMalformedEncoding
	}
	bbits, bbytes, err := binaryToCSER(raw)
	if err != nil {
		return err
	}

	body := &Reader{
		BitsR:  bits.NewReader(bbits),
		BytesR: fast.NewReader(bbytes),
	}
	if err = unmarshalCser(body); err != nil {
		return err
	}

	// whole unused bytes in the bit stream
	if body.BitsR.NonReadBytes() > 1 {
		return ErrNonCanonicalEncoding
	}
	// padding bits of the last byte must be zero
	if body.BitsR.Read(body.BitsR.NonReadBits()) != 0 {
		return ErrNonCanonicalEncoding
	}
	if !body.BytesR.Empty() {
		return ErrNonCanonicalEncoding
	}
	return nil
}

func tail(b []byte, cap int) []byte {
	if len(b) > cap {
		return b[len(b)-cap:]
	}
	return b
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
