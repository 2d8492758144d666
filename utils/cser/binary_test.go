package cser

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/rony4d/go-opera-adventure/utils/bits"
	"github.com/rony4d/go-opera-adventure/utils/fast"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	buf, err := MarshalBinaryAdapter(func(w *Writer) error { return nil })
	require.NoError(t, err)
	require.Equal(t, []byte{0x80}, buf)

	err = UnmarshalBinaryAdapter(buf, func(r *Reader) error { return nil })
	require.NoError(t, err)
}

func TestValuesRoundTrip(t *testing.T) {
	var (
		u8s    = []uint8{0, 1, 0xff}
		u56s   = []uint64{0, 1, 1<<(8*7) - 1}
		bools  = []bool{true, false, true}
		slices = [][]byte{{}, {1, 2, 3}}
		bigs   = []*big.Int{big.NewInt(0), big.NewInt(0xfffff), new(big.Int).Lsh(big.NewInt(1), 200)}
		signed = []*big.Int{big.NewInt(-100), big.NewInt(0), big.NewInt(42)}
		fixed  = []byte{9, 8, 7, 6}
	)

	buf, err := MarshalBinaryAdapter(func(w *Writer) error {
		for _, v := range u8s {
			w.U8(v)
		}
		for _, v := range u56s {
			w.U56(v)
		}
		for _, v := range bools {
			w.Bool(v)
		}
		for _, v := range slices {
			w.SliceBytes(v)
		}
		for _, v := range bigs {
			w.BigInt(v)
		}
		for _, v := range signed {
			w.SignedBigInt(v)
		}
		w.FixedBytes(fixed)
		return nil
	})
	require.NoError(t, err)

	err = UnmarshalBinaryAdapter(buf, func(r *Reader) error {
		for _, v := range u8s {
			require.Equal(t, v, r.U8())
		}
		for _, v := range u56s {
			require.Equal(t, v, r.U56())
		}
		for _, v := range bools {
			require.Equal(t, v, r.Bool())
		}
		for _, v := range slices {
			require.Equal(t, v, r.SliceBytes(MaxAlloc))
		}
		for _, v := range bigs {
			require.Equal(t, 0, v.Cmp(r.BigInt()))
		}
		for _, v := range signed {
			require.Equal(t, 0, v.Cmp(r.SignedBigInt()))
		}
		got := make([]byte, len(fixed))
		r.FixedBytes(got)
		require.Equal(t, fixed, got)
		return nil
	})
	require.NoError(t, err)
}

func TestDecodeErrors(t *testing.T) {
	custom := errors.New("custom")

	// repack frames hand-made streams so single defects can be injected
	repack := func(bitsBytes, body []byte) []byte {
		raw, err := binaryFromCSER(&bits.Array{Bytes: bitsBytes}, body)
		require.NoError(t, err)
		return raw
	}
	readU56 := func(r *Reader) error {
		_ = r.U56()
		return nil
	}

	for _, tc := range []struct {
		name   string
		raw    []byte
		decode func(*Reader) error
		want   error
	}{
		{"nil input", nil, readU56, ErrMalformedEncoding},
		{"valid", repack([]byte{0x01}, []byte{5}), readU56, nil},
		{"callback error", repack([]byte{0x01}, []byte{5}), func(r *Reader) error { return custom }, custom},
		{"extra body byte", repack([]byte{0x01}, []byte{5, 0xff}), readU56, ErrNonCanonicalEncoding},
		{"extra bits byte", repack([]byte{0x01, 0x0f}, []byte{5}), readU56, ErrNonCanonicalEncoding},
		{"dirty padding bits", repack([]byte{0x09}, []byte{5}), readU56, ErrNonCanonicalEncoding},
		{"padded integer", repack([]byte{0x02}, []byte{5, 0}), readU56, ErrNonCanonicalEncoding},
		{"truncated body", repack([]byte{0x01}, nil), readU56, ErrMalformedEncoding},
		{"oversized bit stream", []byte{0x01, 0x85}, readU56, ErrMalformedEncoding},
		{
			"slice above limit",
			mustMarshal(t, func(w *Writer) { w.SliceBytes(make([]byte, 10)) }),
			func(r *Reader) error { r.SliceBytes(5); return nil },
			ErrTooLargeAlloc,
		},
		{
			"big int with leading zero",
			mustMarshal(t, func(w *Writer) { w.SliceBytes([]byte{0, 1}) }),
			func(r *Reader) error { r.BigInt(); return nil },
			ErrNonCanonicalEncoding,
		},
		{
			"negative zero",
			mustMarshal(t, func(w *Writer) { w.Bool(true); w.BigInt(new(big.Int)) }),
			func(r *Reader) error { r.SignedBigInt(); return nil },
			ErrNonCanonicalEncoding,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := UnmarshalBinaryAdapter(tc.raw, tc.decode)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tc.want, err)
		})
	}
}

func TestCompactSuffix(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, math.MaxUint32, math.MaxUint64} {
		w := fast.NewWriter(nil)
		writeUint64Compact(w, v)
		raw := w.Bytes()
		require.Equal(t, byte(0x80), raw[len(raw)-1]&0x80, "last byte carries the stop bit")
		require.Equal(t, v, readUint64Compact(fast.NewReader(raw)))
	}
	require.PanicsWithValue(t, ErrNonCanonicalEncoding, func() {
		readUint64Compact(fast.NewReader([]byte{0x05, 0x80}))
	})
}

func mustMarshal(t *testing.T, fn func(w *Writer)) []byte {
	t.Helper()
	raw, err := MarshalBinaryAdapter(func(w *Writer) error {
		fn(w)
		return nil
	})
	require.NoError(t, err)
	return raw
}
