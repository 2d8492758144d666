package plain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-opera-adventure/utils/cser"
)

func TestRoundTrip(t *testing.T) {
	huge, _ := new(big.Int).SetString("-123456789012345678901234567890", 10)
	for name, v := range map[string]Value{
		"zero":        NewInteger(0),
		"negative":    NewInteger(-7),
		"huge":        BigInteger(huge),
		"text":        Text("wanted"),
		"empty text":  Text(""),
		"binary":      Binary{0xde, 0xad},
		"empty list":  List{},
		"nested list": List{NewInteger(1), List{Text("a"), Binary{1}}},
		"dict": Dict{
			"values":  List{NewInteger(3)},
			"type_id": Text("wanted"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := Marshal(v)
			require.NoError(t, err)

			got, err := Unmarshal(raw)
			require.NoError(t, err)
			require.True(t, Equal(v, got), "got %#v", got)

			again, err := Marshal(got)
			require.NoError(t, err)
			require.Equal(t, raw, again, "encoding must be canonical")
		})
	}
}

func TestDictOrderIndependent(t *testing.T) {
	a := Dict{"a": NewInteger(1), "b": NewInteger(2), "c": NewInteger(3)}
	b := Dict{"c": NewInteger(3), "a": NewInteger(1), "b": NewInteger(2)}
	ra, err := Marshal(a)
	require.NoError(t, err)
	rb, err := Marshal(b)
	require.NoError(t, err)
	require.Equal(t, ra, rb)
	require.Equal(t, []string{"a", "b", "c"}, b.Keys())
}

func TestUnmarshalRejects(t *testing.T) {
	unsorted, err := cser.MarshalBinaryAdapter(func(w *cser.Writer) error {
		w.U8(uint8(KindDict))
		w.U56(2)
		w.SliceBytes([]byte("values"))
		w.U8(uint8(KindText))
		w.SliceBytes(nil)
		w.SliceBytes([]byte("type_id"))
		w.U8(uint8(KindText))
		w.SliceBytes(nil)
		return nil
	})
	require.NoError(t, err)
	_, err = Unmarshal(unsorted)
	require.Equal(t, ErrUnsorted, err)

	unknown, err := cser.MarshalBinaryAdapter(func(w *cser.Writer) error {
		w.U8(0x7f)
		return nil
	})
	require.NoError(t, err)
	_, err = Unmarshal(unknown)
	require.Equal(t, ErrUnknownKind, err)

	var deep Value = NewInteger(1)
	for i := 0; i <= MaxDepth+1; i++ {
		deep = List{deep}
	}
	raw, err := Marshal(deep)
	require.NoError(t, err)
	_, err = Unmarshal(raw)
	require.Equal(t, ErrTooDeep, err)

	good, err := Marshal(Text("x"))
	require.NoError(t, err)
	_, err = Unmarshal(append([]byte{0x00}, good...))
	require.Error(t, err)

	_, err = Unmarshal(nil)
	require.Equal(t, cser.ErrMalformedEncoding, err)
}

func TestIntegerAccessors(t *testing.T) {
	v, ok := NewInteger(-5).Int64()
	require.True(t, ok)
	require.Equal(t, int64(-5), v)

	_, ok = BigInteger(new(big.Int).Lsh(big.NewInt(1), 70)).Int64()
	require.False(t, ok)

	require.Equal(t, 0, Integer{}.Big().Sign())
}
