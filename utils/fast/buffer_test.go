package fast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	require := require.New(t)

	extra := []byte{0, 0, 0xff, 9, 0}
	w := NewWriter(make([]byte, 0, 8))
	for i := byte(0); i < 100; i++ {
		w.WriteByte(i)
	}
	w.Write(extra)
	require.Len(w.Bytes(), 100+len(extra))

	r := NewReader(w.Bytes())
	require.False(r.Empty())
	for exp := byte(0); exp < 100; exp++ {
		require.Equal(exp, r.ReadByte())
	}
	require.Equal(100, r.Position())
	require.Equal(extra, r.Read(len(extra)))
	require.True(r.Empty())
	require.Len(r.Bytes(), 100+len(extra))
}

func TestReaderPastEnd(t *testing.T) {
	r := NewReader([]byte{1})
	require.Equal(t, byte(1), r.ReadByte())
	require.Panics(t, func() { r.ReadByte() })
	require.Panics(t, func() { r.Read(1) })
	require.Equal(t, []byte{}, NewReader([]byte{}).Read(0))
}
