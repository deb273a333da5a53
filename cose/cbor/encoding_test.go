package cbor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendItems(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	require.NoError(t, enc.AppendInt(1))
	require.NoError(t, enc.AppendInt(-7))
	require.NoError(t, enc.AppendBytes([]byte{0xde, 0xad}))
	require.NoError(t, enc.AppendText("kid"))

	require.Equal(t, []byte{
		0x01,
		0x26,
		0x42, 0xde, 0xad,
		0x63, 'k', 'i', 'd',
	}, buf.Bytes())
}

func TestAppendNilBytes(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.AppendBytes(nil))
	// zero length byte string, not null
	require.Equal(t, []byte{0x40}, buf.Bytes())
}

func TestAppendContainerHeads(t *testing.T) {
	cases := []struct {
		n    int
		want []byte
	}{
		{0, []byte{0xa0}},
		{23, []byte{0xb7}},
		{24, []byte{0xb8, 0x18}},
		{256, []byte{0xb9, 0x01, 0x00}},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		require.NoError(t, NewEncoder(&buf).AppendMap(c.n))
		require.Equal(t, c.want, buf.Bytes())
	}

	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).AppendArray(3))
	require.Equal(t, []byte{0x83}, buf.Bytes())
}

func TestMapRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.AppendMap(2))
	require.NoError(t, enc.AppendInt(1))
	require.NoError(t, enc.AppendInt(-8))
	require.NoError(t, enc.AppendInt(4))
	require.NoError(t, enc.AppendBytes([]byte{9}))

	var m map[int64]any
	require.NoError(t, Unmarshal(buf.Bytes(), &m))
	require.Equal(t, map[int64]any{1: int64(-8), 4: []byte{9}}, m)
}

func TestBufferFull(t *testing.T) {
	buf := NewBuffer(4)
	enc := NewEncoder(buf)

	require.NoError(t, enc.AppendBytes([]byte{1, 2, 3}))
	require.Equal(t, 4, buf.Len())
	require.ErrorIs(t, enc.AppendInt(0), ErrBufferFull)
	// contents stay truncated at the last complete write
	require.Equal(t, []byte{0x43, 1, 2, 3}, buf.Bytes())
}
