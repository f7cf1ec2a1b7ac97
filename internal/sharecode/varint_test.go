package sharecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintBoundaries(t *testing.T) {
	tests := []struct {
		v    int
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{200, []byte{0xc8, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16383, []byte{0xff, 0x7f}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}
	for _, tt := range tests {
		got := AppendVarint(nil, tt.v)
		assert.Equal(t, tt.want, got, "encode %d", tt.v)

		v, off, err := ReadVarint(got, 0)
		require.NoError(t, err, "decode %d", tt.v)
		assert.Equal(t, tt.v, v)
		assert.Equal(t, len(got), off)
	}
}

func TestVarintSequence(t *testing.T) {
	values := []int{0, 127, 128, 5000, 1}
	var buf []byte
	for _, v := range values {
		buf = AppendVarint(buf, v)
	}

	off := 0
	for _, want := range values {
		var v int
		var err error
		v, off, err = ReadVarint(buf, off)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	assert.Equal(t, len(buf), off)
}

func TestAppendVarintNegativePanics(t *testing.T) {
	assert.Panics(t, func() { AppendVarint(nil, -1) })
}

func TestReadVarintTruncated(t *testing.T) {
	_, _, err := ReadVarint([]byte{0x80}, 0)
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = ReadVarint([]byte{0x01}, 1)
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = ReadVarint(nil, 0)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReadVarintOverflow(t *testing.T) {
	buf := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
	_, _, err := ReadVarint(buf, 0)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestPackUnpack(t *testing.T) {
	codes := []byte{1, 2, 3, 1, 3}
	packed := appendPacked(nil, codes)
	require.Len(t, packed, 2)
	assert.Equal(t, byte(1|2<<2|3<<4|1<<6), packed[0])
	assert.Equal(t, byte(3), packed[1], "partial byte is zero padded")

	got, err := unpack(packed, len(codes))
	require.NoError(t, err)
	assert.Equal(t, codes, got)

	_, err = unpack(packed[:1], len(codes))
	assert.ErrorIs(t, err, ErrTruncated)
}
