package coinstats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteVarIntRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 255, 256, 16383, 16384, 1 << 32, 1<<64 - 1}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, v))
		got, err := ReadVarInt(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Equal(t, v, got, "round trip for %d", v)
	}
}

func TestWriteVarIntSingleByteRange(t *testing.T) {
	for v := uint64(0); v <= 0x7f; v++ {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, v))
		require.Len(t, buf.Bytes(), 1, "values <= 0x7f must encode to one byte")
		require.Equal(t, byte(v), buf.Bytes()[0]&0x7f)
	}
}

func TestWriteVarIntSignedNonnegRejectsNegative(t *testing.T) {
	var buf bytes.Buffer
	err := WriteVarIntSignedNonneg(&buf, -1)
	require.ErrorIs(t, err, ErrNegativeValue)
}

func TestWriteCompactSize(t *testing.T) {
	tests := []struct {
		n    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{252, []byte{0xfc}},
		{253, []byte{0xfd, 0xfd, 0x00}},
		{0xffff, []byte{0xfd, 0xff, 0xff}},
		{0x10000, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, WriteCompactSize(&buf, tt.n))
		require.Equal(t, tt.want, buf.Bytes())
	}
}
