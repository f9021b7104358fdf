package coinstats

import (
	"encoding/binary"
	"io"
)

// WriteCompactSize writes n using the prefixed-length encoding used for the
// script-length field of the canonical TxOut encoding (§4.1): values below
// 253 are a single byte, larger values are prefixed by 0xfd/0xfe/0xff
// followed by a little-endian 2/4/8 byte count.
func WriteCompactSize(w io.Writer, n uint64) error {
	switch {
	case n < 253:
		_, err := w.Write([]byte{byte(n)})
		return err
	case n <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = 253
		binary.LittleEndian.PutUint16(buf[1:], uint16(n))
		_, err := w.Write(buf)
		return err
	case n <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = 254
		binary.LittleEndian.PutUint32(buf[1:], uint32(n))
		_, err := w.Write(buf)
		return err
	default:
		buf := make([]byte, 9)
		buf[0] = 255
		binary.LittleEndian.PutUint64(buf[1:], n)
		_, err := w.Write(buf)
		return err
	}
}

// WriteVarInt writes n using the base-128 prefix-continuation varint used
// throughout the serialized-hash transcript (§4.2): the most significant
// group is emitted first with its continuation bit set, the least
// significant group last without it. Unlike a plain base-128 encoding each
// non-terminal group encodes n = (n>>7)-1 rather than a simple shift, which
// keeps the encoding free of redundant representations.
func WriteVarInt(w io.Writer, n uint64) error {
	var tmp [10]byte
	length := 0
	for {
		if length == 0 {
			tmp[length] = byte(n & 0x7f)
		} else {
			tmp[length] = byte(n&0x7f) | 0x80
		}
		if n <= 0x7f {
			break
		}
		n = (n >> 7) - 1
		length++
	}
	for i := length; i >= 0; i-- {
		if _, err := w.Write(tmp[i : i+1]); err != nil {
			return err
		}
	}
	return nil
}

// WriteVarIntSignedNonneg writes v using WriteVarInt's encoding. Output
// values are consensus-guaranteed nonnegative, so the "signed nonnegative"
// variant used by the transcript is WriteVarInt over the unsigned
// reinterpretation of v; a negative v indicates a decoding bug upstream and
// is rejected rather than silently wrapped.
func WriteVarIntSignedNonneg(w io.Writer, v int64) error {
	if v < 0 {
		return ErrNegativeValue
	}
	return WriteVarInt(w, uint64(v))
}

// ReadVarInt decodes a WriteVarInt-encoded value from r. Provided for
// completeness and for tests that round-trip the encoding; the commitment
// engine itself is write-only.
func ReadVarInt(r io.ByteReader) (uint64, error) {
	var n uint64
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		n = (n << 7) | uint64(b&0x7f)
		if b&0x80 != 0 {
			n++
		} else {
			return n, nil
		}
	}
}
