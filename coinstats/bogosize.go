package coinstats

import (
	"bytes"
	"encoding/binary"
)

// bogoSizePerOutputOverhead is the notional fixed overhead per unspent
// output, independent of script length. It approximates the number of bytes
// an output consumes at rest (outpoint, height, value, length prefix) for
// benchmarking UTXO set growth; it is not itself a serialization format and
// must never change once published.
const bogoSizePerOutputOverhead = 50

// BogoSize returns the notional on-disk size of an output with the given
// locking script, for UTXO set growth benchmarking. Fixed; never change.
func BogoSize(scriptPubKey []byte) uint64 {
	return bogoSizePerOutputOverhead + uint64(len(scriptPubKey))
}

// appendU32LE appends n to buf in little-endian order.
func appendU32LE(buf []byte, n uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], n)
	return append(buf, tmp[:]...)
}

// canonicalTxOut writes the canonical TxOut encoding referenced by §4.1: the
// value as a little-endian i64, the script length as a compact-size varint,
// then the script bytes.
func canonicalTxOut(w *bytes.Buffer, out TxOut) error {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(out.Value))
	if _, err := w.Write(tmp[:]); err != nil {
		return err
	}
	if err := WriteCompactSize(w, uint64(len(out.ScriptPubKey))); err != nil {
		return err
	}
	_, err := w.Write(out.ScriptPubKey)
	return err
}

// muhashInsertBytes builds the per-output input to MuHash's multiplicative
// insert: OutPoint || u32_le(height*2+is_coinbase) || canonical TxOut
// encoding, exactly as defined in §4.1.
func muhashInsertBytes(op OutPoint, c Coin) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(32 + 4 + 4 + 8 + 1 + len(c.Out.ScriptPubKey))
	if _, err := buf.Write(op.TxID[:]); err != nil {
		return nil, err
	}
	n := appendU32LE(nil, op.N)
	if _, err := buf.Write(n); err != nil {
		return nil, err
	}
	h := appendU32LE(nil, c.PackedHeight())
	if _, err := buf.Write(h); err != nil {
		return nil, err
	}
	if err := canonicalTxOut(&buf, c.Out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
