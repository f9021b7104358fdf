// Package coinstats computes aggregate statistics and an optional
// cryptographic commitment over a snapshot of the unspent transaction
// output set.
package coinstats

import (
	"bytes"

	"github.com/luxfi/ids"
)

// OutPoint identifies a single transaction output.
type OutPoint struct {
	TxID ids.ID
	N    uint32
}

// Compare orders OutPoints by (txid, n) using big-endian byte comparison on
// the txid, matching the cursor's guaranteed yield order.
func (o OutPoint) Compare(other OutPoint) int {
	if c := bytes.Compare(o.TxID[:], other.TxID[:]); c != 0 {
		return c
	}
	switch {
	case o.N < other.N:
		return -1
	case o.N > other.N:
		return 1
	default:
		return 0
	}
}

// TxOut is a single transaction output: a value in satoshi-equivalent units
// and the locking script.
type TxOut struct {
	Value        int64
	ScriptPubKey []byte
}

// Coin is an unspent output together with the metadata needed to reproduce
// the consensus-observable commitment: the height and coinbase status of
// the transaction that created it.
type Coin struct {
	Out        TxOut
	Height     uint32
	IsCoinbase bool
}

// PackedHeight encodes height and coinbase status the way the commitment
// transcripts require: height*2 + (is_coinbase ? 1 : 0).
func (c Coin) PackedHeight() uint32 {
	packed := c.Height * 2
	if c.IsCoinbase {
		packed++
	}
	return packed
}

// HashType selects the commitment mode computed alongside the plain
// statistics.
type HashType int

const (
	// HashTypeNone skips commitment computation entirely.
	HashTypeNone HashType = iota
	// HashTypeSerialized computes a sequential transcript hash over the
	// cursor's natural (txid, n) order.
	HashTypeSerialized
	// HashTypeMuHash computes an order-independent multiset hash.
	HashTypeMuHash
)

func (h HashType) String() string {
	switch h {
	case HashTypeNone:
		return "none"
	case HashTypeSerialized:
		return "hash_serialized"
	case HashTypeMuHash:
		return "muhash"
	default:
		return "unknown"
	}
}

// CoinStats accumulates over a full UTXO set scan.
type CoinStats struct {
	Height              uint32
	BlockHash           ids.ID
	CoinsCount          uint64
	NTransactions       uint64
	NTransactionOutputs uint64
	NBogoSize           uint64
	TotalAmount         int64
	HashSerialized      [32]byte
	DiskSize            uint64
	HashType            HashType
	IndexRequested      bool
	IndexUsed           bool
}
