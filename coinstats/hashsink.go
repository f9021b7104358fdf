package coinstats

import (
	"bytes"
	"crypto/sha256"

	"github.com/luxfi/coreavalanche/coinstats/muhash"
	"github.com/luxfi/ids"
)

func sha256Sum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// IndexedCoin pairs an output index with its Coin, as buffered per
// transaction during a scan.
type IndexedCoin struct {
	N    uint32
	Coin Coin
}

// TxOutputGroup is the per-transaction buffer handed to a HashSink's Update,
// with Outputs sorted ascending by N.
type TxOutputGroup struct {
	TxID    ids.ID
	Outputs []IndexedCoin
}

// HashSink is the tagged commitment-mode variant driven by StatsAggregator.
// All three variants share the same three-call lifecycle: Prepare, then one
// Update per transaction group in cursor order, then Finalize. The None
// variant is a no-op in all three calls; it is kept as a concrete type
// rather than folded away so that StatsAggregator can treat all three modes
// uniformly.
type HashSink interface {
	Prepare(stats *CoinStats) error
	Update(group TxOutputGroup) error
	Finalize(stats *CoinStats) error
}

// NewHashSink constructs the sink for the requested commitment mode.
func NewHashSink(hashType HashType) HashSink {
	switch hashType {
	case HashTypeSerialized:
		return &serializedHashSink{}
	case HashTypeMuHash:
		return &muHashSink{mh: muhash.New()}
	default:
		return noneHashSink{}
	}
}

// noneHashSink skips commitment computation entirely.
type noneHashSink struct{}

func (noneHashSink) Prepare(*CoinStats) error   { return nil }
func (noneHashSink) Update(TxOutputGroup) error { return nil }
func (noneHashSink) Finalize(*CoinStats) error  { return nil }

// serializedHashSink hashes a sequential transcript of the cursor's natural
// (txid, n) order, grouped per transaction as described in §4.2.
type serializedHashSink struct {
	buf bytes.Buffer
}

func (s *serializedHashSink) Prepare(stats *CoinStats) error {
	_, err := s.buf.Write(stats.BlockHash[:])
	return err
}

func (s *serializedHashSink) Update(group TxOutputGroup) error {
	if len(group.Outputs) == 0 {
		return nil
	}
	first := group.Outputs[0]
	if _, err := s.buf.Write(group.TxID[:]); err != nil {
		return err
	}
	if err := WriteVarInt(&s.buf, uint64(first.Coin.PackedHeight())); err != nil {
		return err
	}
	for _, ic := range group.Outputs {
		if err := WriteVarInt(&s.buf, uint64(ic.N)+1); err != nil {
			return err
		}
		if _, err := s.buf.Write(ic.Coin.Out.ScriptPubKey); err != nil {
			return err
		}
		if err := WriteVarIntSignedNonneg(&s.buf, ic.Coin.Out.Value); err != nil {
			return err
		}
	}
	return WriteVarInt(&s.buf, 0)
}

func (s *serializedHashSink) Finalize(stats *CoinStats) error {
	first := sha256Sum(s.buf.Bytes())
	stats.HashSerialized = sha256Sum(first[:])
	return nil
}

// muHashSink accumulates an order-independent multiset hash.
type muHashSink struct {
	mh *muhash.MuHash3072
}

func (*muHashSink) Prepare(*CoinStats) error { return nil }

func (m *muHashSink) Update(group TxOutputGroup) error {
	for _, ic := range group.Outputs {
		out := OutPoint{TxID: group.TxID, N: ic.N}
		data, err := muhashInsertBytes(out, ic.Coin)
		if err != nil {
			return err
		}
		m.mh.Insert(data)
	}
	return nil
}

func (m *muHashSink) Finalize(stats *CoinStats) error {
	stats.HashSerialized = m.mh.Finalize()
	return nil
}
