package coinstats

import (
	"errors"
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

type fakeEntry struct {
	key   OutPoint
	value Coin
}

type fakeCursor struct {
	entries  []fakeEntry
	pos      int
	best     ids.ID
	size     uint64
	decodeAt int
}

func (f *fakeCursor) Valid() bool { return f.pos < len(f.entries) }

func (f *fakeCursor) Key() (OutPoint, error) {
	if f.decodeAt == f.pos {
		return OutPoint{}, errors.New("boom")
	}
	return f.entries[f.pos].key, nil
}

func (f *fakeCursor) Value() (Coin, error) {
	return f.entries[f.pos].value, nil
}

func (f *fakeCursor) Next() { f.pos++ }

func (f *fakeCursor) EstimateSize() uint64 { return f.size }

func (f *fakeCursor) BestBlock() ids.ID { return f.best }

type fakeBlockIndex struct {
	height uint32
	hash   ids.ID
}

func (b fakeBlockIndex) Height() uint32 { return b.height }
func (b fakeBlockIndex) Hash() ids.ID   { return b.hash }

type fakeBlockManager struct {
	index map[ids.ID]BlockIndex
}

func (m fakeBlockManager) LookupBlockIndex(hash ids.ID) (BlockIndex, bool) {
	bi, ok := m.index[hash]
	return bi, ok
}

func buildCursor() (*fakeCursor, ids.ID) {
	best := txidFromByte(0xff)
	entries := []fakeEntry{
		{key: OutPoint{TxID: txidFromByte(1), N: 0}, value: Coin{Out: TxOut{Value: 100, ScriptPubKey: []byte{0x51}}, Height: 5}},
		{key: OutPoint{TxID: txidFromByte(1), N: 1}, value: Coin{Out: TxOut{Value: 200, ScriptPubKey: []byte{0x51, 0x51}}, Height: 5}},
		{key: OutPoint{TxID: txidFromByte(2), N: 0}, value: Coin{Out: TxOut{Value: 300, ScriptPubKey: nil}, Height: 6, IsCoinbase: true}},
	}
	return &fakeCursor{entries: entries, best: best, size: 4096, decodeAt: -1}, best
}

func TestGetUTXOStatsAggregates(t *testing.T) {
	cursor, best := buildCursor()
	bm := fakeBlockManager{index: map[ids.ID]BlockIndex{best: fakeBlockIndex{height: 42, hash: best}}}

	stats := &CoinStats{HashType: HashTypeSerialized}
	err := GetUTXOStats(cursor, bm, stats, nil, nil, nil)
	require.NoError(t, err)

	require.Equal(t, uint64(3), stats.CoinsCount)
	require.Equal(t, stats.CoinsCount, stats.NTransactionOutputs)
	require.Equal(t, uint64(2), stats.NTransactions)
	require.LessOrEqual(t, stats.NTransactions, stats.NTransactionOutputs)
	require.Equal(t, int64(600), stats.TotalAmount)
	require.Equal(t, BogoSize([]byte{0x51})+BogoSize([]byte{0x51, 0x51})+BogoSize(nil), stats.NBogoSize)
	require.Equal(t, uint32(42), stats.Height)
	require.Equal(t, uint64(4096), stats.DiskSize)
	require.NotEqual(t, [32]byte{}, stats.HashSerialized)
}

func TestGetUTXOStatsMissingBestBlock(t *testing.T) {
	cursor, _ := buildCursor()
	bm := fakeBlockManager{index: map[ids.ID]BlockIndex{}}

	stats := &CoinStats{HashType: HashTypeNone}
	err := GetUTXOStats(cursor, bm, stats, nil, nil, nil)
	require.ErrorIs(t, err, ErrMissingBestBlock)
}

func TestGetUTXOStatsCancellation(t *testing.T) {
	cursor, best := buildCursor()
	bm := fakeBlockManager{index: map[ids.ID]BlockIndex{best: fakeBlockIndex{height: 1, hash: best}}}

	calls := 0
	interrupt := func() error {
		calls++
		if calls == 2 {
			return errors.New("cancelled")
		}
		return nil
	}

	stats := &CoinStats{HashType: HashTypeNone}
	err := GetUTXOStats(cursor, bm, stats, interrupt, nil, nil)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestGetUTXOStatsCursorDecodeError(t *testing.T) {
	cursor, best := buildCursor()
	cursor.decodeAt = 1
	bm := fakeBlockManager{index: map[ids.ID]BlockIndex{best: fakeBlockIndex{height: 1, hash: best}}}

	stats := &CoinStats{HashType: HashTypeNone}
	err := GetUTXOStats(cursor, bm, stats, nil, nil, nil)
	require.ErrorIs(t, err, ErrCursorDecode)
}

type fakeStatsIndex struct {
	ok    bool
	stats CoinStats
}

func (f fakeStatsIndex) Lookup(pindex BlockIndex, stats *CoinStats) bool {
	if !f.ok {
		return false
	}
	*stats = f.stats
	return true
}

func TestGetUTXOStatsIndexShortCircuit(t *testing.T) {
	cursor, best := buildCursor()
	bm := fakeBlockManager{index: map[ids.ID]BlockIndex{best: fakeBlockIndex{height: 7, hash: best}}}
	index := fakeStatsIndex{ok: true, stats: CoinStats{CoinsCount: 999}}

	stats := &CoinStats{HashType: HashTypeMuHash, IndexRequested: true}
	err := GetUTXOStats(cursor, bm, stats, nil, nil, index)
	require.NoError(t, err)
	require.True(t, stats.IndexUsed)
	require.Equal(t, uint64(999), stats.CoinsCount)
}
