package coinstats

import "github.com/luxfi/ids"

// CoinCursor is a restartable, forward-only ordered iterator over the UTXO
// set, yielding (OutPoint, Coin) pairs sorted by (txid, output_index).
type CoinCursor interface {
	Valid() bool
	Key() (OutPoint, error)
	Value() (Coin, error)
	Next()
	EstimateSize() uint64
	BestBlock() ids.ID
}

// BlockIndex is the narrow view of a chain block the stats driver needs:
// its height and hash.
type BlockIndex interface {
	Height() uint32
	Hash() ids.ID
}

// BlockManager resolves a block hash to its BlockIndex.
type BlockManager interface {
	LookupBlockIndex(blockHash ids.ID) (BlockIndex, bool)
}

// CoinStatsIndex is an optional precomputed store keyed by block index that
// short-circuits the scan when the requested hash mode matches.
type CoinStatsIndex interface {
	Lookup(pindex BlockIndex, stats *CoinStats) bool
}
