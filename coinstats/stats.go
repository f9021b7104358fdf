package coinstats

import "github.com/luxfi/ids"

// GetUTXOStats scans view and fills stats with aggregate statistics and,
// depending on stats.HashType, a commitment digest. pindex may be nil, in
// which case the cursor's best block is resolved via blockManager. interrupt
// is polled between cursor items for cooperative cancellation; a non-nil
// return aborts the scan with ErrCancelled.
//
// Algorithm follows §4.3: acquire the cursor's position, optionally
// delegate to a precomputed CoinStatsIndex, otherwise stream the cursor
// grouping outputs by txid and flushing each group to the aggregator and
// hash sink in turn.
func GetUTXOStats(
	view CoinCursor,
	blockManager BlockManager,
	stats *CoinStats,
	interrupt func() error,
	pindex BlockIndex,
	index CoinStatsIndex,
) error {
	if pindex == nil {
		best := view.BestBlock()
		found, ok := blockManager.LookupBlockIndex(best)
		if !ok {
			return &StatsError{Err: ErrMissingBestBlock}
		}
		pindex = found
	}
	stats.Height = pindex.Height()
	stats.BlockHash = pindex.Hash()

	if (stats.HashType == HashTypeMuHash || stats.HashType == HashTypeNone) &&
		stats.IndexRequested && index != nil {
		if index.Lookup(pindex, stats) {
			stats.IndexUsed = true
			return nil
		}
	}

	sink := NewHashSink(stats.HashType)
	if err := sink.Prepare(stats); err != nil {
		return err
	}

	aggregator := NewStatsAggregator(stats, sink)

	var prevTxID ids.ID
	var havePrev bool
	var buffer []IndexedCoin

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}
		err := aggregator.Flush(TxOutputGroup{TxID: prevTxID, Outputs: buffer})
		buffer = nil
		return err
	}

	for view.Valid() {
		if interrupt != nil {
			if err := interrupt(); err != nil {
				return &StatsError{Err: ErrCancelled}
			}
		}

		key, err := view.Key()
		if err != nil {
			return &StatsError{Err: ErrCursorDecode}
		}
		coin, err := view.Value()
		if err != nil {
			return &StatsError{Err: ErrCursorDecode, OutPoint: &key}
		}

		if havePrev && key.TxID != prevTxID && len(buffer) > 0 {
			if err := flush(); err != nil {
				return err
			}
		}
		prevTxID = key.TxID
		havePrev = true

		buffer = append(buffer, IndexedCoin{N: key.N, Coin: coin})
		stats.CoinsCount++

		view.Next()
	}

	if err := flush(); err != nil {
		return err
	}

	if err := sink.Finalize(stats); err != nil {
		return err
	}
	stats.DiskSize = view.EstimateSize()
	return nil
}
