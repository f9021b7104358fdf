package coinstats

// StatsAggregator consumes grouped outputs per transaction and updates the
// running CoinStats record, driving the HashSink in lockstep.
type StatsAggregator struct {
	stats *CoinStats
	sink  HashSink
}

// NewStatsAggregator binds an aggregator to the stats record it updates and
// the commitment sink it drives.
func NewStatsAggregator(stats *CoinStats, sink HashSink) *StatsAggregator {
	return &StatsAggregator{stats: stats, sink: sink}
}

// Flush applies one transaction's buffered outputs to the running stats and
// forwards the group to the hash sink. Outputs must already be sorted
// ascending by N.
func (a *StatsAggregator) Flush(group TxOutputGroup) error {
	a.stats.NTransactions++
	for _, ic := range group.Outputs {
		a.stats.NTransactionOutputs++
		a.stats.TotalAmount += ic.Coin.Out.Value
		a.stats.NBogoSize += BogoSize(ic.Coin.Out.ScriptPubKey)
	}
	return a.sink.Update(group)
}
