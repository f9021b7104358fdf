package avalanche

import (
	"github.com/luxfi/coreavalanche/utils/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the processor's prometheus instrumentation. A nil *Metrics
// is valid and every method is a no-op, so callers that don't care about
// observability can pass nil to NewProcessor.
type Metrics struct {
	pollsOutstanding metric.Gauge
	votesRegistered  metric.Counter
	pollDuration     metric.Averager
}

// NewMetrics registers the processor's gauges/counters/averager under
// namespace with reg. reg is typically a *prometheus.Registry owned by the
// embedding application.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	pollsOutstanding, err := metric.NewGaugeMetric(namespace, "polls_outstanding", "Number of poll rounds currently awaiting a response.", reg)
	if err != nil {
		return nil, err
	}
	votesRegistered, err := metric.NewCounterMetric(namespace, "votes_registered", "Number of individual block votes applied to VoteRecords.", reg)
	if err != nil {
		return nil, err
	}
	pollDuration, err := metric.NewAveragerMetric(namespace, "poll_round_trip_seconds", "Average seconds between issuing a poll and registering its response.", reg)
	if err != nil {
		return nil, err
	}
	return &Metrics{
		pollsOutstanding: pollsOutstanding,
		votesRegistered:  votesRegistered,
		pollDuration:     pollDuration,
	}, nil
}

func (m *Metrics) observePollIssued() {
	if m == nil {
		return
	}
	m.pollsOutstanding.Add(1)
}

func (m *Metrics) observePollRetired(roundTripSeconds float64) {
	if m == nil {
		return
	}
	m.pollsOutstanding.Add(-1)
	m.pollDuration.Observe(roundTripSeconds)
}

func (m *Metrics) observeVotesRegistered(n int) {
	if m == nil {
		return
	}
	m.votesRegistered.Add(int64(n))
}
