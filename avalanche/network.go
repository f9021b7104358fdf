package avalanche

import "github.com/luxfi/ids"

// NetworkLayer is the outbound messaging capability run_event_loop uses to
// actually dispatch a poll. SendPoll must be non-blocking or bounded: the
// processor calls it after releasing its internal lock.
type NetworkLayer interface {
	SendPoll(nodeID ids.NodeID, invs []Inv, roundID uint64)
}
