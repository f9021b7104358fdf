package avalanche

import (
	"time"

	"github.com/luxfi/coreavalanche/utils/linked"
	"github.com/luxfi/ids"
)

// PollRound is one outstanding poll: the node it was sent to, the ordered
// list of block hashes it asked about, and when it was issued.
type PollRound struct {
	RoundID  uint64
	NodeID   ids.NodeID
	Invs     []ids.ID
	IssuedAt time.Time
}

// PollRegistry tracks in-flight PollRounds keyed by node, oldest-issued
// first. Because the invariant "each node has at most one outstanding round
// at a time" holds for the whole lifetime of a round, keying by node id
// alone (and matching the round id on lookup) is equivalent to keying by
// the (node_id, round_id) pair and avoids a second index. Insertion order
// is preserved so OldestOutstanding can report the longest-waiting round
// for stall logging, the way the teacher's poll set reports its oldest
// entry.
type PollRegistry struct {
	byNode *linked.Hashmap[ids.NodeID, *PollRound]
}

// NewPollRegistry returns an empty PollRegistry.
func NewPollRegistry() *PollRegistry {
	return &PollRegistry{byNode: linked.NewHashmap[ids.NodeID, *PollRound]()}
}

// Insert records a newly issued round. It overwrites any previous round for
// the same node; callers must have already checked HasOutstanding.
func (r *PollRegistry) Insert(round *PollRound) {
	r.byNode.Put(round.NodeID, round)
}

// Lookup returns the outstanding round for (nodeID, roundID), or false if
// the node has no outstanding round or its round id doesn't match.
func (r *PollRegistry) Lookup(nodeID ids.NodeID, roundID uint64) (*PollRound, bool) {
	round, ok := r.byNode.Get(nodeID)
	if !ok || round.RoundID != roundID {
		return nil, false
	}
	return round, true
}

// Remove retires the outstanding round for nodeID, if any.
func (r *PollRegistry) Remove(nodeID ids.NodeID) {
	r.byNode.Delete(nodeID)
}

// OldestOutstanding returns the longest-waiting outstanding round, or false
// if the registry is empty. Callers use this to log or alert on a round
// that has been outstanding unexpectedly long.
func (r *PollRegistry) OldestOutstanding() (*PollRound, bool) {
	_, round, ok := r.byNode.OldestEntry()
	return round, ok
}

// Abandon retires nodeID's outstanding round because the peer disconnected
// rather than because its response arrived. There is no response to
// process, so unlike RegisterVotes this never produces StatusUpdates; any
// response that later arrives for the abandoned round is rejected as
// unknown, same as for a round that simply never existed. A production
// deployment would also want a timeout path that calls this after a round
// has been outstanding too long; this engine has none.
func (r *PollRegistry) Abandon(nodeID ids.NodeID) {
	r.Remove(nodeID)
}

// HasOutstanding reports whether nodeID currently has an outstanding round.
func (r *PollRegistry) HasOutstanding(nodeID ids.NodeID) bool {
	_, ok := r.byNode.Get(nodeID)
	return ok
}

// Len returns the number of outstanding rounds, for tests and metrics.
func (r *PollRegistry) Len() int {
	return r.byNode.Len()
}
