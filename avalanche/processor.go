package avalanche

import (
	"sort"
	"sync"
	"time"

	corelog "github.com/luxfi/coreavalanche/log"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

// Config bundles the tunables the six-step voting algorithm needs (§4.4,
// §6). FinalizationScore and PollInterval mirror the constructor
// parameters of the reference engine. Each poll round targets a single
// peer, and a peer has at most one outstanding round at a time.
type Config struct {
	FinalizationScore int32
	PollInterval      time.Duration
}

type trackedBlock struct {
	ref    BlockRef
	record *VoteRecord
}

// Processor is the avalanche pre-consensus voting engine (§4-§6): it tracks
// candidate blocks, issues polls to peers, folds their responses into each
// block's VoteRecord, and reports accept/reject/finalize transitions.
//
// Every field from mu down sits behind mu; the collaborators above it are
// set once by NewProcessor. Poll issuance in RunEventLoop snapshots
// what it needs, releases mu, and only then calls out to the network, so a
// slow or blocked peer can never stall a concurrent RegisterVotes or
// AddBlockToReconcile call.
type Processor struct {
	cfg     Config
	log     log.Logger
	metrics *Metrics
	peers   PeerRegistry
	network NetworkLayer

	mu        sync.Mutex
	blocks    map[ids.ID]*trackedBlock
	polls     *PollRegistry
	nextRound uint64
	running   bool
	handle    ScheduleHandle
	scheduler Scheduler
}

// NewProcessor constructs a Processor. metrics may be nil.
func NewProcessor(cfg Config, logger log.Logger, metrics *Metrics, peers PeerRegistry, network NetworkLayer) *Processor {
	if logger == nil {
		logger = corelog.NewNoOpLogger()
	}
	return &Processor{
		cfg:     cfg,
		log:     logger,
		metrics: metrics,
		peers:   peers,
		network: network,
		blocks:  make(map[ids.ID]*trackedBlock),
		polls:   NewPollRegistry(),
	}
}

// AddBlockToReconcile starts tracking ref for voting. It returns false if
// ref is already tracked.
func (p *Processor) AddBlockToReconcile(ref BlockRef) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := ref.ID()
	if _, ok := p.blocks[id]; ok {
		p.log.Debug("not tracking block", "err", ErrDuplicateRegistration, "blockHash", id)
		return false
	}
	p.blocks[id] = &trackedBlock{
		ref:    ref,
		record: NewVoteRecord(p.cfg.FinalizationScore),
	}
	p.log.Debug("tracking block for reconciliation", "blockHash", id)
	return true
}

// IsAccepted reports the tracked block's current accepted flag. A block
// that isn't tracked is reported as not accepted.
func (p *Processor) IsAccepted(blockHash ids.ID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.blocks[blockHash]
	return ok && b.record.IsAccepted()
}

// GetConfidence returns the tracked block's confidence counter, or zero if
// the block isn't tracked.
func (p *Processor) GetConfidence(blockHash ids.ID) int32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.blocks[blockHash]
	if !ok {
		return 0
	}
	return b.record.Confidence()
}

// AbandonPoll retires nodeID's outstanding round, if any, without treating
// it as a response. Callers wire this to peer disconnection so a dropped
// node's round doesn't stay outstanding forever and block it from ever
// being picked by GetSuitableNodeToQuery again once it reconnects.
func (p *Processor) AbandonPoll(nodeID ids.NodeID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.polls.HasOutstanding(nodeID) {
		p.log.Debug("nothing to abandon", "err", ErrUnknownNode, "nodeID", nodeID)
		return
	}
	p.polls.Abandon(nodeID)
}

// GetInvsForNextPoll returns the inventory list for the next poll: every
// still-unfinalized tracked block, ordered by descending accumulated work
// and then by hash as a deterministic tiebreak.
func (p *Processor) GetInvsForNextPoll() []Inv {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.invsForNextPollLocked()
}

func (p *Processor) invsForNextPollLocked() []Inv {
	refs := make([]BlockRef, 0, len(p.blocks))
	for _, b := range p.blocks {
		if b.record.HasFinalized() {
			continue
		}
		refs = append(refs, b.ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if c := refs[i].CompareWork(refs[j]); c != 0 {
			return c > 0
		}
		return idLess(refs[i].ID(), refs[j].ID())
	})
	invs := make([]Inv, len(refs))
	for i, ref := range refs {
		invs[i] = Inv{Type: MsgBlock, Hash: ref.ID()}
	}
	return invs
}

func idLess(a, b ids.ID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// GetSuitableNodeToQuery returns an avalanche-capable connected peer that
// has no outstanding poll round, or false if none is available.
func (p *Processor) GetSuitableNodeToQuery() (ids.NodeID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.suitableNodeLocked()
}

func (p *Processor) suitableNodeLocked() (ids.NodeID, bool) {
	var (
		found ids.NodeID
		ok    bool
	)
	p.peers.ForEachNode(func(nodeID ids.NodeID, avalancheCapable bool) {
		if ok || !avalancheCapable {
			return
		}
		if p.polls.HasOutstanding(nodeID) {
			return
		}
		found, ok = nodeID, true
	})
	return found, ok
}

// RegisterVotes folds a peer's poll response into its tracked blocks'
// VoteRecords (§4.5). It returns false, without mutating any state, if the
// response can't be attributed to an outstanding round issued to nodeID or
// doesn't positionally match that round's invs. On success it returns true
// along with the ordered status transitions the response produced; blocks
// that finalize are dropped from tracking.
func (p *Processor) RegisterVotes(nodeID ids.NodeID, response AvalancheResponse) (bool, []StatusUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	round, ok := p.polls.Lookup(nodeID, response.RoundID)
	if !ok {
		p.log.Debug("discarding votes", "err", ErrUnknownRound, "nodeID", nodeID, "roundID", response.RoundID)
		return false, nil
	}
	if len(response.Votes) != len(round.Invs) {
		p.log.Debug("discarding votes", "err", ErrRoundShapeMismatch, "nodeID", nodeID, "got", len(response.Votes), "want", len(round.Invs))
		return false, nil
	}
	for i, vote := range response.Votes {
		if vote.BlockHash != round.Invs[i] {
			p.log.Debug("discarding votes", "err", ErrRoundShapeMismatch, "nodeID", nodeID, "position", i)
			return false, nil
		}
	}

	p.polls.Remove(nodeID)
	p.metrics.observePollRetired(time.Since(round.IssuedAt).Seconds())
	p.metrics.observeVotesRegistered(len(response.Votes))

	var updates []StatusUpdate
	for _, vote := range response.Votes {
		b, tracked := p.blocks[vote.BlockHash]
		if !tracked {
			// The block may have finalized and been dropped between issuing
			// the poll and receiving this response; nothing left to update.
			continue
		}
		wasAccepted := b.record.IsAccepted()
		wasFinalized := b.record.HasFinalized()
		b.record.RegisterVote(vote.IsYes())
		nowAccepted := b.record.IsAccepted()
		nowFinalized := b.record.HasFinalized()

		switch {
		case nowFinalized && !wasFinalized:
			status := StatusFinalized
			if !nowAccepted {
				status = StatusInvalid
			}
			updates = append(updates, StatusUpdate{BlockHash: vote.BlockHash, Status: status})
			delete(p.blocks, vote.BlockHash)
		case nowAccepted != wasAccepted:
			status := StatusAccepted
			if !nowAccepted {
				status = StatusRejected
			}
			updates = append(updates, StatusUpdate{BlockHash: vote.BlockHash, Status: status})
		}
	}
	return true, updates
}

// RunEventLoop performs one iteration of the poll loop: pick a suitable
// peer, snapshot the current poll inventory, release the lock, and only
// then ask the network layer to send the poll. Returns false if no
// suitable peer or no candidate blocks were available this tick.
func (p *Processor) RunEventLoop() bool {
	p.mu.Lock()
	if oldest, ok := p.polls.OldestOutstanding(); ok {
		if age := time.Since(oldest.IssuedAt); age > 10*p.cfg.PollInterval {
			p.log.Debug("poll round outstanding unusually long", "nodeID", oldest.NodeID, "roundID", oldest.RoundID, "age", age)
		}
	}
	nodeID, ok := p.suitableNodeLocked()
	if !ok {
		p.mu.Unlock()
		return false
	}
	invs := p.invsForNextPollLocked()
	if len(invs) == 0 {
		p.mu.Unlock()
		return false
	}
	p.nextRound++
	roundID := p.nextRound
	hashes := make([]ids.ID, len(invs))
	for i, inv := range invs {
		hashes[i] = inv.Hash
	}
	p.polls.Insert(&PollRound{
		RoundID:  roundID,
		NodeID:   nodeID,
		Invs:     hashes,
		IssuedAt: time.Now(),
	})
	p.metrics.observePollIssued()
	p.mu.Unlock()

	p.network.SendPoll(nodeID, invs, roundID)
	return true
}

// StartEventLoop schedules RunEventLoop on scheduler at the processor's
// configured poll interval. It returns false if the event loop is already
// running.
func (p *Processor) StartEventLoop(scheduler Scheduler) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		p.log.Debug("event loop already running", "err", ErrDuplicateLifecycle)
		return false
	}
	p.scheduler = scheduler
	p.handle = scheduler.ScheduleEvery(p.cfg.PollInterval, func() { p.RunEventLoop() })
	p.running = true
	return true
}

// StopEventLoop cancels the scheduled poll loop. It returns false if the
// event loop was not running.
func (p *Processor) StopEventLoop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		p.log.Debug("event loop already stopped", "err", ErrDuplicateLifecycle)
		return false
	}
	p.scheduler.Cancel(p.handle)
	p.running = false
	p.scheduler = nil
	return true
}

// Close guarantees the scheduled poll loop is cancelled, independent of
// whether StopEventLoop was ever called explicitly.
func (p *Processor) Close() {
	p.mu.Lock()
	running, scheduler, handle := p.running, p.scheduler, p.handle
	p.running = false
	p.scheduler = nil
	p.mu.Unlock()

	if running {
		scheduler.Cancel(handle)
	}
}
