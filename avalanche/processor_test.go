package avalanche

import (
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

type fakeBlockRef struct {
	id   ids.ID
	work int64
}

func (f *fakeBlockRef) ID() ids.ID { return f.id }

func (f *fakeBlockRef) CompareWork(other BlockRef) int {
	o := other.(*fakeBlockRef)
	switch {
	case f.work > o.work:
		return 1
	case f.work < o.work:
		return -1
	default:
		return 0
	}
}

type fakePeerRegistry struct {
	nodes map[ids.NodeID]bool
}

func newFakePeerRegistry() *fakePeerRegistry {
	return &fakePeerRegistry{nodes: make(map[ids.NodeID]bool)}
}

func (f *fakePeerRegistry) add(nodeID ids.NodeID, capable bool) {
	f.nodes[nodeID] = capable
}

func (f *fakePeerRegistry) ForEachNode(fn func(nodeID ids.NodeID, avalancheCapable bool)) {
	for nodeID, capable := range f.nodes {
		fn(nodeID, capable)
	}
}

type sentPoll struct {
	nodeID  ids.NodeID
	invs    []Inv
	roundID uint64
}

type fakeNetworkLayer struct {
	sent []sentPoll
}

func (f *fakeNetworkLayer) SendPoll(nodeID ids.NodeID, invs []Inv, roundID uint64) {
	f.sent = append(f.sent, sentPoll{nodeID: nodeID, invs: append([]Inv(nil), invs...), roundID: roundID})
}

func testConfig() Config {
	return Config{FinalizationScore: 4, PollInterval: time.Millisecond}
}

// S2: a single tracked block accumulates six YES votes to acceptance and
// four further YES votes to finalization.
func TestProcessorSingleBlockAcceptThenFinalize(t *testing.T) {
	require := require.New(t)

	network := &fakeNetworkLayer{}
	peers := newFakePeerRegistry()
	nodeID := ids.GenerateTestNodeID()
	peers.add(nodeID, true)

	p := NewProcessor(testConfig(), nil, nil, peers, network)
	block := &fakeBlockRef{id: ids.ID{0x01}}
	require.True(p.AddBlockToReconcile(block))
	require.False(p.AddBlockToReconcile(block))

	var allUpdates []StatusUpdate
	for i := 0; i < 10; i++ {
		require.True(p.RunEventLoop())
		last := network.sent[len(network.sent)-1]
		ok, updates := p.RegisterVotes(last.nodeID, AvalancheResponse{
			RoundID: last.roundID,
			Votes:   []AvalancheVote{{ErrorCode: 0, BlockHash: block.id}},
		})
		require.True(ok)
		allUpdates = append(allUpdates, updates...)
	}

	require.Equal(StatusAccepted, allUpdates[0].Status)
	require.Equal(StatusFinalized, allUpdates[len(allUpdates)-1].Status)
	require.False(p.IsAccepted(block.id)) // dropped from tracking once finalized
}

// S3: a freshly tracked block's vote window starts balanced, so a run of
// NO votes never needs to flip the record away from its already-unaccepted
// default — it spends its first few votes inconclusive, then accrues
// confidence once the window crosses the NO threshold, finalizing the
// block as invalid once confidence reaches the finalization score.
func TestProcessorRejectThenInvalid(t *testing.T) {
	require := require.New(t)

	network := &fakeNetworkLayer{}
	peers := newFakePeerRegistry()
	nodeID := ids.GenerateTestNodeID()
	peers.add(nodeID, true)

	p := NewProcessor(testConfig(), nil, nil, peers, network)
	block := &fakeBlockRef{id: ids.ID{0x02}}
	p.AddBlockToReconcile(block)

	var allUpdates []StatusUpdate
	for i := 0; i < 10; i++ {
		if !p.RunEventLoop() {
			break
		}
		last := network.sent[len(network.sent)-1]
		_, updates := p.RegisterVotes(last.nodeID, AvalancheResponse{
			RoundID: last.roundID,
			Votes:   []AvalancheVote{{ErrorCode: 1, BlockHash: block.id}},
		})
		allUpdates = append(allUpdates, updates...)
	}

	require.NotEmpty(allUpdates)
	require.Equal(StatusInvalid, allUpdates[len(allUpdates)-1].Status)
}

// S4: two competing blocks are ordered in the poll inventory by descending
// accumulated work.
func TestProcessorMultiBlockOrderedByWork(t *testing.T) {
	require := require.New(t)

	network := &fakeNetworkLayer{}
	peers := newFakePeerRegistry()
	nodeID := ids.GenerateTestNodeID()
	peers.add(nodeID, true)

	p := NewProcessor(testConfig(), nil, nil, peers, network)
	blockA := &fakeBlockRef{id: ids.ID{0xA}, work: 10}
	blockB := &fakeBlockRef{id: ids.ID{0xB}, work: 20}
	p.AddBlockToReconcile(blockA)
	p.AddBlockToReconcile(blockB)

	invs := p.GetInvsForNextPoll()
	require.Len(invs, 2)
	require.Equal(blockB.id, invs[0].Hash)
	require.Equal(blockA.id, invs[1].Hash)

	require.True(p.RunEventLoop())
	last := network.sent[len(network.sent)-1]
	require.Equal(blockB.id, last.invs[0].Hash)
	require.Equal(blockA.id, last.invs[1].Hash)

	// A response that swaps the positional order is rejected outright.
	ok, updates := p.RegisterVotes(last.nodeID, AvalancheResponse{
		RoundID: last.roundID,
		Votes: []AvalancheVote{
			{ErrorCode: 0, BlockHash: blockA.id},
			{ErrorCode: 0, BlockHash: blockB.id},
		},
	})
	require.False(ok)
	require.Nil(updates)
}

// S5: poll issuance only ever targets an avalanche-capable peer with no
// outstanding round, and a malformed response leaves that peer unqueryable
// until its round is explicitly retired by a later valid response.
func TestProcessorPollLifecycle(t *testing.T) {
	require := require.New(t)

	network := &fakeNetworkLayer{}
	peers := newFakePeerRegistry()
	incapable := ids.GenerateTestNodeID()
	capable := ids.GenerateTestNodeID()
	peers.add(incapable, false)
	peers.add(capable, true)

	p := NewProcessor(testConfig(), nil, nil, peers, network)
	block := &fakeBlockRef{id: ids.ID{0x03}}
	p.AddBlockToReconcile(block)

	node, ok := p.GetSuitableNodeToQuery()
	require.True(ok)
	require.Equal(capable, node)

	require.True(p.RunEventLoop())
	require.Len(network.sent, 1)

	// The queried node now has an outstanding round and isn't suitable.
	_, ok = p.GetSuitableNodeToQuery()
	require.False(ok)
	require.False(p.RunEventLoop())

	last := network.sent[0]

	// A shape-mismatched response is rejected and the round stays open.
	ok, updates := p.RegisterVotes(capable, AvalancheResponse{
		RoundID: last.roundID,
		Votes:   []AvalancheVote{},
	})
	require.False(ok)
	require.Nil(updates)
	_, stillOutstanding := p.GetSuitableNodeToQuery()
	require.False(stillOutstanding)

	// A well-formed response retires the round and frees the peer.
	ok, _ = p.RegisterVotes(capable, AvalancheResponse{
		RoundID: last.roundID,
		Votes:   []AvalancheVote{{ErrorCode: 0, BlockHash: block.id}},
	})
	require.True(ok)
	_, freedAgain := p.GetSuitableNodeToQuery()
	require.True(freedAgain)
}

// S6: the event loop lifecycle is idempotent, and Close guarantees the
// scheduled callback is cancelled even without an explicit Stop.
func TestProcessorEventLoopLifecycle(t *testing.T) {
	require := require.New(t)

	network := &fakeNetworkLayer{}
	peers := newFakePeerRegistry()
	p := NewProcessor(testConfig(), nil, nil, peers, network)

	scheduler := NewTickerScheduler()
	require.True(p.StartEventLoop(scheduler))
	require.False(p.StartEventLoop(scheduler))
	require.Equal(1, scheduler.Outstanding())

	p.Close()
	require.Equal(0, scheduler.Outstanding())

	// Stop after Close is a no-op, reported as such.
	require.False(p.StopEventLoop())
}

// TestProcessorAbandonPollFreesNode checks that abandoning a node's
// outstanding round makes it queryable again, and that its original round's
// response is then rejected as unknown.
func TestProcessorAbandonPollFreesNode(t *testing.T) {
	require := require.New(t)

	network := &fakeNetworkLayer{}
	peers := newFakePeerRegistry()
	nodeID := ids.GenerateTestNodeID()
	peers.add(nodeID, true)

	p := NewProcessor(testConfig(), nil, nil, peers, network)
	block := &fakeBlockRef{id: ids.ID{0x09}}
	p.AddBlockToReconcile(block)

	require.True(p.RunEventLoop())
	last := network.sent[len(network.sent)-1]

	_, stillBusy := p.GetSuitableNodeToQuery()
	require.False(stillBusy)

	p.AbandonPoll(nodeID)

	freed, ok := p.GetSuitableNodeToQuery()
	require.True(ok)
	require.Equal(nodeID, freed)

	ok, updates := p.RegisterVotes(nodeID, AvalancheResponse{
		RoundID: last.roundID,
		Votes:   []AvalancheVote{{ErrorCode: 0, BlockHash: block.id}},
	})
	require.False(ok)
	require.Nil(updates)
}
