// Package avalanche implements a pre-consensus voting engine that polls
// peers about candidate blocks, accumulates their responses into per-block
// confidence records, and emits status transitions as blocks are accepted,
// rejected, or finalized.
package avalanche

import "github.com/luxfi/ids"

// InvType names the kind of object an Inv descriptor refers to. Core B only
// ever produces the block variant, but the type is kept distinct from a
// bare hash since it mirrors the wire inventory descriptor it rides on.
type InvType uint8

// MsgBlock is the only InvType this engine produces.
const MsgBlock InvType = 2

// Inv is an inventory descriptor exchanged with peers during polling.
type Inv struct {
	Type InvType
	Hash ids.ID
}

// AvalancheVote is one peer's answer about a single block. ErrorCode zero
// means "yes, I have this block accepted"; any non-zero value encodes
// rejection or unknown status and is treated as a no vote.
type AvalancheVote struct {
	ErrorCode uint32
	BlockHash ids.ID
}

// IsYes reports whether the vote counts as an affirmative vote.
func (v AvalancheVote) IsYes() bool { return v.ErrorCode == 0 }

// AvalancheResponse is a peer's reply to a poll. Votes must align
// positionally with the PollRound's Invs.
type AvalancheResponse struct {
	RoundID uint64
	Votes   []AvalancheVote
}

// BlockStatus is the externally visible lifecycle state of a tracked block.
type BlockStatus int

const (
	// StatusAccepted is emitted when a block's VoteRecord first flips to
	// accepted without also finalizing in the same call.
	StatusAccepted BlockStatus = iota
	// StatusRejected is emitted when a block's VoteRecord first flips to
	// rejected without also finalizing in the same call.
	StatusRejected
	// StatusFinalized is emitted when an accepted VoteRecord's confidence
	// reaches the finalization score.
	StatusFinalized
	// StatusInvalid is emitted when a rejected VoteRecord's confidence
	// reaches the finalization score.
	StatusInvalid
)

func (s BlockStatus) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusFinalized:
		return "finalized"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// StatusUpdate is one emitted transition for a tracked block.
type StatusUpdate struct {
	BlockHash ids.ID
	Status    BlockStatus
}

// BlockRef is the processor's view of a candidate block: a stable identity
// plus whatever is needed to order candidates by accumulated proof-of-work
// when building the next poll's inventory list.
type BlockRef interface {
	ID() ids.ID
	// CompareWork returns >0 if this block has strictly more accumulated
	// work than other, <0 if less, 0 if equal.
	CompareWork(other BlockRef) int
}
