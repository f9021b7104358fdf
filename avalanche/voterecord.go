package avalanche

import "math/bits"

// VoteRecord is a per-block confidence finite-state machine driven by
// register_vote (§4.4). It tracks an 8-bit sliding window of the last eight
// vote outcomes (newest in bit 0), the current accepted flag, and a
// confidence counter that climbs while consecutive windows agree.
//
// A freshly constructed record starts unaccepted with zero confidence and
// a balanced window (see below). Every vote folds into the window and is
// read against the same two strict thresholds regardless of direction:
// confidence resets to zero on a flip and otherwise climbs by one per vote
// while the window keeps agreeing with the current accepted flag, capped
// at finalizationScore. For a uniform YES run against a fresh record this
// matches invariant 5's formula: after k votes, confidence equals
// min(k-flipCost, finalizationScore) with flipCost 6.
//
// A brand-new record's window starts balanced (0xaa, alternating bits,
// popcount 4), which reads as neither a yes nor a no majority. A uniform YES
// run against a fresh record stays inconclusive (confidence pinned at zero)
// for five votes and flips to accepted on the sixth. A uniform NO run
// against a fresh record needs no flip and crosses the NO threshold sooner,
// on its fifth vote, because the window's top bit is set and is the first
// to shift out. A run against a window saturated the other way (0xff or
// 0x00) flips on its seventh vote.
type VoteRecord struct {
	window            uint8
	accepted          bool
	confidence        int32
	finalizationScore int32
}

// NewVoteRecord returns a VoteRecord that finalizes once its confidence
// reaches finalizationScore.
func NewVoteRecord(finalizationScore int32) *VoteRecord {
	return &VoteRecord{window: 0xaa, finalizationScore: finalizationScore}
}

// outcome of a window reading.
type outcome int

const (
	outcomeInconclusive outcome = iota
	outcomeYes
	outcomeNo
)

func thresholdOutcome(yesBits int) outcome {
	switch {
	case yesBits > 6:
		return outcomeYes
	case yesBits < 2:
		return outcomeNo
	default:
		return outcomeInconclusive
	}
}

// RegisterVote folds one more vote into the sliding window and updates
// accepted/confidence per §4.4's six-step algorithm.
func (v *VoteRecord) RegisterVote(yes bool) {
	v.window <<= 1
	if yes {
		v.window |= 1
	}

	yesBits := bits.OnesCount8(v.window)
	outcome := thresholdOutcome(yesBits)
	if outcome == outcomeInconclusive {
		return
	}
	outcomeAccepted := outcome == outcomeYes

	if outcomeAccepted != v.accepted {
		v.accepted = outcomeAccepted
		v.confidence = 0
		return
	}
	if v.confidence < v.finalizationScore {
		v.confidence++
	}
}

// IsAccepted reports the record's current accepted flag.
func (v *VoteRecord) IsAccepted() bool { return v.accepted }

// HasFinalized reports whether confidence has reached the finalization
// score.
func (v *VoteRecord) HasFinalized() bool { return v.confidence >= v.finalizationScore }

// Confidence returns the current confidence counter.
func (v *VoteRecord) Confidence() int32 { return v.confidence }
