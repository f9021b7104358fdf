package avalanche

import "errors"

// These are logged as context on the relevant Processor methods' debug-level
// log lines, not returned as Go errors: the methods themselves mirror the
// bool-returning signatures of the reference engine's RegisterVotes /
// registerVotes-style API.
var (
	// ErrUnknownRound is logged by RegisterVotes when the response's round
	// id has no pending PollRound for the calling node.
	ErrUnknownRound = errors.New("avalanche: unknown poll round")
	// ErrRoundShapeMismatch is logged when a response's vote count or
	// positional block-hash alignment differs from the round it answers.
	ErrRoundShapeMismatch = errors.New("avalanche: response shape does not match poll round")
	// ErrUnknownNode is logged by AbandonPoll when called for a node with
	// no outstanding poll round to abandon.
	ErrUnknownNode = errors.New("avalanche: node has no outstanding poll round")
	// ErrDuplicateRegistration is logged by AddBlockToReconcile for a
	// block that is already tracked.
	ErrDuplicateRegistration = errors.New("avalanche: block already tracked")
	// ErrDuplicateLifecycle is logged by StartEventLoop/StopEventLoop when
	// the event loop is already in the requested state.
	ErrDuplicateLifecycle = errors.New("avalanche: event loop already in requested state")
)
