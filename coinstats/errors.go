package coinstats

import "errors"

var (
	// ErrCursorDecode indicates the cursor yielded a malformed value.
	ErrCursorDecode = errors.New("coinstats: cursor yielded a malformed value")
	// ErrCancelled indicates the interrupt hook signalled cancellation.
	ErrCancelled = errors.New("coinstats: scan cancelled")
	// ErrMissingBestBlock indicates the cursor's best block is not known to
	// the block manager.
	ErrMissingBestBlock = errors.New("coinstats: best block not found in block manager")
	// ErrNegativeValue indicates a negative value reached the
	// nonnegative-only varint encoder.
	ErrNegativeValue = errors.New("coinstats: negative value in nonnegative varint encoding")
)

// StatsError wraps one of the sentinel errors above with the OutPoint being
// processed when the failure occurred, when available.
type StatsError struct {
	Err      error
	OutPoint *OutPoint
}

func (e *StatsError) Error() string {
	if e.OutPoint == nil {
		return e.Err.Error()
	}
	return e.Err.Error() + ": outpoint " + e.OutPoint.TxID.String()
}

func (e *StatsError) Unwrap() error { return e.Err }
