package workflow

import "errors"

var (
	// ErrLedgerImmutable is returned by ledger model hooks on update or delete.
	ErrLedgerImmutable = errors.New("approval ledger rows are immutable")
	// ErrStale is returned when a guarded update matched no row because the
	// aggregate moved on since it was read.
	ErrStale = errors.New("aggregate changed concurrently")
)

// Actor is the authenticated caller as seen by the engine.
type Actor struct {
	UserID uint64 `json:"user_id"`
	Role   Role   `json:"role"`
}
