package reconciliation

import "errors"

// The closed set of failure kinds this engine surfaces. Callers match with
// errors.Is; wrapped messages carry the offending id or constraint.
var (
	// ErrNotFound: a referenced transaction, title, or reconciliation does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrOwnershipMismatch: a referenced record belongs to a different
	// company than the acting caller.
	ErrOwnershipMismatch = errors.New("record belongs to another company")

	// ErrAlreadyReconciled: the transaction or title is already linked to a
	// reconciliation. Raised by the pre-check or by the storage uniqueness
	// constraint, whichever fires first.
	ErrAlreadyReconciled = errors.New("already reconciled")

	// ErrIncompatibleKind: the transaction and title directions cannot form
	// a valid pairing.
	ErrIncompatibleKind = errors.New("incompatible transaction and title kinds")

	// ErrStoreUnavailable: the underlying store failed or timed out. The
	// only retryable kind.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidInput: malformed arguments.
	ErrInvalidInput = errors.New("invalid input")
)
