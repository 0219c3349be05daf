package port_persistence

import "context"

// IdempotencyRepository is the durable key -> outcome mapping backing
// at-most-once execution of a transfer.
//
// BeginIfAbsent atomically inserts a record with a null result if and only if
// the key is not already present, and reports whether this call was the first.
// It must be a single conditional insert, not a check-then-insert race.
//
// Finalize sets the result for a key that must already exist with a null
// result; it returns ErrIdempotencyKeyMissing otherwise, which indicates the
// orchestrator's invariant was violated. SetErrorResult has the same contract
// but runs on the failure path, where no transfer record accompanies it.
//
// GetResult returns the stored result snapshot, a nil slice when the record
// exists but is still in flight, or ErrNotFound when the key is unknown.
type IdempotencyRepository interface {
	BeginIfAbsent(ctx context.Context, key string, request []byte) (bool, error)
	Finalize(ctx context.Context, key string, result []byte) error
	SetErrorResult(ctx context.Context, key string, result []byte) error
	GetResult(ctx context.Context, key string) ([]byte, error)
}
