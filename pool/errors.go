package pool

import "errors"

// Construction-time misuse. Callers are expected to pass a valid, positive,
// even byte count; anything else is a programming error, not a runtime
// condition to recover from.
var (
	ErrSizeMustBePositive = errors.New("pool: size must be greater than zero")
	ErrSizeMustBeEven     = errors.New("pool: size must be even")
)

// Integrity violation tags, surfaced only by IntegrityCheck. Each names one
// of the invariants in section 3 of the design; wrap with fmt.Errorf to add
// the offending offset before returning it.
var (
	ErrChunkTooSmall   = errors.New("pool: chunk smaller than minimum free chunk size")
	ErrBadBacklinks    = errors.New("pool: free chunk backlinks do not close")
	ErrBadFooter       = errors.New("pool: free chunk footer does not match its header size")
	ErrMissingInBin    = errors.New("pool: free chunk not found in its declared bin")
	ErrWrongBlockCount = errors.New("pool: used/free block counters do not match a full walk")
	ErrWrongMemTotals  = errors.New("pool: used/free byte totals do not match a full walk")
	ErrBadTiling       = errors.New("pool: chunk sizes do not sum to the pool size")
)
