package handle

import "errors"

// ErrSizeMustBePositive is the value Alloc panics with when asked for a
// zero-byte allocation; the pool layer already refuses those, this just names the
// misuse at the layer the caller is talking to.
var ErrSizeMustBePositive = errors.New("handle: requested size must be greater than zero")

// InvalidHandle is returned by Alloc on exhaustion. It is also the
// reference count stored in a slot whose handle has been released, so
// RefcountOf reports it for a freed handle.
const InvalidHandle = ^uint32(0)
