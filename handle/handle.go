// Package handle layers a reference-counted, compacting handle table on
// top of a pool.Pool. Handles are stable opaque indices; the interior
// pointer behind one may move on every call to Compact, so callers must
// re-fetch it via PointerOf after any call that could trigger compaction
// rather than caching it across one.
package handle

import (
	"encoding/binary"

	"github.com/ChrisLomont/TinyGarbageCollector/pool"
)

const initialSlots = 100

// refHolder tracks one handle table slot. A slot with requestedSize == 0
// is free and reusable.
type refHolder struct {
	refcount      uint32
	requestedSize uint32
	ptr           []byte
}

// Heap wraps a pool.Pool with a handle table and a compactor. Not safe
// for concurrent use — see pool.Pool's doc comment; the same constraint
// applies here and for the same reason.
type Heap struct {
	pool *pool.Pool
	refs []refHolder

	collections, swaps, bytesMoved uint32
}

// NewHeap creates a Heap managing n bytes, with room for 100 live handles
// before the table needs to grow.
func NewHeap(n uint32) *Heap {
	return &Heap{
		pool: pool.New(n),
		refs: make([]refHolder, initialSlots),
	}
}

// Pool returns the underlying allocator, for callers that need raw
// counters or IntegrityCheck.
func (h *Heap) Pool() *pool.Pool { return h.pool }

func (h *Heap) Collections() uint32 { return h.collections }
func (h *Heap) Swaps() uint32       { return h.swaps }
func (h *Heap) BytesMoved() uint32  { return h.bytesMoved }

func (h *Heap) findFreeSlot() int {
	for i := range h.refs {
		if h.refs[i].requestedSize == 0 {
			return i
		}
	}
	return -1
}

// Alloc reserves requestedBytes and returns a handle with an initial
// reference count of 1, or InvalidHandle if the pool has no room.
//
// requestedBytes must be nonzero: a slot's requestedSize == 0 is what
// marks it free, so a zero-byte live handle would be indistinguishable
// from an empty slot.
func (h *Heap) Alloc(requestedBytes uint32) uint32 {
	if requestedBytes == 0 {
		panic(ErrSizeMustBePositive)
	}
	ptr := h.pool.Allocate(requestedBytes)
	if ptr == nil {
		return InvalidHandle
	}

	idx := h.findFreeSlot()
	if idx < 0 {
		h.refs = append(h.refs, refHolder{})
		idx = len(h.refs) - 1
	}
	h.refs[idx] = refHolder{refcount: 1, requestedSize: requestedBytes, ptr: ptr}
	return uint32(idx)
}

// Free releases h's backing memory unconditionally, ignoring its current
// reference count. Freeing an already-free or never-issued handle is
// undefined behavior; this implementation does not defend against it
// beyond the nil-pointer check pool.Free already performs.
func (h *Heap) Free(handle uint32) {
	r := &h.refs[handle]
	h.pool.Free(r.ptr)
	*r = refHolder{refcount: InvalidHandle}
}

// Incref increments h's reference count. Overflow behavior on a 32-bit
// wraparound is left to the caller to avoid; it is not checked here.
func (h *Heap) Incref(handle uint32) {
	h.refs[handle].refcount++
}

// Decref decrements h's reference count, releasing the backing memory and
// invalidating the handle once it reaches zero. Returns whether the
// handle is still alive.
func (h *Heap) Decref(handle uint32) bool {
	r := &h.refs[handle]
	if r.refcount > 1 {
		r.refcount--
		return true
	}
	h.pool.Free(r.ptr)
	*r = refHolder{refcount: InvalidHandle}
	return false
}

// SizeOf returns the number of bytes originally requested for handle,
// distinct from the (possibly larger, rounded) chunk backing it.
func (h *Heap) SizeOf(handle uint32) uint32 { return h.refs[handle].requestedSize }

// PointerOf returns handle's current interior pointer. It is only valid
// until the next call to Compact.
func (h *Heap) PointerOf(handle uint32) []byte { return h.refs[handle].ptr }

// RefcountOf returns handle's current reference count.
func (h *Heap) RefcountOf(handle uint32) uint32 { return h.refs[handle].refcount }

// Compact slides every live allocation to the low end of the pool,
// coalescing all free bytes into a single trailing chunk, without
// changing any handle's value, size, or reference count — only its
// interior pointer, which every surviving handle must re-fetch via
// PointerOf afterward.
//
// There is no reverse map from chunk to handle, so Compact builds one in
// place: it borrows the first word of every live chunk's payload to carry
// that chunk's owning handle index through the pool's slide, then reads
// it back out once every chunk has settled to restore the client's data
// and rewire refs[handle].ptr to the new location.
func (h *Heap) Compact() {
	backing := make([]uint32, len(h.refs))
	for i := range h.refs {
		r := &h.refs[i]
		if r.ptr == nil {
			continue
		}
		backing[i] = binary.LittleEndian.Uint32(r.ptr[:4])
		binary.LittleEndian.PutUint32(r.ptr[:4], uint32(i))
	}

	bytesMoved, swaps := h.pool.Compact(func(payload []byte) {
		idx := binary.LittleEndian.Uint32(payload[:4])
		binary.LittleEndian.PutUint32(payload[:4], backing[idx])
		h.refs[idx].ptr = payload
	})

	h.collections++
	h.swaps += swaps
	h.bytesMoved += bytesMoved
}
