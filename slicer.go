// Package slicer defines capabilities for types that can be seen as a flat,
// contiguous run of elements of one fixed type.
//
// The capabilities carry no size parameter, so generic code can accept owned
// arrays, slices, or references to either, and always reduce them to a flat
// view for low-level work such as transfers, parsing and hashing.
// A bound like
//
//	B interface { slicer.MutSlicer[byte]; dma.Stable }
//
// accepts any byte buffer that is writable and whose memory does not move,
// which is what a DMA transfer needs.
package slicer

// Slicer is implemented by anything that can be seen as an immutable flat view.
//
// AsSlice never fails, never copies element data, and the returned view
// shares storage with the receiver.
type Slicer[E any] interface {
	AsSlice() View[E]
}

// MutSlicer is implemented by anything that can be seen as a mutable flat view.
//
// AsMutSlice returns the same elements AsSlice would return for the receiver
// in its current state. Writes through the returned slice are visible to
// later AsSlice calls.
//
// Only one mutable slice should be in use at a time, and never alongside a
// view; see [Exclusive] for a runtime-checked guard.
type MutSlicer[E any] interface {
	Slicer[E]
	AsMutSlice() []E
}
