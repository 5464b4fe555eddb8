// Package dma hands buffers to a transfer engine that works on them while the
// program continues, the way a DMA controller does.
//
// A buffer qualifies when it has a flat view ([slicer.Slicer] or
// [slicer.MutSlicer]) and its memory neither moves nor gets freed while the
// engine holds it ([Stable]). Off-heap chunks from a [ChunkPool] and heap
// slices pinned with [Pin] are both stable.
package dma

import "github.com/holmberd/go-slicer"

// Stable marks a buffer whose backing memory does not move or get freed for
// as long as the buffer value is held.
type Stable interface {
	Stable()
}

// ReadBuffer is a stable buffer the engine reads from.
type ReadBuffer interface {
	slicer.Slicer[byte]
	Stable
}

// WriteBuffer is a stable buffer the engine writes into.
type WriteBuffer interface {
	slicer.MutSlicer[byte]
	Stable
}
