package dma

import (
	"fmt"

	"github.com/holmberd/go-slicer"
)

// Chunk is a view of an off-heap memory chunk from a [ChunkPool].
//
// Its length is the logical size requested and its capacity is the chunk size.
// A chunk must not be used after it is returned to the pool.
type Chunk struct {
	buf []byte
}

func (c Chunk) AsSlice() slicer.View[byte] {
	return slicer.ViewOf(c.buf)
}

func (c Chunk) AsMutSlice() []byte {
	return c.buf
}

// Stable implements [Stable]: chunk memory is mmap'd outside the Go heap.
func (Chunk) Stable() {}

// Len returns the logical length of the chunk.
func (c Chunk) Len() int {
	return len(c.buf)
}

// Cap returns the chunk size.
func (c Chunk) Cap() int {
	return cap(c.buf)
}

// Truncate returns the chunk with logical length n.
// It panics if n is negative or larger than the chunk size.
func (c Chunk) Truncate(n int) Chunk {
	if n < 0 || n > cap(c.buf) {
		panic(fmt.Sprintf("dma: truncate length %d out of range [0, %d]", n, cap(c.buf)))
	}
	return Chunk{buf: c.buf[:n]}
}
