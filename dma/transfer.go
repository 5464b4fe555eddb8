package dma

import (
	"context"
	"fmt"
)

type Direction int

const (
	ToMemory   Direction = iota // Peripheral to memory.
	FromMemory                  // Memory to peripheral.
)

func (d Direction) String() string {
	switch d {
	case ToMemory:
		return "to_memory"
	case FromMemory:
		return "from_memory"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// transferState is the non-generic part of a transfer, written once by the
// engine before done is closed.
type transferState struct {
	dir  Direction
	done chan struct{}
	n    int
	sum  uint64
	err  error
}

// Transfer is an in-progress transfer that owns its buffer until it completes.
type Transfer[B any] struct {
	transferState
	buf B
}

func newTransfer[B any](dir Direction, buf B) *Transfer[B] {
	return &Transfer[B]{
		transferState: transferState{dir: dir, done: make(chan struct{})},
		buf:           buf,
	}
}

// Direction returns the transfer direction.
func (t *Transfer[B]) Direction() Direction {
	return t.dir
}

// Done returns a channel that is closed when the transfer completes.
func (t *Transfer[B]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the transfer completes and hands the buffer back with
// the number of bytes moved. The buffer is returned even when the transfer
// failed; n then counts the bytes moved before the failure.
//
// If ctx is done first, Wait returns ctx.Err() and the transfer keeps the
// buffer; call Wait again to reclaim it.
func (t *Transfer[B]) Wait(ctx context.Context) (buf B, n int, err error) {
	select {
	case <-t.done:
		return t.buf, t.n, t.err
	case <-ctx.Done():
		var zero B
		return zero, 0, ctx.Err()
	}
}

// Sum64 returns the xxhash of the bytes moved, or 0 if the transfer has not completed.
func (t *Transfer[B]) Sum64() uint64 {
	select {
	case <-t.done:
		return t.sum
	default:
		return 0
	}
}
