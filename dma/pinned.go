package dma

import (
	"runtime"

	"github.com/holmberd/go-slicer"
)

// Pinned is a heap slice pinned in place until Unpin is called.
type Pinned[E any] struct {
	s      []E
	pinner runtime.Pinner
}

// Pin pins the backing array of s.
// The caller must call Unpin once no transfer holds the buffer.
func Pin[E any](s []E) *Pinned[E] {
	p := &Pinned[E]{s: s}
	if len(s) > 0 {
		p.pinner.Pin(&s[0])
	}
	return p
}

func (p *Pinned[E]) AsSlice() slicer.View[E] {
	return slicer.ViewOf(p.s)
}

func (p *Pinned[E]) AsMutSlice() []E {
	return p.s
}

// Stable implements [Stable]. It only holds until Unpin.
func (*Pinned[E]) Stable() {}

// Unpin releases the pin.
func (p *Pinned[E]) Unpin() {
	p.pinner.Unpin()
}
