package slicer

// Slice is a runtime-length contiguous sequence.
// Both capabilities expose the slice itself; no copy is made.
type Slice[E any] []E

func (s Slice[E]) AsSlice() View[E] {
	return View[E]{s: s}
}

func (s Slice[E]) AsMutSlice() []E {
	return s
}
