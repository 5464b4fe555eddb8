package slicer

import "iter"

// View is a read-only window over a contiguous run of elements.
// It shares the backing array with whatever produced it and is only valid
// as long as that storage is.
type View[E any] struct {
	s []E
}

// ViewOf wraps s without copying.
func ViewOf[E any](s []E) View[E] {
	return View[E]{s: s}
}

// AsSlice returns v itself, so a view can be passed wherever a Slicer is expected.
func (v View[E]) AsSlice() View[E] {
	return v
}

// Len returns the number of elements in the view.
func (v View[E]) Len() int {
	return len(v.s)
}

// At returns the element at index i.
// It panics if i is out of range.
func (v View[E]) At(i int) E {
	return v.s[i]
}

// Slice returns the subview [i, j).
// It panics if the bounds are out of range.
func (v View[E]) Slice(i, j int) View[E] {
	return View[E]{s: v.s[i:j:j]}
}

// All returns an iterator over index-element pairs.
func (v View[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i, e := range v.s {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements.
func (v View[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, e := range v.s {
			if !yield(e) {
				return
			}
		}
	}
}

// CopyTo copies the view into dst and returns the number of elements copied.
func (v View[E]) CopyTo(dst []E) int {
	return copy(dst, v.s)
}

// Equal reports whether a and b have the same length and elements.
func Equal[E comparable](a, b View[E]) bool {
	if len(a.s) != len(b.s) {
		return false
	}
	for i := range a.s {
		if a.s[i] != b.s[i] {
			return false
		}
	}
	return true
}
