package slicer

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrBorrowed is returned when a borrow would break shared-xor-exclusive access.
var ErrBorrowed = errors.New("slicer: buffer is already borrowed")

const mutBorrowed = -1

// Exclusive guards a writable value with runtime-checked borrows: any number
// of shared views, or a single mutable slice, but never both.
//
// Views and slices must not be used after their release func is called.
// Exclusive must not be copied after first use.
type Exclusive[E any, S MutSlicer[E]] struct {
	target S
	// state is the number of shared borrows, or mutBorrowed.
	state atomic.Int64
}

// NewExclusive returns a guard owning s.
func NewExclusive[E any, S MutSlicer[E]](s S) *Exclusive[E, S] {
	return &Exclusive[E, S]{target: s}
}

// Borrow returns a shared view and its release func.
// The error is ErrBorrowed if a mutable borrow is outstanding.
func (x *Exclusive[E, S]) Borrow() (View[E], func(), error) {
	for {
		n := x.state.Load()
		if n == mutBorrowed {
			return View[E]{}, nil, ErrBorrowed
		}
		if x.state.CompareAndSwap(n, n+1) {
			break
		}
	}
	return x.target.AsSlice(), sync.OnceFunc(func() { x.state.Add(-1) }), nil
}

// BorrowMut returns the mutable slice and its release func.
// The error is ErrBorrowed if any other borrow is outstanding.
func (x *Exclusive[E, S]) BorrowMut() ([]E, func(), error) {
	if !x.state.CompareAndSwap(0, mutBorrowed) {
		return nil, nil, ErrBorrowed
	}
	return x.target.AsMutSlice(), sync.OnceFunc(func() { x.state.Store(0) }), nil
}

// Borrowed reports whether any borrow is outstanding.
func (x *Exclusive[E, S]) Borrowed() bool {
	return x.state.Load() != 0
}

// Into returns the guarded value. It fails with ErrBorrowed while any borrow
// is outstanding; on success the guard is left permanently mutably borrowed.
func (x *Exclusive[E, S]) Into() (S, error) {
	if !x.state.CompareAndSwap(0, mutBorrowed) {
		var zero S
		return zero, ErrBorrowed
	}
	return x.target, nil
}
