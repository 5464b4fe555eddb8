package slicer

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Array is a fixed-length contiguous sequence: a pointer to an A, where A is
// an array type [N]E. Both capabilities expose the whole array as a flat
// slice of length N without copying.
type Array[E any, A any] struct {
	p *A
	n int
}

// ArrayOf wraps the array pointed to by p.
//
// It panics if p is nil or if A is not an array type with element type E.
// Both are programmer errors; Go cannot constrain a type parameter to
// "an array of any length", so the shape is checked here.
func ArrayOf[E any, A any](p *A) Array[E, A] {
	if p == nil {
		panic("slicer: nil array pointer")
	}
	t := reflect.TypeFor[A]()
	if t.Kind() != reflect.Array {
		panic(fmt.Sprintf("slicer: %v is not an array type", t))
	}
	if elem := reflect.TypeFor[E](); t.Elem() != elem {
		panic(fmt.Sprintf("slicer: array element type %v does not match %v", t.Elem(), elem))
	}
	return Array[E, A]{p: p, n: t.Len()}
}

// Len returns the array length N.
func (a Array[E, A]) Len() int {
	return a.n
}

// Ptr returns the wrapped array pointer.
func (a Array[E, A]) Ptr() *A {
	return a.p
}

func (a Array[E, A]) AsSlice() View[E] {
	return View[E]{s: a.flat()}
}

func (a Array[E, A]) AsMutSlice() []E {
	return a.flat()
}

// flat reinterprets *[N]E as []E of length and capacity N.
func (a Array[E, A]) flat() []E {
	return unsafe.Slice((*E)(unsafe.Pointer(a.p)), a.n)
}
