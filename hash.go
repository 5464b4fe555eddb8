package slicer

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Scalar is the set of fixed-size element types whose memory is plain data.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr |
		~float32 | ~float64
}

// Sum64 returns the xxhash of the view's element bytes in native byte order.
func Sum64[E Scalar](s Slicer[E]) uint64 {
	return xxhash.Sum64(Bytes(s.AsSlice()).s)
}

// Bytes reinterprets the view's elements as a read-only byte view, without copying.
func Bytes[E Scalar](v View[E]) View[byte] {
	if len(v.s) == 0 {
		return View[byte]{}
	}
	var e E
	n := len(v.s) * int(unsafe.Sizeof(e))
	return View[byte]{s: unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v.s))), n)}
}
