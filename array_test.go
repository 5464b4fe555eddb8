package slicer

import (
	"strings"
	"testing"
)

func assertPanics(t *testing.T, contains string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic, but got none")
		}
		msg, _ := r.(string)
		if !strings.Contains(msg, contains) {
			t.Errorf("expected panic to contain %q, got %v", contains, r)
		}
	}()
	f()
}

func TestArray(t *testing.T) {
	t.Run("View has array length and elements", func(t *testing.T) {
		a := [5]uint16{10, 20, 30, 40, 50}
		arr := ArrayOf[uint16](&a)
		if arr.Len() != len(a) {
			t.Fatalf("expected length %d, got %d", len(a), arr.Len())
		}
		v := arr.AsSlice()
		if v.Len() != len(a) {
			t.Fatalf("expected view length %d, got %d", len(a), v.Len())
		}
		for i, e := range v.All() {
			if e != a[i] {
				t.Errorf("expected element %d to be %d, got %d", i, a[i], e)
			}
		}
	})

	t.Run("Mutations reach the array", func(t *testing.T) {
		a := [3]int{1, 2, 3}
		arr := ArrayOf[int](&a)
		s := arr.AsMutSlice()
		if len(s) != 3 || cap(s) != 3 {
			t.Fatalf("expected len/cap 3, got len=%d, cap=%d", len(s), cap(s))
		}
		s[1] = 9
		if a[1] != 9 {
			t.Errorf("expected array element to be updated, got %v", a)
		}
		if got := arr.AsSlice().At(1); got != 9 {
			t.Errorf("expected view to observe write, got %d", got)
		}
		if arr.Ptr() != &a {
			t.Error("expected Ptr to return the wrapped array")
		}
	})

	t.Run("Zero length array", func(t *testing.T) {
		var a [0]int
		arr := ArrayOf[int](&a)
		if arr.Len() != 0 || arr.AsSlice().Len() != 0 || len(arr.AsMutSlice()) != 0 {
			t.Error("expected empty views for a zero length array")
		}
	})

	t.Run("Large fixed buffer", func(t *testing.T) {
		a := new([4096]byte)
		arr := ArrayOf[byte](a)
		arr.AsMutSlice()[4095] = 0xff
		if a[4095] != 0xff {
			t.Error("expected last byte to be written through the view")
		}
	})

	t.Run("Panics on nil pointer", func(t *testing.T) {
		assertPanics(t, "nil array pointer", func() {
			ArrayOf[int, [3]int](nil)
		})
	})

	t.Run("Panics on non-array type", func(t *testing.T) {
		x := 5
		assertPanics(t, "is not an array type", func() {
			ArrayOf[int](&x)
		})
	})

	t.Run("Panics on element type mismatch", func(t *testing.T) {
		a := [2]int32{}
		assertPanics(t, "does not match", func() {
			ArrayOf[int](&a)
		})
	})
}
