package slicer

import (
	"encoding/binary"
	"testing"

	"github.com/cespare/xxhash/v2"
)

func TestSum64(t *testing.T) {
	t.Run("Bytes", func(t *testing.T) {
		s := Slice[byte]("hello world")
		if got, want := Sum64[byte](s), xxhash.Sum64String("hello world"); got != want {
			t.Errorf("expected hash %x, got %x", want, got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if got, want := Sum64[byte](Slice[byte]{}), xxhash.Sum64(nil); got != want {
			t.Errorf("expected hash %x, got %x", want, got)
		}
	})

	t.Run("Wide elements hash their native bytes", func(t *testing.T) {
		s := Slice[uint32]{1, 0xdeadbeef, 42}
		var raw []byte
		for _, e := range s {
			raw = binary.NativeEndian.AppendUint32(raw, e)
		}
		if got, want := Sum64[uint32](s), xxhash.Sum64(raw); got != want {
			t.Errorf("expected hash %x, got %x", want, got)
		}
		if n := Bytes(s.AsSlice()).Len(); n != 12 {
			t.Errorf("expected 12 bytes, got %d", n)
		}
	})

	t.Run("Storage form does not matter", func(t *testing.T) {
		a := [4]int16{-1, 2, -3, 4}
		arr := ArrayOf[int16](&a)
		s := Slice[int16]{-1, 2, -3, 4}
		if Sum64[int16](arr) != Sum64[int16](s) {
			t.Error("expected array and slice with equal elements to hash equally")
		}
		if Sum64[int16](RefOf[int16](&arr)) != Sum64[int16](s) {
			t.Error("expected reference to hash like its referent")
		}
	})
}
