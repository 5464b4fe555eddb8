package slicer

import (
	"io"
	"testing"
)

func TestWriter(t *testing.T) {
	t.Run("Write fits", func(t *testing.T) {
		buf := make(Slice[byte], 8)
		w := NewWriter(buf)
		n, err := w.Write([]byte("abc"))
		if err != nil || n != 3 {
			t.Fatalf("expected 3 bytes written, got %d (err %v)", n, err)
		}
		if w.Len() != 3 || w.Available() != 5 {
			t.Errorf("expected len 3 and 5 available, got %d and %d", w.Len(), w.Available())
		}
		if string(buf[:3]) != "abc" {
			t.Errorf("expected buffer to contain %q, got %q", "abc", buf[:3])
		}
	})

	t.Run("Write does not fit", func(t *testing.T) {
		w := NewWriter(make(Slice[byte], 4))
		w.Write([]byte("ab"))
		if n, err := w.Write([]byte("cde")); err != io.ErrShortBuffer || n != 0 {
			t.Errorf("expected 0, io.ErrShortBuffer, got %d, %v", n, err)
		}
		if w.Len() != 2 {
			t.Errorf("expected failed write to leave len 2, got %d", w.Len())
		}
	})

	t.Run("WriteByte full", func(t *testing.T) {
		w := NewWriter(make(Slice[byte], 1))
		if err := w.WriteByte('a'); err != nil {
			t.Fatal(err)
		}
		if err := w.WriteByte('b'); err != io.ErrShortBuffer {
			t.Errorf("expected io.ErrShortBuffer, got %v", err)
		}
	})

	t.Run("WriteFrame is all or nothing", func(t *testing.T) {
		w := NewWriter(make(Slice[byte], 4))
		n, err := w.WriteFrame([]byte("ab"))
		if err != nil || n != 3 {
			t.Fatalf("expected 3 bytes written, got %d (err %v)", n, err)
		}
		if n, err := w.WriteFrame([]byte("cd")); err != io.ErrShortBuffer || n != 0 {
			t.Errorf("expected 0, io.ErrShortBuffer, got %d, %v", n, err)
		}
		if w.Len() != 3 {
			t.Errorf("expected len 3, got %d", w.Len())
		}
	})

	t.Run("WriteUvarint", func(t *testing.T) {
		w := NewWriter(make(Slice[byte], 2))
		if n, err := w.WriteUvarint(300); err != nil || n != 2 {
			t.Fatalf("expected 2 bytes written, got %d (err %v)", n, err)
		}
		x, _, err := NewReader(w.Written()).ReadUvarint()
		if err != nil || x != 300 {
			t.Errorf("expected to read back 300, got %d (err %v)", x, err)
		}
	})

	t.Run("Fixed array backing and reset", func(t *testing.T) {
		var a [4]byte
		w := NewWriter(ArrayOf[byte](&a))
		w.Write([]byte("wxyz"))
		if string(a[:]) != "wxyz" {
			t.Errorf("expected array to contain %q, got %q", "wxyz", a[:])
		}
		w.Reset()
		if w.Len() != 0 || w.Written().Len() != 0 {
			t.Error("expected writer to be rewound")
		}
		w.WriteByte('W')
		if string(a[:]) != "Wxyz" {
			t.Errorf("expected array to contain %q, got %q", "Wxyz", a[:])
		}
	})
}
