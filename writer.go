package slicer

import (
	"encoding/binary"
	"io"
)

// Writer writes into the flat mutable view of a byte buffer. It never grows
// the buffer: a write that does not fit writes nothing and returns
// [io.ErrShortBuffer].
// It implements the [io.Writer] and [io.ByteWriter] interfaces.
type Writer struct {
	buf       []byte
	pos       int
	headerBuf [binary.MaxVarintLen64]byte // Reusable Uvarint header buffer.
}

func NewWriter(s MutSlicer[byte]) *Writer {
	return &Writer{buf: s.AsMutSlice()}
}

// Reset rewinds the writer to the start of its buffer.
func (w *Writer) Reset() {
	w.pos = 0
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.pos
}

// Available returns the number of bytes that can still be written.
func (w *Writer) Available() int {
	return len(w.buf) - w.pos
}

// Written returns a view of the bytes written so far.
func (w *Writer) Written() View[byte] {
	return View[byte]{s: w.buf[:w.pos:w.pos]}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if len(p) > w.Available() {
		return 0, io.ErrShortBuffer
	}
	n = copy(w.buf[w.pos:], p)
	w.pos += n
	return n, nil
}

func (w *Writer) WriteByte(c byte) error {
	if w.Available() < 1 {
		return io.ErrShortBuffer
	}
	w.buf[w.pos] = c
	w.pos++
	return nil
}

// WriteUvarint writes x as a Uvarint and returns the number of bytes written.
func (w *Writer) WriteUvarint(x uint64) (n int, err error) {
	hl := binary.PutUvarint(w.headerBuf[:], x)
	return w.Write(w.headerBuf[:hl])
}

// WriteFrame writes p prefixed with its Uvarint length.
// Either the whole frame is written or nothing is.
func (w *Writer) WriteFrame(p []byte) (n int, err error) {
	hl := binary.PutUvarint(w.headerBuf[:], uint64(len(p)))
	if hl+len(p) > w.Available() {
		return 0, io.ErrShortBuffer
	}
	n = copy(w.buf[w.pos:], w.headerBuf[:hl])
	n += copy(w.buf[w.pos+n:], p)
	w.pos += n
	return n, nil
}
