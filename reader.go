package slicer

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// Reader reads from the flat view of a byte buffer.
// It implements the [io.Reader], [io.ByteReader], [io.Seeker] and [io.WriterTo] interfaces.
//
// The view is taken once, when the Reader is created or reset.
type Reader struct {
	v   View[byte]
	pos int
}

func NewReader(s Slicer[byte]) *Reader {
	return &Reader{v: s.AsSlice()}
}

// Reset resets the reader to the start of s.
func (r *Reader) Reset(s Slicer[byte]) *Reader {
	r.v = s.AsSlice()
	r.pos = 0
	return r
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.pos
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.pos >= len(r.v.s) {
		return 0
	}
	return len(r.v.s) - r.pos
}

func (r *Reader) IsEOF() bool {
	return r.pos >= len(r.v.s)
}

// Read reads up to len(p) bytes into p.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil // No-op
	}
	if r.IsEOF() {
		return 0, io.EOF
	}
	n = copy(p, r.v.s[r.pos:])
	r.pos += n
	return n, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.IsEOF() {
		return 0, io.EOF
	}
	b := r.v.s[r.pos]
	r.pos++
	return b, nil
}

// ReadUvarint reads a Uvarint and returns it with the number of bytes read.
// The error is [io.EOF] only if no bytes were read. If an EOF happens after reading
// some but not all the bytes, it returns [io.ErrUnexpectedEOF].
func (r *Reader) ReadUvarint() (x uint64, n int, err error) {
	// NOTE: Decoded from the view directly instead of binary.ReadUvarint(r) to
	// avoid an interface call per byte and to track the exact number of bytes read.
	if r.IsEOF() {
		return 0, 0, io.EOF
	}
	x, n = binary.Uvarint(r.v.s[r.pos:])
	switch {
	case n == 0:
		return 0, 0, io.ErrUnexpectedEOF // Ran out of bytes mid-Uvarint.
	case n < 0:
		return 0, 0, errors.New("invalid uvarint: overflows 64 bits")
	}
	r.pos += n
	return x, n, nil
}

// ReadFrame reads a Uvarint length-prefixed frame and returns its payload as
// a view into the underlying buffer. No bytes are copied.
//
// On [io.ErrUnexpectedEOF] the reader is left at the start of the frame.
func (r *Reader) ReadFrame() (View[byte], error) {
	start := r.pos
	l, _, err := r.ReadUvarint()
	if err != nil {
		return View[byte]{}, err
	}
	if l > uint64(r.Len()) {
		r.pos = start
		return View[byte]{}, io.ErrUnexpectedEOF
	}
	end := r.pos + int(l)
	payload := r.v.Slice(r.pos, end)
	r.pos = end
	return payload, nil
}

// Seek sets the offset for the next read.
// It implements the [io.Seeker] interface.
//
// Seeking to an offset before the start of the view is an error.
// Seeking past the end is allowed; subsequent reads return [io.EOF].
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(r.pos)
	case io.SeekEnd:
		base = int64(len(r.v.s)) // Offset is expected to be negative.
	default:
		return 0, errors.New("invalid whence")
	}
	newOffset := base + offset
	if (offset > 0 && newOffset < base) || newOffset > math.MaxInt {
		return 0, errors.New("invalid offset: out of range")
	}
	if newOffset < 0 {
		return 0, errors.New("invalid offset: cannot be negative")
	}
	r.pos = int(newOffset)
	return newOffset, nil
}

// WriteTo writes the unread bytes to w in a single call.
// It implements the [io.WriterTo] interface.
func (r *Reader) WriteTo(w io.Writer) (n int64, err error) {
	if r.IsEOF() {
		return 0, nil
	}
	rem := r.v.s[r.pos:]
	m, err := w.Write(rem)
	if m < 0 || m > len(rem) {
		panic("slicer: invalid Write count")
	}
	r.pos += m
	if err == nil && m != len(rem) {
		err = io.ErrShortWrite
	}
	return int64(m), err
}
