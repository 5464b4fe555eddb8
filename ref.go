package slicer

// Ref is an immutable reference to a readable value. It forwards AsSlice to
// the referent and never exposes AsMutSlice, even if the referent has one.
//
// Refs nest: a Ref to a Ref resolves by repeated delegation.
type Ref[E any, S Slicer[E]] struct {
	target *S
}

// RefOf returns an immutable reference to *p.
// It panics if p is nil.
func RefOf[E any, S Slicer[E]](p *S) Ref[E, S] {
	if p == nil {
		panic("slicer: nil reference")
	}
	return Ref[E, S]{target: p}
}

func (r Ref[E, S]) AsSlice() View[E] {
	return (*r.target).AsSlice()
}

// MutRef is a mutable reference to a writable value. It forwards both
// capabilities to the referent. Use [ReadMutRef] for a referent that is
// only readable.
//
// The caller must not hand out two MutRefs to the same value for use at the
// same time; wrap the value in an [Exclusive] when that cannot be ruled out.
type MutRef[E any, S MutSlicer[E]] struct {
	target *S
}

// MutRefOf returns a mutable reference to *p.
// It panics if p is nil.
func MutRefOf[E any, S MutSlicer[E]](p *S) MutRef[E, S] {
	if p == nil {
		panic("slicer: nil reference")
	}
	return MutRef[E, S]{target: p}
}

func (r MutRef[E, S]) AsSlice() View[E] {
	return (*r.target).AsSlice()
}

func (r MutRef[E, S]) AsMutSlice() []E {
	return (*r.target).AsMutSlice()
}

// Set replaces the referent.
func (r MutRef[E, S]) Set(v S) {
	*r.target = v
}

// Ref downgrades r to an immutable reference to the same referent.
func (r MutRef[E, S]) Ref() Ref[E, S] {
	return Ref[E, S]{target: r.target}
}

// ReadMutRef is a mutable reference to a value that is only readable, such as
// a [View] or a [Ref]. It forwards AsSlice; the referent can be replaced with
// Set but its elements cannot be written through the reference.
type ReadMutRef[E any, S Slicer[E]] struct {
	target *S
}

// ReadMutRefOf returns a mutable reference to the readable value *p.
// It panics if p is nil.
func ReadMutRefOf[E any, S Slicer[E]](p *S) ReadMutRef[E, S] {
	if p == nil {
		panic("slicer: nil reference")
	}
	return ReadMutRef[E, S]{target: p}
}

func (r ReadMutRef[E, S]) AsSlice() View[E] {
	return (*r.target).AsSlice()
}

// Set replaces the referent.
func (r ReadMutRef[E, S]) Set(v S) {
	*r.target = v
}

// Ref downgrades r to an immutable reference to the same referent.
func (r ReadMutRef[E, S]) Ref() Ref[E, S] {
	return Ref[E, S]{target: r.target}
}
