package slicer

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExclusiveBorrows(t *testing.T) {
	x := NewExclusive[int](Slice[int]{1, 2, 3})

	t.Run("Shared borrows coexist", func(t *testing.T) {
		v1, release1, err := x.Borrow()
		require.NoError(t, err)
		v2, release2, err := x.Borrow()
		require.NoError(t, err)
		require.True(t, Equal(v1, v2))

		_, _, err = x.BorrowMut()
		require.ErrorIs(t, err, ErrBorrowed)

		release1()
		release1() // Idempotent.
		require.True(t, x.Borrowed())
		release2()
		require.False(t, x.Borrowed())
	})

	t.Run("Mutable borrow is exclusive", func(t *testing.T) {
		s, release, err := x.BorrowMut()
		require.NoError(t, err)
		s[1] = 9

		_, _, err = x.Borrow()
		require.ErrorIs(t, err, ErrBorrowed)
		_, _, err = x.BorrowMut()
		require.ErrorIs(t, err, ErrBorrowed)

		release()
		release()
		require.False(t, x.Borrowed())

		v, release, err := x.Borrow()
		require.NoError(t, err)
		defer release()
		require.Equal(t, 9, v.At(1))
	})
}

func TestExclusiveInto(t *testing.T) {
	x := NewExclusive[byte](Slice[byte]("abc"))

	_, release, err := x.Borrow()
	require.NoError(t, err)
	_, err = x.Into()
	require.ErrorIs(t, err, ErrBorrowed)
	release()

	s, err := x.Into()
	require.NoError(t, err)
	require.Equal(t, "abc", string(s))

	_, _, err = x.Borrow()
	require.ErrorIs(t, err, ErrBorrowed, "guard must stay borrowed after Into")
}

func TestExclusiveConcurrentMutBorrows(t *testing.T) {
	a := [64]int{}
	x := NewExclusive[int](ArrayOf[int](&a))

	var holders, maxHolders atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				s, release, err := x.BorrowMut()
				if err != nil {
					continue
				}
				n := holders.Add(1)
				for {
					m := maxHolders.Load()
					if n <= m || maxHolders.CompareAndSwap(m, n) {
						break
					}
				}
				s[0]++
				holders.Add(-1)
				release()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(1), maxHolders.Load())
	require.False(t, x.Borrowed())
}
