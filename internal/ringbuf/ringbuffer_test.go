package ringbuf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func assertEqual[T any](t *testing.T, have, want T) {
	t.Helper()
	if !cmp.Equal(have, want) {
		t.Fatal(cmp.Diff(have, want))
	}
}

func TestBuffer(t *testing.T) {
	t.Parallel()

	rb := New[int](3)

	top := func(k int) []int {
		res := []int{}
		rb.Walk(func(i int) error {
			if k >= 0 && len(res) >= k {
				return errors.New("done")
			}
			res = append(res, i)
			return nil
		})
		return res
	}

	assertEqual(t, top(-1), []int{})

	rb.Add(1)
	assertEqual(t, top(-1), []int{1})

	rb.Add(2)
	assertEqual(t, top(-1), []int{2, 1})

	rb.Add(3)
	assertEqual(t, top(-1), []int{3, 2, 1})

	rb.Add(4) // overwrites 1
	assertEqual(t, top(-1), []int{4, 3, 2})
}

func TestBufferResizeGrow(t *testing.T) {
	t.Parallel()

	rb := New[int](2)
	rb.Add(1)
	rb.Add(2)

	dropped := rb.Resize(4)
	assertEqual(t, dropped, []int(nil))

	rb.Add(3)
	rb.Add(4)

	var got []int
	rb.Walk(func(i int) error { got = append(got, i); return nil })
	assertEqual(t, got, []int{4, 3, 2, 1})
}

func TestBufferResizeShrink(t *testing.T) {
	t.Parallel()

	rb := New[int](4)
	rb.Add(1)
	rb.Add(2)
	rb.Add(3)
	rb.Add(4)

	dropped := rb.Resize(2)
	assertEqual(t, dropped, []int{2, 1})

	var got []int
	rb.Walk(func(i int) error { got = append(got, i); return nil })
	assertEqual(t, got, []int{4, 3})
}

func TestBufferDropped(t *testing.T) {
	t.Parallel()

	rb := New[int](2)
	assertEqual(t, rb.Dropped(), 0)

	rb.Add(1)
	rb.Add(2)
	assertEqual(t, rb.Dropped(), 0)

	rb.Add(3) // overwrites 1
	rb.Add(4) // overwrites 2
	assertEqual(t, rb.Dropped(), 2)

	rb.Resize(1) // drops one more (the oldest of {3,4})
	assertEqual(t, rb.Dropped(), 3)
}

func TestKeyed(t *testing.T) {
	t.Parallel()

	ks := NewKeyed[int](2)

	ks.GetOrCreate("a").Add(1)
	ks.GetOrCreate("b").Add(2)
	ks.GetOrCreate("a").Add(3)

	all := ks.GetAll()
	assertEqual(t, len(all), 2)
	assertEqual(t, all["a"].Len(), 2)
	assertEqual(t, all["b"].Len(), 1)
}
