package avg

import "testing"

func TestFilterWarmupAndWrap(t *testing.T) {
	w := New[int](3)

	type C struct {
		in   int
		want int
	}
	for i, c := range []C{
		{9, 9},   // 9/1
		{3, 6},   // (9+3)/2
		{6, 6},   // (9+3+6)/3
		{12, 7},  // (3+6+12)/3
		{-6, 4},  // (6+12-6)/3
		{-6, 0},  // (12-6-6)/3
		{-6, -6}, // (-6-6-6)/3
	} {
		if got := w.Filter(c.in); got != c.want {
			t.Fatalf("step %d: Filter(%d) = %d, want %d", i, c.in, got, c.want)
		}
	}
}

func TestOldestNewest(t *testing.T) {
	w := New[int](3)
	if w.Oldest() != 0 || w.Newest() != 0 {
		t.Fatal("empty window should report zeros")
	}

	w.Filter(1)
	w.Filter(2)
	if w.Oldest() != 1 || w.Newest() != 2 {
		t.Fatalf("partial: oldest=%d newest=%d, want 1,2", w.Oldest(), w.Newest())
	}

	w.Filter(3)
	w.Filter(4) // overwrites 1
	if w.Oldest() != 2 || w.Newest() != 4 {
		t.Fatalf("full: oldest=%d newest=%d, want 2,4", w.Oldest(), w.Newest())
	}
	if w.Count() != 3 {
		t.Fatalf("count = %d, want 3", w.Count())
	}
}

func TestReset(t *testing.T) {
	w := New[int16](4)
	w.Filter(100)
	w.Filter(200)
	w.Reset()
	if w.Count() != 0 || w.Average() != 0 {
		t.Fatalf("after reset: count=%d average=%d", w.Count(), w.Average())
	}
	if got := w.Filter(8); got != 8 {
		t.Fatalf("first sample after reset = %d, want 8", got)
	}
}

func TestDegenerateSize(t *testing.T) {
	w := New[int](0) // coerced to 1: pure pass-through
	for _, v := range []int{5, -3, 100} {
		if got := w.Filter(v); got != v {
			t.Fatalf("Filter(%d) = %d with window 1", v, got)
		}
	}
}
