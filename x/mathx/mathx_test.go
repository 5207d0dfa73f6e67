package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Fatalf("Clamp(-5,0,10) = %d", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Fatalf("Clamp(15,0,10) = %d", got)
	}
	// Swapped bounds.
	if got := Clamp(15, 10, 0); got != 10 {
		t.Fatalf("Clamp(15,10,0) = %d", got)
	}
}

func TestClampI8(t *testing.T) {
	type C struct {
		in   int
		want int8
	}
	for _, c := range []C{
		{0, 0}, {64, 64}, {127, 127}, {128, 127}, {4000, 127},
		{-127, -127}, {-128, -127}, {-4000, -127},
	} {
		if got := ClampI8(c.in); got != c.want {
			t.Fatalf("ClampI8(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(2, 3) != 2 || Max(2, 3) != 3 {
		t.Fatal("Min/Max")
	}
	if Abs(-7) != 7 || Abs(7) != 7 {
		t.Fatal("Abs")
	}
}
