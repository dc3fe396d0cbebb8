package neural

import "testing"

func TestSigmoidEndpoints(t *testing.T) {
	for _, r := range []int{1, 2, 5, 10, 100, 1000} {
		s := NewSigmoid(r)
		if got := s.Apply(r); got != r {
			t.Errorf("R=%d: Apply(R) = %d, want %d", r, got, r)
		}
		if got := s.Apply(-r); got != -r {
			t.Errorf("R=%d: Apply(-R) = %d, want %d", r, got, -r)
		}
		if got := s.Apply(0); got != 0 {
			t.Errorf("R=%d: Apply(0) = %d, want 0", r, got)
		}
	}
}

func TestSigmoidMonotonic(t *testing.T) {
	for _, r := range []int{3, 50, 127} {
		s := NewSigmoid(r)
		prev := s.Apply(-r - 10)
		for x := -r - 9; x <= r+10; x++ {
			v := s.Apply(x)
			if v < prev {
				t.Fatalf("R=%d: Apply(%d) = %d < Apply(%d) = %d", r, x, v, x-1, prev)
			}
			prev = v
		}
	}
}

func TestSigmoidClamps(t *testing.T) {
	s := NewSigmoid(10)
	if s.Apply(1000) != 10 || s.Apply(-1000) != -10 {
		t.Errorf("out of range inputs not clamped: %d %d", s.Apply(1000), s.Apply(-1000))
	}
}

func TestSigmoidSmallPositive(t *testing.T) {
	s := NewSigmoid(100)
	if s.Apply(1) <= 0 {
		t.Errorf("Apply(1) = %d, want positive", s.Apply(1))
	}
	if s.Apply(-1) >= 0 {
		t.Errorf("Apply(-1) = %d, want negative", s.Apply(-1))
	}
}

func TestSigmoidZeroRange(t *testing.T) {
	s := NewSigmoid(0)
	if s.Apply(5) != 0 || s.Apply(-5) != 0 {
		t.Error("zero range sigmoid should always return 0")
	}
}
