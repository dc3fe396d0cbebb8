package neural

import "math"

// ActivationFunction maps a neuron's net input to its output value.
type ActivationFunction interface {
	Apply(x int) int
}

// ActivationFunc adapts a plain function to ActivationFunction.
type ActivationFunc func(x int) int

// Apply calls f(x).
func (f ActivationFunc) Apply(x int) int { return f(x) }

// Sigmoid is a table-driven integer sigmoid saturating at ±Range.
type Sigmoid struct {
	rng   int
	table []int
}

// NewSigmoid precomputes the 2R+1 entry lookup table for range r.
// A non-positive range yields a function that always returns 0.
func NewSigmoid(r int) *Sigmoid {
	if r < 0 {
		r = 0
	}
	s := &Sigmoid{rng: r, table: make([]int, 2*r+1)}
	for i := range s.table {
		s.table[i] = int(math.Floor(float64(2*r)/(1+math.Exp(float64(r-i))) - float64(r)))
	}
	// Rounding in the tails can land one short of the range on small tables.
	s.table[0] = -r
	s.table[2*r] = r
	return s
}

// Range returns R.
func (s *Sigmoid) Range() int { return s.rng }

// Apply looks up x, clamping it to [-R, R] first.
func (s *Sigmoid) Apply(x int) int {
	if x < -s.rng {
		x = -s.rng
	} else if x > s.rng {
		x = s.rng
	}
	return s.table[x+s.rng]
}
