package genome

import "math/rand"

// Mutation constants.
const (
	// mutationScale divides the per-offset mutation chance: a copy of any
	// length sees on average Rate/mutationScale mutation events.
	mutationScale = 100

	maxSkip    = 3 // read offset moves by a delta in [-maxSkip, maxSkip]
	maxPerturb = 5 // copied value moves by a delta in [-maxPerturb, maxPerturb]
)

// Replicator copies gene code when an organism divides.
type Replicator interface {
	CopyInstructions(code []byte, size int, colour int) *Recipe
}

// Mutator is the standard replicator. It introduces transcription errors
// at a rate proportional to Rate; Rate 0 copies exactly.
type Mutator struct {
	Rate int
	Rand *rand.Rand
}

// NewMutator creates a mutator with its own random source.
func NewMutator(rate int, rng *rand.Rand) *Mutator {
	return &Mutator{Rate: rate, Rand: rng}
}

// CopyInstructions copies the first size bytes of code.
//
// On each offset the copy mutates with probability Rate/(size*mutationScale).
// A mutation perturbs the copied value, then moves the read offset by a random
// delta: deltas above 1 skip bytes (deletion), deltas of 0 or below re-read
// them (duplication). Every mutation also flips one colour bit so lineages
// drift visibly.
func (m *Mutator) CopyInstructions(code []byte, size int, colour int) *Recipe {
	if size > len(code) {
		size = len(code)
	}
	out := &Recipe{code: make([]byte, 0, size), colour: colour & ColourMask}
	if m.Rate <= 0 || size == 0 {
		out.code = append(out.code, code[:size]...)
		return out
	}

	limit := 4*size + 16
	for i := 0; i < size && len(out.code) < limit; {
		if m.Rand.Intn(size*mutationScale) >= m.Rate {
			out.code = append(out.code, code[i])
			i++
			continue
		}
		v := ToInt(code[i]) + m.Rand.Intn(2*maxPerturb+1) - maxPerturb
		out.code = append(out.code, FromInt(clampValue(v)))
		out.colour ^= 1 << m.Rand.Intn(ColourBits)
		i += m.Rand.Intn(2*maxSkip+1) - maxSkip
		if i < 0 {
			i = 0
		}
	}
	return out
}

// Copy replicates a whole recipe, keeping its colour.
func (m *Mutator) Copy(r *Recipe) *Recipe {
	return m.CopyInstructions(r.code, len(r.code), r.colour)
}

// clampValue keeps a perturbed value inside the gene code range rather than
// letting it wrap around to a small magnitude.
func clampValue(v int) int {
	if v > MaxValue {
		return MaxValue
	}
	if v < -MaxValue {
		return -MaxValue
	}
	return v
}
