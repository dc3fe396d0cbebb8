// Package species clusters a population snapshot into species, either by
// exact recipe match or by edit distance to an archetype.
package species

import (
	"github.com/pthm-cable/evolve/genome"
	"github.com/pthm-cable/evolve/organism"
)

// Species represents a group of genetically similar organisms.
type Species struct {
	ID            int
	Colour        int            // colour of the first member
	Archetype     *genome.Recipe // recipe of the first member, used for comparisons
	Count         int
	MaxAge        int
	TotalAge      int
	MaxComplexity int
	Ranges        [][2]int // neuron ranges of the first member reaching MaxComplexity
}

func newSpecies(id int, s organism.Snapshot) Species {
	sp := Species{
		ID:            id,
		Colour:        s.Colour,
		Archetype:     s.Recipe,
		MaxComplexity: -1,
	}
	sp.add(s)
	return sp
}

// add folds one member into the aggregates.
func (sp *Species) add(s organism.Snapshot) {
	sp.Count++
	sp.TotalAge += s.Age
	if s.Age > sp.MaxAge {
		sp.MaxAge = s.Age
	}
	if s.Complexity > sp.MaxComplexity {
		sp.MaxComplexity = s.Complexity
		sp.Ranges = s.Ranges
	}
}

// AvgAge returns the mean member age.
func (sp *Species) AvgAge() float64 {
	if sp.Count == 0 {
		return 0
	}
	return float64(sp.TotalAge) / float64(sp.Count)
}

// clone copies the species so callers cannot reach shared range slices.
func (sp Species) clone() Species {
	if sp.Ranges != nil {
		sp.Ranges = append([][2]int(nil), sp.Ranges...)
	}
	return sp
}

// Stats contains summary statistics about all species.
type Stats struct {
	Count        int
	TotalMembers int
	LargestSize  int
	LargestID    int
	Singletons   int // species with one member
}

// Summarize computes Stats over a result set.
func Summarize(list []Species) Stats {
	st := Stats{Count: len(list)}
	for _, sp := range list {
		st.TotalMembers += sp.Count
		if sp.Count > st.LargestSize {
			st.LargestSize = sp.Count
			st.LargestID = sp.ID
		}
		if sp.Count == 1 {
			st.Singletons++
		}
	}
	return st
}
