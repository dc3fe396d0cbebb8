package species

import "github.com/pthm-cable/evolve/organism"

// Distance puts an organism into the first species whose archetype lies
// within Max of its recipe. Colour is ignored.
type Distance struct {
	Max int
}

func (d *Distance) Reset() {}

func (d *Distance) Match(s organism.Snapshot, list []Species) int {
	for i := range list {
		if list[i].Archetype.Distance(s.Recipe) <= d.Max {
			return i
		}
	}
	return -1
}
