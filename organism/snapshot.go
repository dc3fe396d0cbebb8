package organism

import (
	"github.com/pthm-cable/evolve/genome"
	"github.com/pthm-cable/evolve/ground"
)

// Snapshot is an immutable copy of an organism's observable state.
type Snapshot struct {
	ID         uint64
	X, Y       int
	Direction  ground.Direction
	Energy     int
	Age        int
	Children   int
	Colour     int
	Recipe     *genome.Recipe // shared; recipes are never modified after creation
	Complexity int            // network size
	Links      int
	Ranges     [][2]int // per-neuron observed [min, max]
}

// Snapshot captures the organism's state at tick now.
func (o *Organism) Snapshot(now int) Snapshot {
	return Snapshot{
		ID:         o.ID,
		X:          o.X,
		Y:          o.Y,
		Direction:  o.Direction,
		Energy:     o.energy,
		Age:        o.Age(now),
		Children:   o.children,
		Colour:     o.recipe.Colour(),
		Recipe:     o.recipe,
		Complexity: o.network.Size(),
		Links:      o.network.Links(),
		Ranges:     o.network.Ranges(),
	}
}
