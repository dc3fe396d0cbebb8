package organism

import (
	"github.com/pthm-cable/evolve/genome"
	"github.com/pthm-cable/evolve/ground"
	"github.com/pthm-cable/evolve/neural"
)

// Organism is one simulated life instance.
type Organism struct {
	ID        uint64
	X, Y      int
	Direction ground.Direction
	Birth     int // tick of creation

	energy   int
	recipe   *genome.Recipe
	network  *neural.Network
	counters []int
	children int
}

// New makes an organism from a recipe. The network is compiled here, once,
// and never changes afterwards.
func New(id uint64, recipe *genome.Recipe, env Environment, energy int) *Organism {
	if energy < 0 {
		energy = 0
	}
	fn := neural.ActivationFunc(env.ApplyActivationFunction)
	return &Organism{
		ID:      id,
		energy:  energy,
		recipe:  recipe,
		network: genome.Compile(recipe.Bytes(), fn),
	}
}

// Energy returns the current energy.
func (o *Organism) Energy() int { return o.energy }

// Alive reports whether the organism has energy left.
func (o *Organism) Alive() bool { return o.energy > 0 }

// Recipe returns the recipe the organism was made from.
func (o *Organism) Recipe() *genome.Recipe { return o.recipe }

// Network returns the compiled network.
func (o *Organism) Network() *neural.Network { return o.network }

// Children returns the number of successful divisions.
func (o *Organism) Children() int { return o.children }

// Age returns the organism's age at tick now.
func (o *Organism) Age(now int) int { return now - o.Birth }

// Activate charges one energy unit per neuron, then runs the network if the
// organism survived the charge.
func (o *Organism) Activate(env Environment) {
	o.Reduce(o.network.Size())
	if !o.Alive() {
		return
	}
	o.network.Activate(host{env: env, o: o})
}

// Divide builds a child from a replicated recipe and gives it half of the
// remaining energy. Any division cost must be charged before calling.
// The child has no position yet.
func (o *Organism) Divide(env Environment, childID uint64) *Organism {
	recipe := env.CopyInstructions(o, o.recipe)
	child := New(childID, recipe, env, o.energy/2)
	o.energy -= child.energy
	o.children++
	child.Direction = o.Direction
	return child
}

// Consume deducts amount if the organism can afford it. It reports false,
// changing nothing, otherwise.
func (o *Organism) Consume(amount int) bool {
	if amount < 0 || o.energy < amount {
		return false
	}
	o.energy -= amount
	return true
}

// Reduce deducts amount, clamping energy at zero.
func (o *Organism) Reduce(amount int) {
	if amount <= 0 {
		return
	}
	o.energy -= amount
	if o.energy < 0 {
		o.energy = 0
	}
}

// Feed adds energy.
func (o *Organism) Feed(amount int) {
	if amount > 0 {
		o.energy += amount
	}
}

// ClampEnergy caps energy at max.
func (o *Organism) ClampEnergy(max int) {
	if o.energy > max {
		o.energy = max
	}
}

// ResetCounters clears the per-tick activity counters.
func (o *Organism) ResetCounters() {
	for i := range o.counters {
		o.counters[i] = 0
	}
}

// Count returns how often activity code ran this tick.
func (o *Organism) Count(code int) int {
	if code < 0 || code >= len(o.counters) {
		return 0
	}
	return o.counters[code]
}

// Record counts one execution of activity code.
func (o *Organism) Record(code int) {
	if code < 0 {
		return
	}
	if code >= len(o.counters) {
		grown := make([]int, code+1)
		copy(grown, o.counters)
		o.counters = grown
	}
	o.counters[code]++
}
