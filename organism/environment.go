// Package organism provides the simulated life form: an energy budget, a
// position and a network compiled once from its recipe.
package organism

import "github.com/pthm-cable/evolve/genome"

// Environment is everything an organism needs from the world it lives in.
// It is passed in on every call rather than stored, so organisms never hold
// a reference back to their world.
type Environment interface {
	// ApplyActivationFunction is the activation shared by every network.
	ApplyActivationFunction(x int) int
	// Input resolves an input code for o.
	Input(o *Organism, code int) int
	// PerformActivity carries out an activity code for o.
	PerformActivity(o *Organism, code int)
	// CopyInstructions replicates o's recipe for a child.
	CopyInstructions(o *Organism, r *genome.Recipe) *genome.Recipe
}

// host binds an environment to one organism for a single activation.
type host struct {
	env Environment
	o   *Organism
}

func (h host) Input(code int) int { return h.env.Input(h.o, code) }

func (h host) Perform(code int) { h.env.PerformActivity(h.o, code) }
