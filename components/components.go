// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/evolve/organism"

// Body attaches a live organism to an entity.
type Body struct {
	Org *organism.Organism
}

// Lineage records where an entity sits in the population's history.
type Lineage struct {
	Seq        uint64 // birth sequence, strictly increasing
	Parent     uint64 // parent birth sequence, 0 for seeded organisms
	Generation int    // 0 for seeded organisms
}
