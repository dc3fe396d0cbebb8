package world

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/evolve/components"
	"github.com/pthm-cable/evolve/organism"
)

// member pairs a live organism with its lineage record.
type member struct {
	org     *organism.Organism
	lineage components.Lineage
}

// Population stores live organisms as ECS entities, indexed by organism ID.
type Population struct {
	world    *ecs.World
	mapper   *ecs.Map2[components.Body, components.Lineage]
	filter   *ecs.Filter2[components.Body, components.Lineage]
	entities map[uint64]ecs.Entity
	nextSeq  uint64
}

func newPopulation() *Population {
	world := ecs.NewWorld()
	return &Population{
		world:    world,
		mapper:   ecs.NewMap2[components.Body, components.Lineage](world),
		filter:   ecs.NewFilter2[components.Body, components.Lineage](world),
		entities: make(map[uint64]ecs.Entity),
	}
}

// Add stores o as a child of parent, or as a founder when parent is nil.
func (p *Population) Add(o *organism.Organism, parent *components.Lineage) components.Lineage {
	p.nextSeq++
	lineage := components.Lineage{Seq: p.nextSeq}
	if parent != nil {
		lineage.Parent = parent.Seq
		lineage.Generation = parent.Generation + 1
	}
	body := components.Body{Org: o}
	p.entities[o.ID] = p.mapper.NewEntity(&body, &lineage)
	return lineage
}

// Remove deletes the organism with the given ID. It reports false if there
// is none.
func (p *Population) Remove(id uint64) bool {
	e, ok := p.entities[id]
	if !ok {
		return false
	}
	p.world.RemoveEntity(e)
	delete(p.entities, id)
	return true
}

// Lineage returns the lineage record of a live organism.
func (p *Population) Lineage(id uint64) (components.Lineage, bool) {
	e, ok := p.entities[id]
	if !ok || !p.world.Alive(e) {
		return components.Lineage{}, false
	}
	_, lineage := p.mapper.Get(e)
	return *lineage, true
}

// Len returns the number of live organisms.
func (p *Population) Len() int {
	return len(p.entities)
}

// members collects every organism ordered by birth sequence. The query must
// complete before the caller adds or removes entities.
func (p *Population) members() []member {
	out := make([]member, 0, len(p.entities))
	query := p.filter.Query()
	for query.Next() {
		body, lineage := query.Get()
		out = append(out, member{org: body.Org, lineage: *lineage})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].lineage.Seq < out[j].lineage.Seq })
	return out
}
