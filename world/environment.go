package world

import (
	"github.com/pthm-cable/evolve/genome"
	"github.com/pthm-cable/evolve/ground"
	"github.com/pthm-cable/evolve/organism"
)

// Input codes. A network's input code is taken modulo NumInputs.
const (
	InputEnergy = iota
	InputAge
	InputResourcesHere
	InputResourcesAhead
	InputTemperature
	InputAcid
	InputRadiation
	InputWallAhead
	InputOrganismAhead
	InputElevationAhead
	InputBodyHere
	InputRandom

	NumInputs
)

// Activity codes. A neuron's activity code is taken modulo NumActivities.
const (
	ActivityDivide = iota
	ActivityMove
	ActivityTurnLeft
	ActivityTurnRight
	ActivityEat
	ActivityScavenge

	NumActivities
)

// inputs read the pre-tick view so every organism in a tick senses the same
// world, whatever the others did before it.
var inputs = [NumInputs]func(w *World, o *organism.Organism) int{
	InputEnergy:         inputEnergy,
	InputAge:            inputAge,
	InputResourcesHere:  inputResourcesHere,
	InputResourcesAhead: inputResourcesAhead,
	InputTemperature:    inputTemperature,
	InputAcid:           inputAcid,
	InputRadiation:      inputRadiation,
	InputWallAhead:      inputWallAhead,
	InputOrganismAhead:  inputOrganismAhead,
	InputElevationAhead: inputElevationAhead,
	InputBodyHere:       inputBodyHere,
	InputRandom:         inputRandom,
}

func inputEnergy(w *World, o *organism.Organism) int { return o.Energy() }

func inputAge(w *World, o *organism.Organism) int { return o.Age(w.tick) }

func inputResourcesHere(w *World, o *organism.Organism) int {
	return w.view.Get(o.X, o.Y, ground.Resources)
}

func inputResourcesAhead(w *World, o *organism.Organism) int {
	return w.viewAhead(o, ground.Resources)
}

func inputTemperature(w *World, o *organism.Organism) int { return w.Temperature(o.X, o.Y) }

func inputAcid(w *World, o *organism.Organism) int { return w.view.Get(o.X, o.Y, ground.Acid) }

func inputRadiation(w *World, o *organism.Organism) int {
	return w.view.Get(o.X, o.Y, ground.Radiation)
}

func inputWallAhead(w *World, o *organism.Organism) int { return w.viewAhead(o, ground.Wall) }

func inputOrganismAhead(w *World, o *organism.Organism) int {
	x, y := w.view.Ahead(o.X, o.Y, o.Direction)
	if w.view.Occupant(x, y) != ground.Vacant {
		return 1
	}
	return 0
}

func inputElevationAhead(w *World, o *organism.Organism) int {
	return w.viewAhead(o, ground.Elevation) - w.view.Get(o.X, o.Y, ground.Elevation)
}

func inputBodyHere(w *World, o *organism.Organism) int { return w.view.Get(o.X, o.Y, ground.Body) }

// inputRandom is uniform in [0, 100).
func inputRandom(w *World, o *organism.Organism) int { return w.rng.Intn(100) }

// activity is an action a neuron can trigger. Each one charges its own cost
// and changes nothing when the organism cannot pay.
type activity func(w *World, o *organism.Organism)

var activities = [NumActivities]activity{
	ActivityDivide:    divide,
	ActivityMove:      move,
	ActivityTurnLeft:  turnLeft,
	ActivityTurnRight: turnRight,
	ActivityEat:       eat,
	ActivityScavenge:  scavenge,
}

// Input resolves an input code for o.
func (w *World) Input(o *organism.Organism, code int) int {
	return inputs[genome.ModInt(code, NumInputs)](w, o)
}

// PerformActivity runs an activity for o, at most once per tick per activity.
func (w *World) PerformActivity(o *organism.Organism, code int) {
	a := genome.ModInt(code, NumActivities)
	if o.Count(a) > 0 {
		return
	}
	o.Record(a)
	activities[a](w, o)
}

func (w *World) viewAhead(o *organism.Organism, e ground.Element) int {
	x, y := w.view.Ahead(o.X, o.Y, o.Direction)
	return w.view.Get(x, y, e)
}

// divide places a child on the cell ahead, or else on the first free
// neighbour turning clockwise. Without room, or without at least one unit of
// energy for each half after the cost, nothing is charged.
func divide(w *World, o *organism.Organism) {
	if o.Energy() < w.cfg.Costs.Divide+2 {
		return
	}
	cells := w.space.Neighbours(o.X, o.Y, o.Direction)
	for _, c := range cells {
		if !w.space.Free(c[0], c[1]) {
			continue
		}
		if !o.Consume(w.cfg.Costs.Divide) {
			return
		}
		parent, _ := w.pop.Lineage(o.ID)
		child := o.Divide(w, w.newID())
		w.place(child, c[0], c[1], &parent)
		w.collector.RecordBirth()
		return
	}
}

// move steps onto the free cell ahead, paying extra per unit climbed.
func move(w *World, o *organism.Organism) {
	x, y := w.space.Ahead(o.X, o.Y, o.Direction)
	if !w.space.Free(x, y) {
		return
	}
	cost := w.cfg.Costs.Move
	if climb := w.space.Get(x, y, ground.Elevation) - w.space.Get(o.X, o.Y, ground.Elevation); climb > 0 {
		cost += climb * w.cfg.Costs.Climb
	}
	if !o.Consume(cost) {
		return
	}
	w.space.Move(o.X, o.Y, x, y, o.ID)
	o.X, o.Y = x, y
}

func turnLeft(w *World, o *organism.Organism) {
	if o.Consume(w.cfg.Costs.Turn) {
		o.Direction = o.Direction.Left()
	}
}

func turnRight(w *World, o *organism.Organism) {
	if o.Consume(w.cfg.Costs.Turn) {
		o.Direction = o.Direction.Right()
	}
}

// eat takes up to consumption_rate resources from the organism's cell.
func eat(w *World, o *organism.Organism) {
	if !o.Consume(w.cfg.Costs.Eat) {
		return
	}
	n := min(w.space.Get(o.X, o.Y, ground.Resources), w.cfg.Resources.ConsumptionRate)
	w.space.Add(o.X, o.Y, ground.Resources, -n)
	o.Feed(n)
}

// scavenge takes one body unit from the organism's cell.
func scavenge(w *World, o *organism.Organism) {
	if w.space.Get(o.X, o.Y, ground.Body) == 0 || !o.Consume(w.cfg.Costs.Scavenge) {
		return
	}
	w.space.Add(o.X, o.Y, ground.Body, -1)
	o.Feed(w.cfg.Resources.BodyEnergy)
}
