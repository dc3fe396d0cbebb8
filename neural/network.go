// Package neural provides the integer neural networks compiled from recipes.
//
// Neurons may only read neurons added before them, so insertion order is a
// topological order and one forward pass evaluates the whole network.
package neural

import (
	"errors"
	"fmt"
)

// ErrLinkIndex is returned when a link would point at the neuron itself or
// at a later neuron.
var ErrLinkIndex = errors.New("link index out of range")

// ErrEmptyNetwork is returned by operations that need at least one neuron.
var ErrEmptyNetwork = errors.New("network has no neurons")

// Host is the per-activation capability surface a network runs against.
type Host interface {
	// Input resolves an environment input code to its current value.
	Input(code int) int
	// Perform executes the activity identified by code.
	Perform(code int)
}

// Network is an ordered list of neurons sharing one activation function.
type Network struct {
	neurons []*Neuron
	fn      ActivationFunction
}

// NewNetwork creates an empty network.
func NewNetwork(fn ActivationFunction) *Network {
	return &Network{fn: fn}
}

// Size returns the number of neurons.
func (nw *Network) Size() int { return len(nw.neurons) }

// Neuron returns the neuron at index i.
func (nw *Network) Neuron(i int) *Neuron { return nw.neurons[i] }

// Last returns the most recently added neuron, or nil.
func (nw *Network) Last() *Neuron {
	if len(nw.neurons) == 0 {
		return nil
	}
	return nw.neurons[len(nw.neurons)-1]
}

// AddNeuron appends a neuron with the given threshold.
func (nw *Network) AddNeuron(threshold int) *Neuron {
	n := &Neuron{Threshold: threshold}
	nw.neurons = append(nw.neurons, n)
	return n
}

// AddLink feeds neuron from into the last neuron.
// from must name an earlier neuron: 0 <= from < Size()-1.
func (nw *Network) AddLink(from, weight int) error {
	if from < 0 || from >= nw.Size()-1 {
		return fmt.Errorf("%w: from=%d size=%d", ErrLinkIndex, from, nw.Size())
	}
	last := nw.Last()
	last.synapses = append(last.synapses, synapse{source: nw.neurons[from], weight: weight})
	return nil
}

// AddInput feeds environment input code into the last neuron.
func (nw *Network) AddInput(code, weight int) error {
	last := nw.Last()
	if last == nil {
		return ErrEmptyNetwork
	}
	last.synapses = append(last.synapses, synapse{code: code, weight: weight})
	return nil
}

// SetDelay sets the delay of the last neuron.
func (nw *Network) SetDelay(d int) error {
	last := nw.Last()
	if last == nil {
		return ErrEmptyNetwork
	}
	last.SetDelay(d)
	return nil
}

// SetActivity attaches an activity code to the last neuron.
func (nw *Network) SetActivity(code int) error {
	last := nw.Last()
	if last == nil {
		return ErrEmptyNetwork
	}
	last.SetActivity(code)
	return nil
}

// Activate evaluates every neuron once in insertion order. A neuron whose
// visible value is positive fires its activity through host immediately,
// so later neurons already observe the effects.
func (nw *Network) Activate(host Host) {
	for _, n := range nw.neurons {
		n.activate(nw.fn, host)
		if n.value > 0 && n.hasActivity && host != nil {
			host.Perform(n.activity)
		}
	}
}

// Links returns the total number of synapses.
func (nw *Network) Links() int {
	total := 0
	for _, n := range nw.neurons {
		total += len(n.synapses)
	}
	return total
}

// Ranges returns a snapshot of each neuron's observed [min, max] output.
func (nw *Network) Ranges() [][2]int {
	out := make([][2]int, len(nw.neurons))
	for i, n := range nw.neurons {
		out[i] = [2]int{n.min, n.max}
	}
	return out
}
