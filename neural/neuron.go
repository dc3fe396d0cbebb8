package neural

// synapse is one weighted input of a neuron. It reads either an earlier
// neuron or, when source is nil, an environment input code.
type synapse struct {
	source *Neuron
	code   int
	weight int
}

// Neuron is one unit of a compiled network.
type Neuron struct {
	Threshold int

	synapses []synapse

	// delay ring buffer; nil when the neuron has no delay
	delay []int
	pos   int

	activity    int
	hasActivity bool

	value int

	// observed output range
	min, max int
	observed bool
}

// Value returns the externally visible output of the last activation.
func (n *Neuron) Value() int { return n.value }

// Inputs returns the number of synapses feeding this neuron.
func (n *Neuron) Inputs() int { return len(n.synapses) }

// Delay returns the configured delay length, 0 if none.
func (n *Neuron) Delay() int { return len(n.delay) }

// Activity returns the attached activity code and whether one is set.
func (n *Neuron) Activity() (int, bool) { return n.activity, n.hasActivity }

// Range returns the smallest and largest values this neuron has produced.
func (n *Neuron) Range() (lo, hi int) { return n.min, n.max }

// SetDelay installs a delay of d activations. Non-positive delays are ignored.
func (n *Neuron) SetDelay(d int) {
	if d <= 0 {
		return
	}
	n.delay = make([]int, d)
	n.pos = 0
}

// SetActivity attaches (or replaces) the activity fired on positive output.
func (n *Neuron) SetActivity(code int) {
	n.activity = code
	n.hasActivity = true
}

// activate computes the fresh value and pushes it through the delay line.
func (n *Neuron) activate(fn ActivationFunction, host Host) {
	sum := 0
	for _, s := range n.synapses {
		var in int
		if s.source != nil {
			in = s.source.value
		} else if host != nil {
			in = host.Input(s.code)
		}
		sum += in * s.weight / 10
	}
	fresh := fn.Apply(sum - n.Threshold)

	if n.delay != nil {
		n.value = n.delay[n.pos]
		n.delay[n.pos] = fresh
		n.pos = (n.pos + 1) % len(n.delay)
	} else {
		n.value = fresh
	}

	if !n.observed {
		n.min, n.max = n.value, n.value
		n.observed = true
	} else if n.value < n.min {
		n.min = n.value
	} else if n.value > n.max {
		n.max = n.value
	}
}
