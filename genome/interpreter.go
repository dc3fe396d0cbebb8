package genome

import "github.com/pthm-cable/evolve/neural"

// Processor receives the decoded instruction stream of a recipe.
type Processor interface {
	// Process is called for every instruction with all its operands present.
	Process(in Instruction, values []int)
	// Junk is called for every byte that does not form a complete instruction.
	Junk(b byte)
}

// ForEachInstruction walks code and dispatches to p.
// An opcode without enough trailing operand bytes ends the walk: it and the
// leftover bytes are all reported as junk.
func ForEachInstruction(code []byte, p Processor) {
	var values [2]int
	for i := 0; i < len(code); {
		in := Decode(code[i])
		n := in.Operands()
		if i+n >= len(code) {
			for _, b := range code[i:] {
				p.Junk(b)
			}
			return
		}
		if in == Junk {
			p.Junk(code[i])
			i++
			continue
		}
		for k := 0; k < n; k++ {
			values[k] = ToInt(code[i+1+k])
		}
		p.Process(in, values[:n])
		i += 1 + n
	}
}

// action applies one decoded instruction to a network under construction.
type action func(nw *neural.Network, values []int)

var actions = [numInstructions]action{
	Junk:        nil,
	AddNeuron:   addNeuron,
	AddLink:     addLink,
	AddInput:    addInput,
	AddDelay:    addDelay,
	SetActivity: setActivity,
}

func addNeuron(nw *neural.Network, values []int) {
	nw.AddNeuron(values[0])
}

func addLink(nw *neural.Network, values []int) {
	if nw.Size() < 2 {
		return
	}
	// The modulus keeps from below Size()-1, so AddLink cannot fail here.
	_ = nw.AddLink(ModInt(values[0], nw.Size()-1), values[1])
}

func addInput(nw *neural.Network, values []int) {
	_ = nw.AddInput(values[0], values[1])
}

func addDelay(nw *neural.Network, values []int) {
	if values[0] <= 0 {
		return
	}
	_ = nw.SetDelay(values[0])
}

func setActivity(nw *neural.Network, values []int) {
	_ = nw.SetActivity(values[0])
}

// builder compiles an instruction stream into a network.
type builder struct {
	nw *neural.Network
}

func (b *builder) Process(in Instruction, values []int) {
	if act := actions[in]; act != nil {
		act(b.nw, values)
	}
}

func (b *builder) Junk(byte) {}

// Compile builds the network described by code.
// Compilation is total: malformed instructions are skipped one at a time.
func Compile(code []byte, fn neural.ActivationFunction) *neural.Network {
	b := &builder{nw: neural.NewNetwork(fn)}
	ForEachInstruction(code, b)
	return b.nw
}
