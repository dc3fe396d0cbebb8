package genome

import "fmt"

// Instruction identifies one genome opcode.
type Instruction uint8

const (
	Junk Instruction = iota
	AddNeuron
	AddLink
	AddInput
	AddDelay
	SetActivity

	numInstructions
)

// instructionInfo is the frozen metadata for one opcode.
// Codes is the width of the magnitude range assigned to the instruction;
// ranges are laid out back to back in declaration order.
type instructionInfo struct {
	Name     string
	Operands int
	Codes    int
}

var instructionTable = [numInstructions]instructionInfo{
	Junk:        {Name: "JUNK", Operands: 0, Codes: 1},
	AddNeuron:   {Name: "ADD_NEURON", Operands: 1, Codes: 16},
	AddLink:     {Name: "ADD_LINK", Operands: 2, Codes: 24},
	AddInput:    {Name: "ADD_INPUT", Operands: 2, Codes: 16},
	AddDelay:    {Name: "ADD_DELAY", Operands: 1, Codes: 8},
	SetActivity: {Name: "SET_ACTIVITY", Operands: 1, Codes: 16},
}

// decodeTable maps every magnitude to its instruction.
var decodeTable [CodeRange]Instruction

// firstCode is the lowest magnitude of each instruction's range.
var firstCode [numInstructions]int

func init() {
	next := 0
	for i := Instruction(0); i < numInstructions; i++ {
		firstCode[i] = next
		for c := 0; c < instructionTable[i].Codes && next < CodeRange; c++ {
			decodeTable[next] = i
			next++
		}
	}
	// Everything past the last assigned range stays Junk (the zero value).
}

// Decode maps an opcode byte to its instruction. The sign is ignored.
func Decode(b byte) Instruction {
	return decodeTable[Abs(b)]
}

// Instructions lists every opcode in declaration order.
func Instructions() []Instruction {
	out := make([]Instruction, numInstructions)
	for i := range out {
		out[i] = Instruction(i)
	}
	return out
}

// Operands returns the number of operand bytes the instruction consumes.
func (in Instruction) Operands() int {
	if in >= numInstructions {
		return 0
	}
	return instructionTable[in].Operands
}

// Code returns the canonical opcode byte for the instruction.
func (in Instruction) Code() byte {
	if in >= numInstructions {
		return 0
	}
	return FromInt(firstCode[in])
}

func (in Instruction) String() string {
	if in >= numInstructions {
		return fmt.Sprintf("Instruction(%d)", uint8(in))
	}
	return instructionTable[in].Name
}

// ParseInstruction looks up an instruction by its mnemonic.
func ParseInstruction(name string) (Instruction, bool) {
	for i := Instruction(0); i < numInstructions; i++ {
		if instructionTable[i].Name == name {
			return i, true
		}
	}
	return Junk, false
}
