package genome

import "bytes"

// ColourBits is the width of the lineage colour tag.
const ColourBits = 24

// ColourMask keeps a colour within ColourBits.
const ColourMask = 1<<ColourBits - 1

// Recipe is a genome: an append-only gene code sequence plus a colour tag.
// A recipe is treated as immutable once an organism has been made from it.
type Recipe struct {
	code   []byte
	colour int
}

// NewRecipe creates an empty recipe with the given colour.
func NewRecipe(colour int) *Recipe {
	return &Recipe{colour: colour & ColourMask}
}

// NewRecipeFromBytes copies code into a new recipe.
func NewRecipeFromBytes(code []byte, colour int) *Recipe {
	r := &Recipe{code: make([]byte, len(code)), colour: colour & ColourMask}
	copy(r.code, code)
	return r
}

// Append adds one gene code byte.
func (r *Recipe) Append(b byte) {
	r.code = append(r.code, b)
}

// AppendInt encodes v and appends it.
func (r *Recipe) AppendInt(v int) {
	r.Append(FromInt(v))
}

// AppendInstruction appends an opcode followed by its operands.
// Missing operands are filled with 0 and extra ones are dropped.
func (r *Recipe) AppendInstruction(in Instruction, operands ...int) {
	r.Append(in.Code())
	for i := 0; i < in.Operands(); i++ {
		v := 0
		if i < len(operands) {
			v = operands[i]
		}
		r.AppendInt(v)
	}
}

// Len returns the number of gene code bytes.
func (r *Recipe) Len() int { return len(r.code) }

// At returns the byte at offset i.
func (r *Recipe) At(i int) byte { return r.code[i] }

// Bytes returns a copy of the gene code.
func (r *Recipe) Bytes() []byte {
	out := make([]byte, len(r.code))
	copy(out, r.code)
	return out
}

// Colour returns the lineage colour tag.
func (r *Recipe) Colour() int { return r.colour }

// Clone returns a deep copy.
func (r *Recipe) Clone() *Recipe {
	return NewRecipeFromBytes(r.code, r.colour)
}

// WithColour returns a copy carrying a different colour.
func (r *Recipe) WithColour(colour int) *Recipe {
	return NewRecipeFromBytes(r.code, colour)
}

// Equal reports byte-identical code and the same colour.
func (r *Recipe) Equal(o *Recipe) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.colour == o.colour && bytes.Equal(r.code, o.code)
}

// Key returns a string identifying colour and code, usable as a map key.
func (r *Recipe) Key() string {
	buf := make([]byte, 3, 3+len(r.code))
	buf[0] = byte(r.colour >> 16)
	buf[1] = byte(r.colour >> 8)
	buf[2] = byte(r.colour)
	return string(append(buf, r.code...))
}

// Instructions counts the complete instructions in the recipe, a cheap
// complexity measure that ignores junk.
func (r *Recipe) Instructions() int {
	c := &counter{}
	ForEachInstruction(r.code, c)
	return c.n
}

type counter struct{ n int }

func (c *counter) Process(Instruction, []int) { c.n++ }
func (c *counter) Junk(byte) {}
