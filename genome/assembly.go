package genome

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrAssembly is returned for recipe text that cannot be assembled.
var ErrAssembly = errors.New("invalid recipe assembly")

// Disassemble renders the recipe as one statement per instruction,
// separated by "; ". Junk bytes are written as "JUNK <value>".
func (r *Recipe) Disassemble() string {
	d := &disassembler{}
	ForEachInstruction(r.code, d)
	return strings.Join(d.parts, "; ")
}

type disassembler struct {
	parts []string
}

func (d *disassembler) Process(in Instruction, values []int) {
	var sb strings.Builder
	sb.WriteString(in.String())
	for _, v := range values {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(v))
	}
	d.parts = append(d.parts, sb.String())
}

func (d *disassembler) Junk(b byte) {
	d.parts = append(d.parts, "JUNK "+strconv.Itoa(ToInt(b)))
}

// Assemble parses recipe text produced by Disassemble (statements separated
// by ';' or newlines, '#' starts a comment) into a recipe with the given colour.
//
// JUNK statements are re-encoded as the raw byte they name. Junk only ever
// stands for no-op bytes, so the round trip preserves behaviour even where it
// does not preserve the exact bytes.
func Assemble(text string, colour int) (*Recipe, error) {
	r := NewRecipe(colour)
	lines := strings.FieldsFunc(text, func(c rune) bool { return c == ';' || c == '\n' })
	for n, line := range lines {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := strings.ToUpper(fields[0])
		in, ok := ParseInstruction(name)
		if !ok {
			return nil, fmt.Errorf("%w: statement %d: unknown instruction %q", ErrAssembly, n+1, fields[0])
		}
		args := make([]int, 0, len(fields)-1)
		for _, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: statement %d: operand %q: %v", ErrAssembly, n+1, f, err)
			}
			if v < -MaxValue || v > MaxValue {
				return nil, fmt.Errorf("%w: statement %d: operand %d outside [-%d, %d]", ErrAssembly, n+1, v, MaxValue, MaxValue)
			}
			args = append(args, v)
		}
		if in == Junk {
			if len(args) != 1 {
				return nil, fmt.Errorf("%w: statement %d: JUNK takes one value", ErrAssembly, n+1)
			}
			r.AppendInt(args[0])
			continue
		}
		if len(args) != in.Operands() {
			return nil, fmt.Errorf("%w: statement %d: %s takes %d operands, got %d",
				ErrAssembly, n+1, in, in.Operands(), len(args))
		}
		r.AppendInstruction(in, args...)
	}
	return r, nil
}

// MustAssemble is like Assemble but panics on error.
func MustAssemble(text string, colour int) *Recipe {
	r, err := Assemble(text, colour)
	if err != nil {
		panic(err)
	}
	return r
}
