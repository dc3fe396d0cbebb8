// Package ground provides the toroidal world grid. Each cell packs its
// ground elements into one integer with a frozen bit layout.
package ground

import (
	"errors"
	"fmt"
)

// ErrFieldRange is returned when a value does not fit its element's bit field.
var ErrFieldRange = errors.New("ground element value out of range")

// Element identifies one packed attribute of a cell.
type Element uint8

const (
	Acid Element = iota
	Wall
	Radiation
	Elevation
	Resources
	Body

	NumElements
)

// layout is the frozen bit position of an element. Shifts are explicit so
// adding an element never moves an existing field.
type layout struct {
	Name  string
	Shift uint
	Bits  uint
}

var layouts = [NumElements]layout{
	Acid:      {Name: "acid", Shift: 0, Bits: 1},
	Wall:      {Name: "wall", Shift: 1, Bits: 1},
	Radiation: {Name: "radiation", Shift: 2, Bits: 2},
	Elevation: {Name: "elevation", Shift: 4, Bits: 8},
	Resources: {Name: "resources", Shift: 12, Bits: 8},
	Body:      {Name: "body", Shift: 20, Bits: 8},
}

// Elements lists every element in declaration order.
func Elements() []Element {
	out := make([]Element, NumElements)
	for i := range out {
		out[i] = Element(i)
	}
	return out
}

// Max returns the largest value the element can hold.
func (e Element) Max() int { return 1<<layouts[e].Bits - 1 }

func (e Element) mask() Cell { return Cell(e.Max()) << layouts[e].Shift }

func (e Element) String() string {
	if e >= NumElements {
		return fmt.Sprintf("Element(%d)", uint8(e))
	}
	return layouts[e].Name
}

// Cell is one packed ground cell.
type Cell uint32

// Get extracts an element's value.
func (c Cell) Get(e Element) int {
	return int((c & e.mask()) >> layouts[e].Shift)
}

// Set returns the cell with e replaced by v.
func (c Cell) Set(e Element, v int) (Cell, error) {
	if v < 0 || v > e.Max() {
		return c, fmt.Errorf("%w: %s = %d, allowed [0, %d]", ErrFieldRange, e, v, e.Max())
	}
	return c&^e.mask() | Cell(v)<<layouts[e].Shift, nil
}

// MustSet is like Set but panics on an out-of-range value.
func (c Cell) MustSet(e Element, v int) Cell {
	out, err := c.Set(e, v)
	if err != nil {
		panic(err)
	}
	return out
}

// Add returns the cell with delta added to e, saturating at 0 and Max.
func (c Cell) Add(e Element, delta int) Cell {
	v := c.Get(e) + delta
	if v < 0 {
		v = 0
	} else if v > e.Max() {
		v = e.Max()
	}
	return c&^e.mask() | Cell(v)<<layouts[e].Shift
}
