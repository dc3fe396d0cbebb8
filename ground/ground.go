package ground

// Ground is a toroidal grid of packed cells.
type Ground struct {
	width, height int
	cells         []Cell
}

// New creates an empty ground of the given size.
func New(width, height int) *Ground {
	return &Ground{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Ground) Width() int { return g.width }

// Height returns the number of rows.
func (g *Ground) Height() int { return g.height }

// Wrap maps any coordinate onto the torus.
func (g *Ground) Wrap(x, y int) (int, int) {
	x %= g.width
	if x < 0 {
		x += g.width
	}
	y %= g.height
	if y < 0 {
		y += g.height
	}
	return x, y
}

func (g *Ground) index(x, y int) int {
	x, y = g.Wrap(x, y)
	return y*g.width + x
}

// Cell returns the packed cell at (x, y).
func (g *Ground) Cell(x, y int) Cell { return g.cells[g.index(x, y)] }

// SetCell replaces the packed cell at (x, y).
func (g *Ground) SetCell(x, y int, c Cell) { g.cells[g.index(x, y)] = c }

// Get returns one element of the cell at (x, y).
func (g *Ground) Get(x, y int, e Element) int { return g.Cell(x, y).Get(e) }

// Set assigns one element of the cell at (x, y).
func (g *Ground) Set(x, y int, e Element, v int) error {
	i := g.index(x, y)
	c, err := g.cells[i].Set(e, v)
	if err != nil {
		return err
	}
	g.cells[i] = c
	return nil
}

// Add adds delta to one element of the cell at (x, y), saturating.
func (g *Ground) Add(x, y int, e Element, delta int) {
	i := g.index(x, y)
	g.cells[i] = g.cells[i].Add(e, delta)
}

// Fill sets element e to v in every cell.
func (g *Ground) Fill(e Element, v int) error {
	if _, err := Cell(0).Set(e, v); err != nil {
		return err
	}
	for i := range g.cells {
		g.cells[i] = g.cells[i].MustSet(e, v)
	}
	return nil
}

// Row returns the cells of row y. The slice aliases the grid; it is meant
// for the tick pipeline, which owns the ground.
func (g *Ground) Row(y int) []Cell {
	start := y * g.width
	return g.cells[start : start+g.width]
}

// Clone returns a deep copy, for observers that must not see later ticks.
func (g *Ground) Clone() *Ground {
	out := &Ground{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Total sums one element over all cells.
func (g *Ground) Total(e Element) int {
	sum := 0
	for _, c := range g.cells {
		sum += c.Get(e)
	}
	return sum
}
