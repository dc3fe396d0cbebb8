package ground

// Direction is one of the four compass headings.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West

	NumDirections
)

var offsets = [NumDirections][2]int{
	North: {0, -1},
	East:  {1, 0},
	South: {0, 1},
	West:  {-1, 0},
}

// Left returns the heading after a quarter turn counter-clockwise.
func (d Direction) Left() Direction { return (d + NumDirections - 1) % NumDirections }

// Right returns the heading after a quarter turn clockwise.
func (d Direction) Right() Direction { return (d + 1) % NumDirections }

// Offset returns the unit step for the heading.
func (d Direction) Offset() (dx, dy int) {
	o := offsets[d%NumDirections]
	return o[0], o[1]
}

// Vacant marks an unoccupied cell in the occupancy layer.
const Vacant = 0

// Space combines the ground with an occupancy layer holding at most one
// organism per cell, identified by a non-zero id.
type Space struct {
	*Ground
	occupant []uint64
}

// NewSpace creates a space over a fresh ground.
func NewSpace(width, height int) *Space {
	return &Space{
		Ground:   New(width, height),
		occupant: make([]uint64, width*height),
	}
}

// Ahead returns the wrapped cell one step from (x, y) along d.
func (s *Space) Ahead(x, y int, d Direction) (int, int) {
	dx, dy := d.Offset()
	return s.Wrap(x+dx, y+dy)
}

// Neighbours returns the four wrapped cells around (x, y), starting at d
// and turning clockwise.
func (s *Space) Neighbours(x, y int, d Direction) [NumDirections][2]int {
	var out [NumDirections][2]int
	for i := Direction(0); i < NumDirections; i++ {
		nx, ny := s.Ahead(x, y, (d+i)%NumDirections)
		out[i] = [2]int{nx, ny}
	}
	return out
}

// Occupant returns the id of the organism at (x, y), or Vacant.
func (s *Space) Occupant(x, y int) uint64 { return s.occupant[s.index(x, y)] }

// Occupy places id at (x, y). It reports false if the cell is taken.
func (s *Space) Occupy(x, y int, id uint64) bool {
	i := s.index(x, y)
	if s.occupant[i] != Vacant {
		return false
	}
	s.occupant[i] = id
	return true
}

// Vacate clears (x, y) if it holds id.
func (s *Space) Vacate(x, y int, id uint64) {
	i := s.index(x, y)
	if s.occupant[i] == id {
		s.occupant[i] = Vacant
	}
}

// Move relocates id from one cell to another. It reports false, changing
// nothing, when the destination is taken.
func (s *Space) Move(fromX, fromY, toX, toY int, id uint64) bool {
	if !s.Occupy(toX, toY, id) {
		return false
	}
	s.Vacate(fromX, fromY, id)
	return true
}

// Free reports whether (x, y) has no wall and no occupant.
func (s *Space) Free(x, y int) bool {
	i := s.index(x, y)
	return s.occupant[i] == Vacant && s.cells[i].Get(Wall) == 0
}

// Population counts occupied cells.
func (s *Space) Population() int {
	n := 0
	for _, id := range s.occupant {
		if id != Vacant {
			n++
		}
	}
	return n
}

// CopyInto copies the ground and occupancy into dst, reusing its storage
// when the sizes match, and returns the copy.
func (s *Space) CopyInto(dst *Space) *Space {
	if dst == nil || dst.width != s.width || dst.height != s.height {
		dst = NewSpace(s.width, s.height)
	}
	copy(dst.cells, s.cells)
	copy(dst.occupant, s.occupant)
	return dst
}
