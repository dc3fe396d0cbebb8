package ground

import "testing"

func TestWrap(t *testing.T) {
	g := New(10, 5)
	tests := []struct {
		x, y   int
		wx, wy int
	}{
		{0, 0, 0, 0},
		{10, 5, 0, 0},
		{-1, -1, 9, 4},
		{23, -12, 3, 3},
	}
	for _, tt := range tests {
		x, y := g.Wrap(tt.x, tt.y)
		if x != tt.wx || y != tt.wy {
			t.Errorf("Wrap(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, x, y, tt.wx, tt.wy)
		}
	}
}

func TestGroundSetGet(t *testing.T) {
	g := New(4, 4)
	if err := g.Set(-1, 0, Resources, 12); err != nil {
		t.Fatal(err)
	}
	if got := g.Get(3, 0, Resources); got != 12 {
		t.Errorf("wrapped Get = %d, want 12", got)
	}
	if err := g.Set(0, 0, Radiation, 9); err == nil {
		t.Error("Set should reject radiation 9")
	}
	g.Add(3, 0, Resources, 250)
	if got := g.Get(3, 0, Resources); got != 255 {
		t.Errorf("Add saturated to %d, want 255", got)
	}
}

func TestGroundFillAndTotal(t *testing.T) {
	g := New(3, 2)
	if err := g.Fill(Elevation, 7); err != nil {
		t.Fatal(err)
	}
	if got := g.Total(Elevation); got != 42 {
		t.Errorf("Total = %d, want 42", got)
	}
	if err := g.Fill(Acid, 3); err == nil {
		t.Error("Fill should reject acid 3")
	}
}

func TestGroundClone(t *testing.T) {
	g := New(2, 2)
	c := g.Clone()
	g.Add(0, 0, Body, 1)
	if c.Get(0, 0, Body) != 0 {
		t.Error("clone shares cells with the original")
	}
}

func TestSpaceOccupancy(t *testing.T) {
	s := NewSpace(3, 3)
	if !s.Free(1, 1) {
		t.Fatal("new space should be free")
	}
	if !s.Occupy(1, 1, 7) {
		t.Fatal("Occupy failed on a free cell")
	}
	if s.Occupy(1, 1, 8) {
		t.Error("Occupy succeeded on a taken cell")
	}
	if s.Free(1, 1) {
		t.Error("occupied cell reported free")
	}
	if !s.Move(1, 1, 1, 2, 7) {
		t.Fatal("Move to a free cell failed")
	}
	if s.Occupant(1, 1) != Vacant || s.Occupant(1, 2) != 7 {
		t.Error("Move did not relocate the occupant")
	}
	s.Vacate(1, 2, 99)
	if s.Occupant(1, 2) != 7 {
		t.Error("Vacate removed a different occupant")
	}
	if s.Population() != 1 {
		t.Errorf("Population = %d, want 1", s.Population())
	}

	if err := s.Set(0, 0, Wall, 1); err != nil {
		t.Fatal(err)
	}
	if s.Free(0, 0) {
		t.Error("walled cell reported free")
	}
}

func TestSpaceCopyInto(t *testing.T) {
	s := NewSpace(4, 2)
	s.Occupy(1, 1, 3)
	s.Add(2, 0, Resources, 9)

	view := s.CopyInto(nil)
	if view.Occupant(1, 1) != 3 || view.Get(2, 0, Resources) != 9 {
		t.Fatal("copy lost state")
	}

	s.Vacate(1, 1, 3)
	s.Add(2, 0, Resources, 1)
	if view.Occupant(1, 1) != 3 || view.Get(2, 0, Resources) != 9 {
		t.Error("copy shares storage with the original")
	}

	if again := s.CopyInto(view); again != view {
		t.Error("CopyInto reallocated a same-sized destination")
	}
	if view.Occupant(1, 1) != Vacant || view.Get(2, 0, Resources) != 10 {
		t.Error("CopyInto did not refresh the destination")
	}
}

func TestDirections(t *testing.T) {
	s := NewSpace(5, 5)
	x, y := s.Ahead(0, 0, North)
	if x != 0 || y != 4 {
		t.Errorf("Ahead north from origin = (%d, %d), want (0, 4)", x, y)
	}
	if North.Left() != West || West.Right() != North || East.Right() != South {
		t.Error("turns are wrong")
	}
	n := s.Neighbours(2, 2, East)
	if n[0] != [2]int{3, 2} || n[1] != [2]int{2, 3} {
		t.Errorf("Neighbours = %v", n)
	}
}
