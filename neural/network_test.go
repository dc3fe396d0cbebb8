package neural

import (
	"errors"
	"testing"
)

type testHost struct {
	inputs    map[int]int
	performed []int
}

func (h *testHost) Input(code int) int { return h.inputs[code] }

func (h *testHost) Perform(code int) { h.performed = append(h.performed, code) }

func identity() ActivationFunction {
	return ActivationFunc(func(x int) int { return x })
}

func TestAddLinkBounds(t *testing.T) {
	nw := NewNetwork(identity())
	nw.AddNeuron(0)
	nw.AddNeuron(0)

	tests := []struct {
		name    string
		from    int
		wantErr bool
	}{
		{"earlier neuron", 0, false},
		{"self link", 1, true},
		{"forward link", 2, true},
		{"negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := nw.AddLink(tt.from, 10)
			if tt.wantErr != (err != nil) {
				t.Fatalf("AddLink(%d) error = %v, wantErr %v", tt.from, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrLinkIndex) {
				t.Errorf("error = %v, want ErrLinkIndex", err)
			}
		})
	}
}

func TestAddLinkOnSingleNeuron(t *testing.T) {
	nw := NewNetwork(identity())
	nw.AddNeuron(0)
	if err := nw.AddLink(0, 1); !errors.Is(err, ErrLinkIndex) {
		t.Errorf("AddLink on size 1 = %v, want ErrLinkIndex", err)
	}
}

func TestEmptyNetworkOperations(t *testing.T) {
	nw := NewNetwork(identity())
	if err := nw.AddInput(0, 1); !errors.Is(err, ErrEmptyNetwork) {
		t.Errorf("AddInput = %v", err)
	}
	if err := nw.SetDelay(2); !errors.Is(err, ErrEmptyNetwork) {
		t.Errorf("SetDelay = %v", err)
	}
	if err := nw.SetActivity(1); !errors.Is(err, ErrEmptyNetwork) {
		t.Errorf("SetActivity = %v", err)
	}
	nw.Activate(nil)
}

func TestActivateWeightedSum(t *testing.T) {
	nw := NewNetwork(identity())
	nw.AddNeuron(-7) // constant 7
	nw.AddNeuron(2)
	if err := nw.AddLink(0, 30); err != nil {
		t.Fatal(err)
	}
	if err := nw.AddInput(5, -15); err != nil {
		t.Fatal(err)
	}

	h := &testHost{inputs: map[int]int{5: 4}}
	nw.Activate(h)

	// 7*30/10 + 4*-15/10 - 2 = 21 - 6 - 2
	if got := nw.Neuron(1).Value(); got != 13 {
		t.Errorf("value = %d, want 13", got)
	}
}

func TestActivityFiresOnPositiveValue(t *testing.T) {
	nw := NewNetwork(NewSigmoid(100))
	nw.AddNeuron(0)
	_ = nw.SetActivity(3)
	nw.AddNeuron(-1)
	_ = nw.SetActivity(4)

	h := &testHost{}
	nw.Activate(h)
	if len(h.performed) != 1 || h.performed[0] != 4 {
		t.Errorf("performed = %v, want [4]", h.performed)
	}
}

func TestDelayLagsValue(t *testing.T) {
	nw := NewNetwork(identity())
	// Neuron 0 counts up through its own input; neuron 1 echoes it 3 steps later.
	nw.AddNeuron(0)
	_ = nw.AddInput(0, 10)
	nw.AddNeuron(0)
	_ = nw.AddLink(0, 10)
	_ = nw.SetDelay(3)

	tick := 0
	h := &counterHost{tick: &tick}
	var echoed []int
	for tick = 1; tick <= 6; tick++ {
		nw.Activate(h)
		echoed = append(echoed, nw.Neuron(1).Value())
	}
	want := []int{0, 0, 0, 1, 2, 3}
	for i := range want {
		if echoed[i] != want[i] {
			t.Fatalf("echoed = %v, want %v", echoed, want)
		}
	}
}

type counterHost struct{ tick *int }

func (h *counterHost) Input(int) int { return *h.tick }
func (h *counterHost) Perform(int) {}

func TestDelayedNeuronFiresLate(t *testing.T) {
	nw := NewNetwork(NewSigmoid(100))
	nw.AddNeuron(-5)
	_ = nw.SetDelay(2)
	_ = nw.SetActivity(1)

	h := &testHost{}
	nw.Activate(h)
	nw.Activate(h)
	if len(h.performed) != 0 {
		t.Fatalf("fired before the delay elapsed: %v", h.performed)
	}
	nw.Activate(h)
	if len(h.performed) != 1 {
		t.Errorf("performed = %v after delay, want one firing", h.performed)
	}
}

func TestRangesAndLinks(t *testing.T) {
	nw := NewNetwork(identity())
	nw.AddNeuron(0)
	_ = nw.AddInput(0, 10)
	nw.AddNeuron(0)
	_ = nw.AddLink(0, -10)

	h := &testHost{inputs: map[int]int{0: 3}}
	nw.Activate(h)
	h.inputs[0] = -2
	nw.Activate(h)

	r := nw.Ranges()
	if r[0] != [2]int{-2, 3} {
		t.Errorf("neuron 0 range = %v, want [-2 3]", r[0])
	}
	if r[1] != [2]int{-3, 2} {
		t.Errorf("neuron 1 range = %v, want [-3 2]", r[1])
	}
	if nw.Links() != 2 {
		t.Errorf("Links = %d, want 2", nw.Links())
	}
}
