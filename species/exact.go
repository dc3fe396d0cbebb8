package species

import (
	"strconv"

	"github.com/pthm-cable/evolve/organism"
)

// Exact groups organisms that share a colour and a byte-identical recipe.
type Exact struct {
	index map[string]int
}

// NewExact creates an exact-match policy.
func NewExact() *Exact {
	return &Exact{index: make(map[string]int)}
}

func (e *Exact) Reset() {
	clear(e.index)
}

func (e *Exact) Match(s organism.Snapshot, list []Species) int {
	key := strconv.Itoa(s.Colour) + ":" + s.Recipe.Key()
	if i, ok := e.index[key]; ok {
		return i
	}
	e.index[key] = len(list)
	return -1
}
