package species

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pthm-cable/evolve/organism"
)

// Policy decides species membership during an analysis pass.
type Policy interface {
	// Reset forgets any state from a previous pass.
	Reset()
	// Match returns the index in list of the species s joins, or -1 when s
	// founds a new species, which the caller appends at index len(list).
	Match(s organism.Snapshot, list []Species) int
}

// progressEvery is how many organisms pass between progress reports.
const progressEvery = 64

// Analysis runs a batch clustering pass over a population snapshot.
// Results and Progress may be called from other goroutines while Run is in
// progress; they return the species published so far.
type Analysis struct {
	policy     Policy
	onProgress func(done, total int)

	mu      sync.Mutex
	species []Species
	done    int
	total   int
}

// NewAnalysis creates an analysis using policy.
func NewAnalysis(policy Policy) *Analysis {
	return &Analysis{policy: policy}
}

// OnProgress registers a callback invoked every few organisms and once at the
// end of a completed pass. It runs on the goroutine calling Run.
func (a *Analysis) OnProgress(fn func(done, total int)) {
	a.onProgress = fn
}

// Run clusters snap, replacing any earlier results. Cancellation is checked
// between organisms; on cancellation the species built so far stay
// available through Results and ctx.Err() is returned.
func (a *Analysis) Run(ctx context.Context, snap []organism.Snapshot) error {
	a.mu.Lock()
	a.policy.Reset()
	a.species = nil
	a.done = 0
	a.total = len(snap)
	a.mu.Unlock()

	for i, s := range snap {
		if err := ctx.Err(); err != nil {
			slog.Debug("species analysis cancelled", "done", i, "total", len(snap))
			return err
		}

		a.mu.Lock()
		if idx := a.policy.Match(s, a.species); idx >= 0 {
			a.species[idx].add(s)
		} else {
			a.species = append(a.species, newSpecies(len(a.species)+1, s))
		}
		a.done = i + 1
		a.mu.Unlock()

		if a.onProgress != nil && (i+1)%progressEvery == 0 {
			a.onProgress(i+1, len(snap))
		}
	}

	if a.onProgress != nil {
		a.onProgress(len(snap), len(snap))
	}
	return nil
}

// Results returns a copy of the species published so far.
func (a *Analysis) Results() []Species {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Species, len(a.species))
	for i, sp := range a.species {
		out[i] = sp.clone()
	}
	return out
}

// Progress returns how many organisms of the current pass are processed.
func (a *Analysis) Progress() (done, total int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.done, a.total
}
