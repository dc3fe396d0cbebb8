package species

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/evolve/genome"
	"github.com/pthm-cable/evolve/organism"
)

func snap(text string, colour, age, complexity int) organism.Snapshot {
	return organism.Snapshot{
		Colour:     colour,
		Age:        age,
		Complexity: complexity,
		Recipe:     genome.MustAssemble(text, colour),
		Ranges:     make([][2]int, complexity),
	}
}

func TestExactPolicy(t *testing.T) {
	pop := []organism.Snapshot{
		snap("ADD_NEURON 1", 1, 10, 1),
		snap("ADD_NEURON 1", 1, 30, 1),
		snap("ADD_NEURON 1", 2, 5, 1), // same recipe, other colour
		snap("ADD_NEURON 2", 1, 7, 1), // same colour, other recipe
		snap("ADD_NEURON 1", 1, 20, 1),
	}

	a := NewAnalysis(NewExact())
	if err := a.Run(context.Background(), pop); err != nil {
		t.Fatal(err)
	}
	got := a.Results()
	if len(got) != 3 {
		t.Fatalf("len(species) = %d, want 3", len(got))
	}

	first := got[0]
	if first.ID != 1 || first.Count != 3 || first.MaxAge != 30 {
		t.Errorf("first species = %+v, want id 1, count 3, max age 30", first)
	}
	if first.AvgAge() != 20 {
		t.Errorf("AvgAge = %v, want 20", first.AvgAge())
	}
	if got[1].Colour != 2 || got[2].Count != 1 {
		t.Errorf("species order = %+v", got)
	}
}

func TestDistancePolicy(t *testing.T) {
	// ADD_NEURON 1 and ADD_NEURON 4 differ by 3 in one byte.
	pop := []organism.Snapshot{
		snap("ADD_NEURON 1", 1, 1, 1),
		snap("ADD_NEURON 4", 2, 1, 1),
		snap("ADD_NEURON 40", 3, 1, 1),
		snap("ADD_NEURON 42", 4, 1, 1),
	}

	tests := []struct {
		max  int
		want []int // member counts per species
	}{
		{0, []int{1, 1, 1, 1}},
		{3, []int{2, 2}},
		{1000, []int{4}},
	}
	for _, tt := range tests {
		a := NewAnalysis(&Distance{Max: tt.max})
		if err := a.Run(context.Background(), pop); err != nil {
			t.Fatal(err)
		}
		got := a.Results()
		if len(got) != len(tt.want) {
			t.Errorf("max %d: %d species, want %d", tt.max, len(got), len(tt.want))
			continue
		}
		for i, sp := range got {
			if sp.Count != tt.want[i] {
				t.Errorf("max %d: species %d count = %d, want %d", tt.max, i, sp.Count, tt.want[i])
			}
		}
	}
}

func TestArchetypeIsFirstMember(t *testing.T) {
	pop := []organism.Snapshot{
		snap("ADD_NEURON 3", 9, 1, 1),
		snap("ADD_NEURON 1", 8, 1, 1),
		snap("ADD_NEURON 5", 7, 1, 1),
	}
	a := NewAnalysis(&Distance{Max: 2})
	if err := a.Run(context.Background(), pop); err != nil {
		t.Fatal(err)
	}
	got := a.Results()
	if len(got) != 1 {
		t.Fatalf("len(species) = %d, want 1", len(got))
	}
	if !got[0].Archetype.Equal(pop[0].Recipe) || got[0].Colour != 9 {
		t.Errorf("archetype = %s colour %d, want the first member", got[0].Archetype.Disassemble(), got[0].Colour)
	}
}

func TestMaxComplexityKeepsRanges(t *testing.T) {
	small := snap("ADD_NEURON 1", 1, 1, 1)
	big := snap("ADD_NEURON 1", 1, 1, 3)
	big.Ranges[2] = [2]int{-4, 9}
	tie := snap("ADD_NEURON 1", 1, 1, 3)

	a := NewAnalysis(NewExact())
	if err := a.Run(context.Background(), []organism.Snapshot{small, big, tie}); err != nil {
		t.Fatal(err)
	}
	sp := a.Results()[0]
	if sp.MaxComplexity != 3 {
		t.Fatalf("MaxComplexity = %d, want 3", sp.MaxComplexity)
	}
	if len(sp.Ranges) != 3 || sp.Ranges[2] != [2]int{-4, 9} {
		t.Errorf("Ranges = %v, want the first member with complexity 3", sp.Ranges)
	}

	// Results are copies.
	sp.Ranges[2] = [2]int{}
	if again := a.Results()[0]; again.Ranges[2] != [2]int{-4, 9} {
		t.Error("Results shares range storage with the analysis")
	}
}

func TestRunCancelled(t *testing.T) {
	pop := make([]organism.Snapshot, 200)
	for i := range pop {
		pop[i] = snap("ADD_NEURON 1", i, 1, 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := NewAnalysis(NewExact())
	a.OnProgress(func(done, total int) {
		if done == progressEvery {
			cancel()
		}
	})

	err := a.Run(ctx, pop)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
	done, total := a.Progress()
	if done != progressEvery || total != len(pop) {
		t.Errorf("Progress = %d/%d, want %d/%d", done, total, progressEvery, len(pop))
	}
	if n := len(a.Results()); n != progressEvery {
		t.Errorf("partial results = %d species, want %d", n, progressEvery)
	}
}

func TestRunResetsPreviousPass(t *testing.T) {
	a := NewAnalysis(NewExact())
	pop := []organism.Snapshot{snap("ADD_NEURON 1", 1, 1, 1)}
	for i := 0; i < 2; i++ {
		if err := a.Run(context.Background(), pop); err != nil {
			t.Fatal(err)
		}
	}
	got := a.Results()
	if len(got) != 1 || got[0].Count != 1 {
		t.Errorf("second pass = %+v, want one species with one member", got)
	}
}

func TestSummarize(t *testing.T) {
	list := []Species{
		{ID: 1, Count: 1},
		{ID: 2, Count: 5},
		{ID: 3, Count: 1},
	}
	st := Summarize(list)
	want := Stats{Count: 3, TotalMembers: 7, LargestSize: 5, LargestID: 2, Singletons: 2}
	if st != want {
		t.Errorf("Summarize = %+v, want %+v", st, want)
	}
}

func TestWriteCSV(t *testing.T) {
	a := NewAnalysis(NewExact())
	pop := []organism.Snapshot{
		snap("ADD_NEURON -1; SET_ACTIVITY 0", 0xabcdef, 4, 1),
		snap("ADD_NEURON -1; SET_ACTIVITY 0", 0xabcdef, 6, 1),
	}
	if err := a.Run(context.Background(), pop); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, 120, a.Results()); err != nil {
		t.Fatal(err)
	}

	var rows []Row
	if err := gocsv.Unmarshal(strings.NewReader(buf.String()), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.Tick != 120 || r.Colour != "#abcdef" || r.Count != 2 || r.AvgAge != 5 {
		t.Errorf("row = %+v", r)
	}
	if r.Archetype != "ADD_NEURON -1; SET_ACTIVITY 0" {
		t.Errorf("archetype = %q", r.Archetype)
	}
}
