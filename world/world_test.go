package world

import (
	"errors"
	"testing"

	"github.com/pthm-cable/evolve/config"
	"github.com/pthm-cable/evolve/genome"
	"github.com/pthm-cable/evolve/ground"
	"github.com/pthm-cable/evolve/organism"
)

// testConfig returns a quiet world: uniform mild climate, no costs, no
// decay, no seeding and exact replication.
func testConfig(width, height int) *config.Config {
	cfg := config.Default()
	cfg.World.Width, cfg.World.Height = width, height
	cfg.Climate = config.ClimateConfig{MinTemperature: 50, MaxTemperature: 50}
	cfg.Costs = config.CostsConfig{}
	cfg.HalfLife = config.HalfLifeConfig{}
	cfg.Mutation = config.MutationConfig{}
	cfg.Energy.AcidToxicity = 0
	cfg.Seed.Count = 0
	return cfg
}

func newTestWorld(t *testing.T, cfg *config.Config) *World {
	t.Helper()
	w := New(cfg, 1)
	t.Cleanup(w.Close)
	return w
}

func spawn(t *testing.T, w *World, text string, x, y, energy int) *organism.Organism {
	t.Helper()
	o, err := w.Spawn(genome.MustAssemble(text, 0x00ff00), x, y, energy)
	if err != nil {
		t.Fatalf("Spawn(%q): %v", text, err)
	}
	return o
}

func TestSpawnRejectsTakenCells(t *testing.T) {
	w := newTestWorld(t, testConfig(10, 10))
	spawn(t, w, "", 3, 3, 10)

	if _, err := w.Spawn(genome.NewRecipe(0), 3, 3, 10); !errors.Is(err, ErrCellTaken) {
		t.Errorf("Spawn on occupied cell: err = %v, want ErrCellTaken", err)
	}

	if err := w.Space().Set(4, 4, ground.Wall, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Spawn(genome.NewRecipe(0), 4, 4, 10); !errors.Is(err, ErrCellTaken) {
		t.Errorf("Spawn on wall: err = %v, want ErrCellTaken", err)
	}

	// Coordinates wrap onto the torus.
	o := spawn(t, w, "", 12, -1, 10)
	if o.X != 2 || o.Y != 9 {
		t.Errorf("wrapped spawn at (%d, %d), want (2, 9)", o.X, o.Y)
	}
	if w.Population() != 2 {
		t.Errorf("Population = %d, want 2", w.Population())
	}
}

func TestSnapshotOrderedByBirth(t *testing.T) {
	w := newTestWorld(t, testConfig(10, 10))
	a := spawn(t, w, "ADD_NEURON 3", 7, 7, 10)
	b := spawn(t, w, "", 1, 1, 20)

	snap := w.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len(Snapshot) = %d, want 2", len(snap))
	}
	if snap[0].ID != a.ID || snap[1].ID != b.ID {
		t.Errorf("snapshot order = [%d %d], want [%d %d]", snap[0].ID, snap[1].ID, a.ID, b.ID)
	}
	if snap[0].Complexity != 1 || snap[1].Energy != 20 {
		t.Errorf("snapshot contents = %+v", snap)
	}
}

func TestGroundIsACopy(t *testing.T) {
	w := newTestWorld(t, testConfig(4, 4))
	g := w.Ground()
	g.Add(0, 0, ground.Resources, 5)
	if got := w.Space().Get(0, 0, ground.Resources); got != 0 {
		t.Errorf("world resources = %d after editing the copy, want 0", got)
	}
}

func TestCopyInstructionsUsesRadiationRate(t *testing.T) {
	cfg := testConfig(4, 4)
	w := newTestWorld(t, cfg)
	o := spawn(t, w, "ADD_NEURON 1; ADD_LINK 0 30; SET_ACTIVITY 2", 0, 0, 10)

	cfg.Mutation.Rate = 0
	cfg.Mutation.RadiationRate = 1 << 20
	if got := w.CopyInstructions(o, o.Recipe()); !got.Equal(o.Recipe()) {
		t.Error("unirradiated parent should copy at the normal rate (exact)")
	}

	if err := w.Space().Set(0, 0, ground.Radiation, 1); err != nil {
		t.Fatal(err)
	}
	cfg.Mutation.Rate = 1 << 20
	cfg.Mutation.RadiationRate = 0
	if got := w.CopyInstructions(o, o.Recipe()); !got.Equal(o.Recipe()) {
		t.Error("irradiated parent should copy at the radiation rate (exact)")
	}
}

func TestListeners(t *testing.T) {
	w := newTestWorld(t, testConfig(4, 4))

	var calls []string
	first := w.AddListener(func(*World) { calls = append(calls, "first") })
	w.AddListener(func(*World) { calls = append(calls, "second") })

	w.Tick()
	if !w.RemoveListener(first) {
		t.Fatal("RemoveListener(first) = false")
	}
	if w.RemoveListener(first) {
		t.Error("RemoveListener twice = true")
	}
	w.Tick()

	want := []string{"first", "second", "second"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, calls[i], want[i])
		}
	}
}

func TestListenerMayRemoveItself(t *testing.T) {
	w := newTestWorld(t, testConfig(4, 4))

	n := 0
	var id ListenerID
	id = w.AddListener(func(w *World) {
		n++
		w.RemoveListener(id)
	})
	w.Tick()
	w.Tick()
	if n != 1 {
		t.Errorf("self-removing listener ran %d times, want 1", n)
	}
}

func TestWindowFlushes(t *testing.T) {
	cfg := testConfig(6, 6)
	cfg.Telemetry.WindowTicks = 3
	w := newTestWorld(t, cfg)
	spawn(t, w, "ADD_NEURON 0", 1, 1, 100)

	for i := 0; i < 2; i++ {
		w.Tick()
		if _, ok := w.Window(); ok {
			t.Fatalf("window flushed at tick %d", w.Time())
		}
	}
	w.Tick()
	stats, ok := w.Window()
	if !ok {
		t.Fatal("window not flushed at tick 3")
	}
	if stats.WindowEndTick != 3 || stats.Population != 1 || stats.ComplexityMax != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func() []organism.Snapshot {
		cfg := config.Default()
		cfg.World.Width, cfg.World.Height = 24, 16
		w := New(cfg, 42)
		defer w.Close()
		for i := 0; i < 200; i++ {
			w.Tick()
		}
		return w.Snapshot()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("population %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].X != b[i].X || a[i].Y != b[i].Y || a[i].Energy != b[i].Energy {
			t.Fatalf("organism %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if !a[i].Recipe.Equal(b[i].Recipe) {
			t.Fatalf("organism %d recipe differs", i)
		}
	}
}
