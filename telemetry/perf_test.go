package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)
	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseGrowth)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseOrganisms)
		time.Sleep(300 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Ticks != 5 {
		t.Errorf("Ticks = %d, want 5", stats.Ticks)
	}
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseGrowth] <= 0 || stats.PhaseAvg[PhaseOrganisms] <= 0 {
		t.Errorf("phase averages = %v, want growth and organisms timed", stats.PhaseAvg)
	}
	if stats.PhaseAvg[PhaseSeed] != 0 {
		t.Errorf("seed phase = %v, want 0", stats.PhaseAvg[PhaseSeed])
	}
	if stats.PhasePct[PhaseOrganisms] <= stats.PhasePct[PhaseGrowth] {
		t.Errorf("organisms %.1f%% <= growth %.1f%%, want larger",
			stats.PhasePct[PhaseOrganisms], stats.PhasePct[PhaseGrowth])
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("min/avg/max = %v/%v/%v, want ordered",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)
	for i := 0; i < 12; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseDecay)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.Ticks != 5 {
		t.Errorf("Ticks = %d, want window size 5", stats.Ticks)
	}
	if stats.AvgTickDuration > 0 && stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollectorEmptyAndNil(t *testing.T) {
	var nilPC *PerfCollector
	nilPC.StartTick()
	nilPC.StartPhase(PhaseSeed)
	nilPC.EndTick()

	for name, pc := range map[string]*PerfCollector{"empty": NewPerfCollector(10), "nil": nilPC} {
		if stats := pc.Stats(); stats != (PerfStats{}) {
			t.Errorf("%s collector stats = %+v, want zero", name, stats)
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseSeed, "seed"},
		{PhaseListeners, "listeners"},
		{NumPhases, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.phase), got, tt.want)
		}
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 250 * time.Microsecond
	s.PhasePct[PhaseOrganisms] = 75
	s.PhasePct[PhaseGrowth] = 20

	row := s.ToCSV(500)
	if row.WindowEnd != 500 || row.AvgTickUS != 250 {
		t.Errorf("row = %+v, want window 500, 250us", row)
	}
	if row.OrganismsPct != 75 || row.GrowthPct != 20 || row.SeedPct != 0 {
		t.Errorf("phase pct = %v/%v/%v, want 75/20/0", row.OrganismsPct, row.GrowthPct, row.SeedPct)
	}
}
