package world

import "github.com/pthm-cable/evolve/ground"

// Temperature returns the temperature of (x, y) at the current tick.
func (w *World) Temperature(x, y int) int {
	x, y = w.space.Wrap(x, y)
	return w.rowTemperature(y) - w.space.Get(x, y, ground.Elevation)
}

// rowTemperature is the temperature of row y before elevation: latitude
// interpolated from the poles (rows 0 and height-1) to the equator, plus the
// seasonal offset.
func (w *World) rowTemperature(y int) int {
	c := w.cfg.Climate
	half := w.space.Height() / 2
	lat := c.MaxTemperature
	if half > 0 {
		d := min(abs(y-half), half)
		lat -= (c.MaxTemperature - c.MinTemperature) * d / half
	}
	return lat + w.season()
}

// season is a triangular wave over YearLength ticks: zero at the turn of the
// year, rising to TempVariation at mid-year.
func (w *World) season() int {
	c := w.cfg.Climate
	if c.TempVariation == 0 || c.YearLength <= 0 {
		return 0
	}
	phase := w.tick % c.YearLength
	return c.TempVariation * (c.YearLength - abs(2*phase-c.YearLength)) / c.YearLength
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
