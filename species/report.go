package species

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// Row is the CSV form of a species.
type Row struct {
	Tick          int     `csv:"tick"`
	ID            int     `csv:"species"`
	Colour        string  `csv:"colour"`
	Count         int     `csv:"count"`
	MaxAge        int     `csv:"max_age"`
	AvgAge        float64 `csv:"avg_age"`
	MaxComplexity int     `csv:"max_complexity"`
	RecipeLen     int     `csv:"recipe_len"`
	Archetype     string  `csv:"archetype"` // assembly text
}

// Rows converts species to CSV rows stamped with tick.
func Rows(tick int, list []Species) []Row {
	rows := make([]Row, len(list))
	for i := range list {
		sp := &list[i]
		rows[i] = Row{
			Tick:          tick,
			ID:            sp.ID,
			Colour:        fmt.Sprintf("#%06x", sp.Colour),
			Count:         sp.Count,
			MaxAge:        sp.MaxAge,
			AvgAge:        sp.AvgAge(),
			MaxComplexity: sp.MaxComplexity,
			RecipeLen:     sp.Archetype.Len(),
			Archetype:     sp.Archetype.Disassemble(),
		}
	}
	return rows
}

// WriteCSV writes the species as CSV with a header row.
func WriteCSV(w io.Writer, tick int, list []Species) error {
	if err := gocsv.Marshal(Rows(tick, list), w); err != nil {
		return fmt.Errorf("writing species csv: %w", err)
	}
	return nil
}
