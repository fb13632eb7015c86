package engine

import (
	"math/rand"

	"synth-pump/internal/dataset"
	"synth-pump/internal/schema"
)

// GenerateFromDefinition synthesizes rows directly from a declarative
// schema (Mode B): no training step, fully deterministic for a given
// definition seed. Columns are generated independently and in order;
// each column consumes its generation draws and then its null-mask
// draws from the single seeded stream.
func GenerateFromDefinition(def *schema.Definition, rows int) (*dataset.Dataset, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(def.Seed))
	out := dataset.New()

	for i := range def.Columns {
		col := &def.Columns[i]
		cells := generateColumn(col, rows, rng)
		if col.NullRate > 0 {
			applyNulls(cells, col.NullRate, rng)
		}
		out.SetColumn(col.Name, cells)
	}

	// Opt-in compatibility shim: downstream consumers that expect an
	// auto-incrementing "id" can force it regardless of declared type.
	if def.ForceSequentialID && out.HasColumn("id") {
		out.SetColumn("id", SequentialIdentifier(1, rows))
	}

	return out, nil
}

func generateColumn(col *schema.ColumnDef, rows int, rng *rand.Rand) []interface{} {
	cells := make([]interface{}, rows)
	switch col.Type {
	case schema.KindIdentifier:
		return SequentialIdentifier(col.StartValue(), rows)
	case schema.KindInt:
		lo := int64(*col.Min)
		hi := int64(*col.Max)
		for i := range cells {
			cells[i] = lo + rng.Int63n(hi-lo+1)
		}
	case schema.KindFloat:
		lo, hi := *col.Min, *col.Max
		for i := range cells {
			cells[i] = lo + rng.Float64()*(hi-lo)
		}
	case schema.KindCategorical:
		for i := range cells {
			cells[i] = col.Values[rng.Intn(len(col.Values))]
		}
	}
	return cells
}

// applyNulls independently marks each cell null with probability rate.
// Cells keep their typed representation, so int columns stay integer
// valued with nulls instead of drifting to floats.
func applyNulls(cells []interface{}, rate float64, rng *rand.Rand) {
	for i := range cells {
		if rng.Float64() < rate {
			cells[i] = nil
		}
	}
}
