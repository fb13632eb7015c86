package engine

import (
	"math"

	"github.com/sirupsen/logrus"

	"synth-pump/internal/dataset"
	"synth-pump/internal/schema"
)

// degenerateStd is the synthetic-std floor below which moment matching
// collapses the column to the original mean.
const degenerateStd = 1e-6

// Reconcile repairs raw model output into schema-conformant data:
// categorical cells are string-cast, numeric columns are moment-matched
// to the original statistics then clipped and cast, identifier columns
// are regenerated from scratch, and column order is restored.
//
// A schema column missing from the raw output is skipped with a logged
// warning rather than failing the whole generation.
func Reconcile(raw *dataset.Dataset, sch *schema.Schema, stats map[string]Stats, n int, log *logrus.Logger) (*dataset.Dataset, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	out := dataset.New()
	for _, col := range sch.TrainableColumns() {
		if !raw.HasColumn(col.Name) {
			log.WithField("column", col.Name).Warn("column missing from model output, skipping")
			continue
		}
		cells := raw.Column(col.Name)

		if col.Kind == schema.KindCategorical {
			out.SetColumn(col.Name, castCategorical(cells))
			continue
		}

		repaired := cells
		if st, ok := stats[col.Name]; ok {
			repaired = momentMatch(repaired, st)
		}
		repaired = clip(repaired, col.MinValue, col.MaxValue)
		out.SetColumn(col.Name, castNumeric(repaired, col.Kind))
	}

	for _, col := range sch.IdentifierColumns() {
		start := int64(1)
		if col.MinValue != nil {
			start = int64(*col.MinValue)
		}
		out.SetColumn(col.Name, SequentialIdentifier(start, n))
	}

	// Restore original column order, minus anything that was skipped.
	var order []string
	for _, name := range sch.ColumnOrder() {
		if out.HasColumn(name) {
			order = append(order, name)
		}
	}
	if err := out.Reorder(order); err != nil {
		return nil, err
	}
	return out, nil
}

// SequentialIdentifier builds the contiguous range [start, start+n-1].
func SequentialIdentifier(start int64, n int) []interface{} {
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		out[i] = start + int64(i)
	}
	return out
}

// castCategorical forces every non-null cell to its string form; no
// numeric reinterpretation happens on categorical columns.
func castCategorical(cells []interface{}) []interface{} {
	out := make([]interface{}, len(cells))
	for i, v := range cells {
		if dataset.IsNull(v) {
			continue
		}
		out[i] = dataset.Format(v)
	}
	return out
}

// momentMatch rescales the column so its sample mean and std equal the
// original column's. A degenerate synthetic spread collapses every
// value to the original mean.
func momentMatch(cells []interface{}, st Stats) []interface{} {
	var vals []float64
	for _, v := range cells {
		if f, ok := dataset.AsFloat(v); ok {
			vals = append(vals, f)
		}
	}
	m := mean(vals)
	sd := sampleStd(vals)

	out := make([]interface{}, len(cells))
	for i, v := range cells {
		f, ok := dataset.AsFloat(v)
		if !ok {
			out[i] = v
			continue
		}
		if sd < degenerateStd {
			out[i] = st.Mean
		} else {
			out[i] = (f-m)/sd*st.Std + st.Mean
		}
	}
	return out
}

// clip bounds numeric cells to [min, max]; an absent bound leaves that
// side unclipped.
func clip(cells []interface{}, min, max *float64) []interface{} {
	out := make([]interface{}, len(cells))
	for i, v := range cells {
		f, ok := dataset.AsFloat(v)
		if !ok {
			out[i] = v
			continue
		}
		if min != nil && f < *min {
			f = *min
		}
		if max != nil && f > *max {
			f = *max
		}
		out[i] = f
	}
	return out
}

// castNumeric rounds int columns to whole values and leaves floats as is.
func castNumeric(cells []interface{}, kind schema.Kind) []interface{} {
	out := make([]interface{}, len(cells))
	for i, v := range cells {
		f, ok := dataset.AsFloat(v)
		if !ok {
			out[i] = v
			continue
		}
		if kind == schema.KindInt {
			out[i] = int64(math.Round(f))
		} else {
			out[i] = f
		}
	}
	return out
}
