package engine

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"synth-pump/internal/dataset"
	"synth-pump/internal/schema"
)

// Stats captures the first two moments of a numeric column, taken once
// at fit time from the real trainable data.
type Stats struct {
	Mean float64
	Std  float64
}

// FittedSession is the immutable state of one fit→generate lifecycle:
// the inferred schema, the original statistics, and the trained model.
// Only Fit can produce one, so generating without fitting is impossible
// by construction.
type FittedSession struct {
	Schema *schema.Schema
	Stats  map[string]Stats

	model GenerativeModel
	log   *logrus.Logger
}

// Fit infers the schema, excludes identifier columns, trains the model
// on the trainable columns, and captures the original statistics.
func Fit(data *dataset.Dataset, model GenerativeModel, categoricalThreshold int, log *logrus.Logger) (*FittedSession, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	sch := schema.Infer(data, categoricalThreshold)
	log.WithFields(logrus.Fields{
		"rows":        sch.RowCount,
		"columns":     sch.ColumnCount,
		"numeric":     len(sch.NumericColumns()),
		"categorical": len(sch.CategoricalColumns()),
		"identifiers": len(sch.IdentifierColumns()),
	}).Info("schema inferred")

	trainable := data.Select(sch.TrainableNames())
	stats := computeStatistics(trainable, sch)

	if err := model.Fit(trainable, sch.DiscreteNames()); err != nil {
		return nil, fmt.Errorf("model training failed: %w", err)
	}
	log.Info("model training complete")

	return &FittedSession{Schema: sch, Stats: stats, model: model, log: log}, nil
}

// Generate samples n raw rows from the trained model and reconciles
// them into schema-conformant output.
func (s *FittedSession) Generate(n int) (*dataset.Dataset, error) {
	raw, err := s.model.Sample(n)
	if err != nil {
		return nil, fmt.Errorf("model sampling failed: %w", err)
	}
	return Reconcile(raw, s.Schema, s.Stats, n, s.log)
}

// computeStatistics records mean and sample std for each numeric
// trainable column; nulls are dropped first.
func computeStatistics(data *dataset.Dataset, sch *schema.Schema) map[string]Stats {
	stats := make(map[string]Stats)
	for _, col := range sch.NumericColumns() {
		if !data.HasColumn(col.Name) {
			continue
		}
		var vals []float64
		for _, v := range data.Column(col.Name) {
			if f, ok := dataset.AsFloat(v); ok {
				vals = append(vals, f)
			}
		}
		stats[col.Name] = Stats{Mean: mean(vals), Std: sampleStd(vals)}
	}
	return stats
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// sampleStd is the n-1 standard deviation, 0 for fewer than 2 values.
func sampleStd(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return 0
	}
	m := mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}
