package engine

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"synth-pump/internal/dataset"
)

// ErrNotFitted is returned when sampling is requested from a model that
// was never trained.
var ErrNotFitted = errors.New("engine: model is not fitted")

// GenerativeModel is the externally-supplied capability the pipeline
// drives. Training internals are opaque; the pipeline only needs
// fit-then-sample semantics over trainable columns.
type GenerativeModel interface {
	Fit(data *dataset.Dataset, discreteColumns []string) error
	Sample(n int) (*dataset.Dataset, error)
}

// BootstrapModel is the built-in baseline implementation: a seeded
// per-column empirical resampler. Numeric draws get Gaussian jitter
// proportional to the column's spread so sampled marginals are not
// literal copies. It doubles as the test double for the pipeline.
type BootstrapModel struct {
	Seed   int64
	Jitter float64 // fraction of column std added as noise, default 0.05

	fitted  bool
	names   []string
	columns map[string][]interface{}
	stds    map[string]float64
	rng     *rand.Rand
}

func NewBootstrapModel(seed int64) *BootstrapModel {
	return &BootstrapModel{Seed: seed, Jitter: 0.05}
}

func (m *BootstrapModel) Fit(data *dataset.Dataset, discreteColumns []string) error {
	if data.NumRows() == 0 {
		return fmt.Errorf("engine: cannot fit on an empty dataset")
	}
	discrete := make(map[string]bool, len(discreteColumns))
	for _, n := range discreteColumns {
		discrete[n] = true
	}

	m.names = data.Names()
	m.columns = make(map[string][]interface{}, len(m.names))
	m.stds = make(map[string]float64)
	for _, name := range m.names {
		col := data.Column(name)
		stored := make([]interface{}, len(col))
		copy(stored, col)
		m.columns[name] = stored

		if !discrete[name] {
			m.stds[name] = columnStd(col)
		}
	}
	m.rng = rand.New(rand.NewSource(m.Seed))
	m.fitted = true
	return nil
}

func (m *BootstrapModel) Sample(n int) (*dataset.Dataset, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	out := dataset.New(m.names...)
	row := make([]interface{}, len(m.names))
	for i := 0; i < n; i++ {
		for j, name := range m.names {
			src := m.columns[name]
			v := src[m.rng.Intn(len(src))]
			if std, ok := m.stds[name]; ok && !dataset.IsNull(v) {
				f, _ := dataset.AsFloat(v)
				row[j] = f + m.rng.NormFloat64()*std*m.Jitter
			} else {
				row[j] = v
			}
		}
		if err := out.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// gobCell flattens the interface{} cell for gob encoding.
type gobCell struct {
	Kind byte // 0 null, 1 int, 2 float, 3 string
	I    int64
	F    float64
	S    string
}

type bootstrapSnapshot struct {
	Seed    int64
	Jitter  float64
	Names   []string
	Columns map[string][]gobCell
	Stds    map[string]float64
}

// Save persists the fitted state to disk.
func (m *BootstrapModel) Save(path string) error {
	if !m.fitted {
		return ErrNotFitted
	}
	snap := bootstrapSnapshot{
		Seed:    m.Seed,
		Jitter:  m.Jitter,
		Names:   m.names,
		Columns: make(map[string][]gobCell, len(m.columns)),
		Stds:    m.stds,
	}
	for name, col := range m.columns {
		cells := make([]gobCell, len(col))
		for i, v := range col {
			switch x := v.(type) {
			case nil:
				cells[i] = gobCell{Kind: 0}
			case int64:
				cells[i] = gobCell{Kind: 1, I: x}
			case float64:
				cells[i] = gobCell{Kind: 2, F: x}
			case string:
				cells[i] = gobCell{Kind: 3, S: x}
			default:
				cells[i] = gobCell{Kind: 3, S: dataset.Format(v)}
			}
		}
		snap.Columns[name] = cells
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Load restores a previously saved model.
func (m *BootstrapModel) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read model: %w", err)
	}
	var snap bootstrapSnapshot
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode model: %w", err)
	}

	m.Seed = snap.Seed
	m.Jitter = snap.Jitter
	m.names = snap.Names
	m.stds = snap.Stds
	m.columns = make(map[string][]interface{}, len(snap.Columns))
	for name, cells := range snap.Columns {
		col := make([]interface{}, len(cells))
		for i, c := range cells {
			switch c.Kind {
			case 1:
				col[i] = c.I
			case 2:
				col[i] = c.F
			case 3:
				col[i] = c.S
			}
		}
		m.columns[name] = col
	}
	m.rng = rand.New(rand.NewSource(m.Seed))
	m.fitted = true
	return nil
}

// columnStd is the sample standard deviation of a column's non-null
// numeric values, 0 when undefined.
func columnStd(col []interface{}) float64 {
	var vals []float64
	for _, v := range col {
		if f, ok := dataset.AsFloat(v); ok {
			vals = append(vals, f)
		}
	}
	return sampleStd(vals)
}
