package schema

// Kind classifies a column.
type Kind string

const (
	KindInt         Kind = "int"
	KindFloat       Kind = "float"
	KindCategorical Kind = "categorical"
	KindIdentifier  Kind = "identifier"
)

// Numeric reports whether the kind carries a numeric range.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Supported reports whether the kind is one the pipeline understands.
func (k Kind) Supported() bool {
	switch k {
	case KindInt, KindFloat, KindCategorical, KindIdentifier:
		return true
	}
	return false
}

// ColumnInfo is the inferred metadata for a single column. Exactly one
// of {numeric range, category set} is populated for non-identifier
// columns; identifiers carry the observed min/max.
type ColumnInfo struct {
	Name         string   `json:"name"`
	Kind         Kind     `json:"kind"`
	MinValue     *float64 `json:"min_value,omitempty"`
	MaxValue     *float64 `json:"max_value,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	MissingRate  float64  `json:"missing_rate"`
	IsIdentifier bool     `json:"is_identifier"`
}

// Schema is the complete inferred description of a tabular dataset.
// Column order matches the source dataset and is preserved end-to-end
// through generation output.
type Schema struct {
	Columns     []ColumnInfo `json:"columns"`
	RowCount    int          `json:"row_count"`
	ColumnCount int          `json:"column_count"`
}

// Column returns the info for name, or nil if absent.
func (s *Schema) Column(name string) *ColumnInfo {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i]
		}
	}
	return nil
}

// TrainableColumns returns every non-identifier column, in order.
func (s *Schema) TrainableColumns() []ColumnInfo {
	var out []ColumnInfo
	for _, c := range s.Columns {
		if !c.IsIdentifier {
			out = append(out, c)
		}
	}
	return out
}

// IdentifierColumns returns the identifier columns, in order.
func (s *Schema) IdentifierColumns() []ColumnInfo {
	var out []ColumnInfo
	for _, c := range s.Columns {
		if c.IsIdentifier {
			out = append(out, c)
		}
	}
	return out
}

// NumericColumns returns the trainable int/float columns, in order.
func (s *Schema) NumericColumns() []ColumnInfo {
	var out []ColumnInfo
	for _, c := range s.Columns {
		if !c.IsIdentifier && c.Kind.Numeric() {
			out = append(out, c)
		}
	}
	return out
}

// CategoricalColumns returns the trainable categorical columns, in order.
func (s *Schema) CategoricalColumns() []ColumnInfo {
	var out []ColumnInfo
	for _, c := range s.Columns {
		if !c.IsIdentifier && c.Kind == KindCategorical {
			out = append(out, c)
		}
	}
	return out
}

// TrainableNames returns the names of every trainable column, in order.
func (s *Schema) TrainableNames() []string {
	var out []string
	for _, c := range s.TrainableColumns() {
		out = append(out, c.Name)
	}
	return out
}

// DiscreteNames returns the names of trainable categorical columns; this
// is what a generative model receives as its discrete column list.
func (s *Schema) DiscreteNames() []string {
	var out []string
	for _, c := range s.CategoricalColumns() {
		out = append(out, c.Name)
	}
	return out
}

// ColumnOrder returns all column names in schema order.
func (s *Schema) ColumnOrder() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}
