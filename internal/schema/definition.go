package schema

import (
	"encoding/json"
	"fmt"
)

// ColumnDef is one declared column of a schema-only (Mode B) generation
// request. Only the fields relevant to its Type are consulted.
type ColumnDef struct {
	Name     string   `json:"name"`
	Type     Kind     `json:"type"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Values   []string `json:"values,omitempty"`
	Start    *int64   `json:"start,omitempty"`
	NullRate float64  `json:"null_rate,omitempty"`
}

// StartValue returns the declared identifier start, defaulting to 1.
func (c *ColumnDef) StartValue() int64 {
	if c.Start != nil {
		return *c.Start
	}
	return 1
}

// Definition is a caller-supplied declarative schema for Mode B
// generation. Seed makes sampling and null injection deterministic.
// ForceSequentialID opts in to overwriting a column literally named
// "id" with the sequential range 1..n regardless of its declared type.
type Definition struct {
	Seed              int64       `json:"seed"`
	ForceSequentialID bool        `json:"force_sequential_id,omitempty"`
	Columns           []ColumnDef `json:"columns"`
}

// ValidationError reports a malformed column declaration. It is fatal:
// no generation work starts while the definition is invalid.
type ValidationError struct {
	Column string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("invalid schema definition: %s", e.Reason)
	}
	return fmt.Sprintf("invalid schema definition: column %q: %s", e.Column, e.Reason)
}

// ParseDefinition decodes and validates a JSON schema definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse schema definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate fails fast on the first malformed declaration.
func (d *Definition) Validate() error {
	if len(d.Columns) == 0 {
		return &ValidationError{Reason: "must declare at least one column"}
	}
	for i := range d.Columns {
		col := &d.Columns[i]
		if col.Name == "" {
			return &ValidationError{Reason: fmt.Sprintf("column %d has no name", i)}
		}
		if !col.Type.Supported() {
			return &ValidationError{Column: col.Name, Reason: fmt.Sprintf("unsupported type %q", col.Type)}
		}
		if col.Type.Numeric() {
			if col.Min == nil || col.Max == nil {
				return &ValidationError{Column: col.Name, Reason: "numeric column requires min and max"}
			}
			if *col.Min > *col.Max {
				return &ValidationError{Column: col.Name, Reason: "min must be <= max"}
			}
		}
		if col.Type == KindCategorical && len(col.Values) == 0 {
			return &ValidationError{Column: col.Name, Reason: "categorical column requires a values list"}
		}
		if col.NullRate < 0 || col.NullRate > 1 {
			return &ValidationError{Column: col.Name, Reason: "null_rate must be between 0 and 1"}
		}
	}
	return nil
}
