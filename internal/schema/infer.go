package schema

import (
	"sort"

	"synth-pump/internal/dataset"
)

// identifierUniqueness is the distinct-value ratio above which an
// all-integral numeric column is treated as a row identifier.
const identifierUniqueness = 0.95

// DefaultCategoricalThreshold is the max distinct values for a numeric
// column to still be treated as categorical.
const DefaultCategoricalThreshold = 10

// Infer classifies every column of the dataset and returns the schema.
//
// Per column, in order: textual values make it categorical; numeric
// columns with >95% distinct integral values become identifiers; numeric
// columns with at most categoricalThreshold distinct values become
// categorical; everything else is int or float with an observed range.
// The identifier check runs before the low-cardinality check, so a
// high-uniqueness float column never becomes an identifier.
func Infer(ds *dataset.Dataset, categoricalThreshold int) *Schema {
	if categoricalThreshold <= 0 {
		categoricalThreshold = DefaultCategoricalThreshold
	}

	s := &Schema{
		RowCount:    ds.NumRows(),
		ColumnCount: ds.NumCols(),
	}
	for _, name := range ds.Names() {
		s.Columns = append(s.Columns, inferColumn(name, ds.Column(name), categoricalThreshold))
	}
	return s
}

func inferColumn(name string, col []interface{}, categoricalThreshold int) ColumnInfo {
	info := ColumnInfo{Name: name, Kind: KindCategorical}

	nulls := 0
	var nonNull []interface{}
	for _, v := range col {
		if dataset.IsNull(v) {
			nulls++
		} else {
			nonNull = append(nonNull, v)
		}
	}
	if len(col) > 0 {
		info.MissingRate = float64(nulls) / float64(len(col))
	}

	// All-null (or zero-row) column: categorical with an empty category
	// set; the missing rate is the only signal left.
	if len(nonNull) == 0 {
		info.Categories = []string{}
		return info
	}

	textual := false
	allIntegral := true
	for _, v := range nonNull {
		if _, ok := dataset.AsFloat(v); !ok {
			textual = true
			break
		}
		if _, ok := dataset.AsInt(v); !ok {
			allIntegral = false
		}
	}

	if textual {
		info.Categories = distinctStrings(nonNull)
		return info
	}

	distinct := countDistinct(nonNull)
	ratio := float64(distinct) / float64(len(nonNull))

	if ratio > identifierUniqueness && allIntegral {
		info.Kind = KindIdentifier
		info.IsIdentifier = true
		info.MinValue, info.MaxValue = numericRange(nonNull)
		return info
	}

	if distinct <= categoricalThreshold {
		info.Categories = distinctStrings(nonNull)
		return info
	}

	if allIntegral {
		info.Kind = KindInt
	} else {
		info.Kind = KindFloat
	}
	info.MinValue, info.MaxValue = numericRange(nonNull)
	return info
}

func distinctStrings(values []interface{}) []string {
	seen := make(map[string]struct{})
	for _, v := range values {
		seen[dataset.Format(v)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func countDistinct(values []interface{}) int {
	seen := make(map[string]struct{})
	for _, v := range values {
		seen[dataset.Format(v)] = struct{}{}
	}
	return len(seen)
}

func numericRange(values []interface{}) (*float64, *float64) {
	var min, max float64
	for i, v := range values {
		f, _ := dataset.AsFloat(v)
		if i == 0 || f < min {
			min = f
		}
		if i == 0 || f > max {
			max = f
		}
	}
	return &min, &max
}
