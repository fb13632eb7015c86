package evaluation

import (
	"fmt"
	"strings"

	"synth-pump/internal/dataset"
	"synth-pump/internal/schema"
)

// ConsistencyReport is the outcome of validating a dataset against a
// declarative schema definition.
type ConsistencyReport struct {
	SchemaValidity     string             `json:"schema_validity"` // "PASS" or "FAIL"
	TypeConsistency    string             `json:"type_consistency"`
	RangeViolations    int                `json:"range_violations"`
	CategoryViolations int                `json:"category_violations"`
	NullRate           map[string]float64 `json:"null_rate"`
	IdentifierIssues   *string            `json:"identifier_issues"`
}

// ValidateConsistency checks every declared column of the definition
// against the dataset: declared types, numeric ranges, categorical
// domains, observed null rates, and identifier contiguity. A column
// with an unsupported type or missing from the dataset records a type
// issue and is not checked further.
func ValidateConsistency(ds *dataset.Dataset, def *schema.Definition) *ConsistencyReport {
	report := &ConsistencyReport{NullRate: make(map[string]float64)}
	var typeIssues []string

	for i := range def.Columns {
		col := &def.Columns[i]

		if !col.Type.Supported() {
			typeIssues = append(typeIssues, fmt.Sprintf("Unsupported type for %s", col.Name))
			continue
		}
		if !ds.HasColumn(col.Name) {
			typeIssues = append(typeIssues, fmt.Sprintf("Missing column: %s", col.Name))
			continue
		}

		cells := ds.Column(col.Name)
		report.NullRate[col.Name] = nullRate(cells)

		switch col.Type {
		case schema.KindInt:
			if !allCoercible(cells, intCoercible) {
				typeIssues = append(typeIssues, fmt.Sprintf("Column %s is not integer", col.Name))
			}
			report.RangeViolations += countRangeViolations(cells, col.Min, col.Max)

		case schema.KindFloat:
			if !allCoercible(cells, floatCoercible) {
				typeIssues = append(typeIssues, fmt.Sprintf("Column %s is not numeric", col.Name))
			}
			report.RangeViolations += countRangeViolations(cells, col.Min, col.Max)

		case schema.KindCategorical:
			report.CategoryViolations += countCategoryViolations(cells, col.Values)

		case schema.KindIdentifier:
			if msg := identifierIssue(cells, col.StartValue()); msg != "" {
				// only the latest failing identifier message is retained
				report.IdentifierIssues = &msg
			}
		}
	}

	if len(typeIssues) == 0 {
		report.TypeConsistency = "All columns match declared types"
	} else {
		report.TypeConsistency = strings.Join(typeIssues, "; ")
	}

	if len(typeIssues) == 0 && report.RangeViolations == 0 &&
		report.CategoryViolations == 0 && report.IdentifierIssues == nil {
		report.SchemaValidity = "PASS"
	} else {
		report.SchemaValidity = "FAIL"
	}
	return report
}

// identifierIssue verifies the identifier contract: no nulls, integer
// values, uniqueness, and exactly the contiguous range starting at
// start. An empty string means the column passes.
func identifierIssue(cells []interface{}, start int64) string {
	n := int64(len(cells))
	seen := make(map[int64]struct{}, len(cells))
	var min, max int64
	for i, v := range cells {
		if dataset.IsNull(v) {
			return "Identifier contains null values"
		}
		iv, ok := dataset.AsInt(v)
		if !ok {
			return "Identifier contains non-integer values"
		}
		if _, dup := seen[iv]; dup {
			return "Identifier contains duplicate values"
		}
		seen[iv] = struct{}{}
		if i == 0 || iv < min {
			min = iv
		}
		if i == 0 || iv > max {
			max = iv
		}
	}
	if min != start {
		return fmt.Sprintf("Identifier does not start from %d", start)
	}
	if max != start+n-1 {
		return "Identifier is not continuous"
	}
	return ""
}

func nullRate(cells []interface{}) float64 {
	if len(cells) == 0 {
		return 0
	}
	nulls := 0
	for _, v := range cells {
		if dataset.IsNull(v) {
			nulls++
		}
	}
	return float64(nulls) / float64(len(cells))
}

func allCoercible(cells []interface{}, coercible func(interface{}) bool) bool {
	for _, v := range cells {
		if dataset.IsNull(v) {
			continue
		}
		if !coercible(v) {
			return false
		}
	}
	return true
}

func intCoercible(v interface{}) bool {
	_, ok := dataset.AsInt(v)
	return ok
}

func floatCoercible(v interface{}) bool {
	_, ok := dataset.AsFloat(v)
	return ok
}

func countRangeViolations(cells []interface{}, min, max *float64) int {
	count := 0
	for _, v := range cells {
		f, ok := dataset.AsFloat(v)
		if !ok {
			continue
		}
		if min != nil && f < *min {
			count++
		} else if max != nil && f > *max {
			count++
		}
	}
	return count
}

func countCategoryViolations(cells []interface{}, values []string) int {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	count := 0
	for _, v := range cells {
		if dataset.IsNull(v) {
			continue
		}
		if _, ok := allowed[dataset.Format(v)]; !ok {
			count++
		}
	}
	return count
}
