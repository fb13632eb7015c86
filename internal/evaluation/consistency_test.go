package evaluation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-pump/internal/dataset"
	"synth-pump/internal/evaluation"
	"synth-pump/internal/schema"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func validDefinition() *schema.Definition {
	return &schema.Definition{
		Columns: []schema.ColumnDef{
			{Name: "id", Type: schema.KindIdentifier},
			{Name: "age", Type: schema.KindInt, Min: f64(18), Max: f64(90)},
			{Name: "plan", Type: schema.KindCategorical, Values: []string{"free", "pro"}},
		},
	}
}

func conformingDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	d := dataset.New("id", "age", "plan")
	plans := []string{"free", "pro"}
	for i := 0; i < 20; i++ {
		require.NoError(t, d.AppendRow(int64(i+1), int64(18+i), plans[i%2]))
	}
	return d
}

func TestValidateConsistency_Pass(t *testing.T) {
	report := evaluation.ValidateConsistency(conformingDataset(t), validDefinition())

	assert.Equal(t, "PASS", report.SchemaValidity)
	assert.Equal(t, "All columns match declared types", report.TypeConsistency)
	assert.Zero(t, report.RangeViolations)
	assert.Zero(t, report.CategoryViolations)
	assert.Nil(t, report.IdentifierIssues)
	assert.Equal(t, 0.0, report.NullRate["age"])
}

func TestValidateConsistency_MissingColumn(t *testing.T) {
	d := conformingDataset(t)
	def := validDefinition()
	def.Columns = append(def.Columns, schema.ColumnDef{
		Name: "income", Type: schema.KindFloat, Min: f64(0), Max: f64(1e6),
	})

	report := evaluation.ValidateConsistency(d, def)
	assert.Equal(t, "FAIL", report.SchemaValidity)
	assert.Contains(t, report.TypeConsistency, "Missing column: income")
}

func TestValidateConsistency_RangeViolations(t *testing.T) {
	d := dataset.New("age")
	for _, v := range []interface{}{int64(17), int64(18), int64(90), int64(91), nil} {
		require.NoError(t, d.AppendRow(v))
	}
	def := &schema.Definition{Columns: []schema.ColumnDef{
		{Name: "age", Type: schema.KindInt, Min: f64(18), Max: f64(90)},
	}}

	report := evaluation.ValidateConsistency(d, def)
	assert.Equal(t, "FAIL", report.SchemaValidity)
	assert.Equal(t, 2, report.RangeViolations)
	assert.InDelta(t, 0.2, report.NullRate["age"], 1e-12)
}

func TestValidateConsistency_TypeMismatch(t *testing.T) {
	d := dataset.New("age")
	require.NoError(t, d.AppendRow(int64(20)))
	require.NoError(t, d.AppendRow("twenty"))
	def := &schema.Definition{Columns: []schema.ColumnDef{
		{Name: "age", Type: schema.KindInt, Min: f64(0), Max: f64(100)},
	}}

	report := evaluation.ValidateConsistency(d, def)
	assert.Equal(t, "FAIL", report.SchemaValidity)
	assert.Contains(t, report.TypeConsistency, "Column age is not integer")
}

func TestValidateConsistency_CategoryViolations(t *testing.T) {
	d := dataset.New("plan")
	for _, v := range []interface{}{"free", "pro", "enterprise", "free", nil} {
		require.NoError(t, d.AppendRow(v))
	}
	def := &schema.Definition{Columns: []schema.ColumnDef{
		{Name: "plan", Type: schema.KindCategorical, Values: []string{"free", "pro"}},
	}}

	report := evaluation.ValidateConsistency(d, def)
	assert.Equal(t, "FAIL", report.SchemaValidity)
	assert.Equal(t, 1, report.CategoryViolations)
}

func TestValidateConsistency_IdentifierIssues(t *testing.T) {
	def := &schema.Definition{Columns: []schema.ColumnDef{
		{Name: "id", Type: schema.KindIdentifier},
	}}

	cases := []struct {
		name  string
		cells []interface{}
		want  string
	}{
		{"nulls", []interface{}{int64(1), nil, int64(3)}, "Identifier contains null values"},
		{"non-integer", []interface{}{int64(1), 2.5, int64(3)}, "Identifier contains non-integer values"},
		{"duplicates", []interface{}{int64(1), int64(1), int64(2)}, "Identifier contains duplicate values"},
		{"wrong start", []interface{}{int64(2), int64(3), int64(4)}, "Identifier does not start from 1"},
		{"gap", []interface{}{int64(1), int64(2), int64(5)}, "Identifier is not continuous"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := dataset.New("id")
			for _, v := range tc.cells {
				require.NoError(t, d.AppendRow(v))
			}
			report := evaluation.ValidateConsistency(d, def)
			assert.Equal(t, "FAIL", report.SchemaValidity)
			require.NotNil(t, report.IdentifierIssues)
			assert.Equal(t, tc.want, *report.IdentifierIssues)
		})
	}
}

func TestValidateConsistency_CustomStart(t *testing.T) {
	d := dataset.New("id")
	for i := 0; i < 5; i++ {
		require.NoError(t, d.AppendRow(int64(100 + i)))
	}
	def := &schema.Definition{Columns: []schema.ColumnDef{
		{Name: "id", Type: schema.KindIdentifier, Start: i64(100)},
	}}

	report := evaluation.ValidateConsistency(d, def)
	assert.Equal(t, "PASS", report.SchemaValidity)
	assert.Nil(t, report.IdentifierIssues)
}
