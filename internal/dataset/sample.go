package dataset

import (
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"
)

var demoCities = []string{"Seoul", "Busan", "Incheon", "Daegu", "Daejeon", "Gwangju"}
var demoPlans = []string{"free", "basic", "pro"}

// Demo builds a seeded sample dataset covering every column kind the
// pipeline handles: an identifier, int/float numerics with correlated
// structure, low-cardinality categoricals, and a column with nulls.
func Demo(rows int, seed int64) *Dataset {
	faker := gofakeit.New(seed)
	rng := rand.New(rand.NewSource(seed))

	d := New("id", "age", "income", "score", "city", "plan", "churned")
	for i := 0; i < rows; i++ {
		age := int64(faker.Number(18, 90))
		// income loosely tracks age so correlation metrics have signal
		income := float64(age)*900.0 + faker.Float64Range(-8000, 8000) + 20000
		score := faker.Float64Range(0, 100)

		var churned interface{} = int64(0)
		if faker.Bool() {
			churned = int64(1)
		}
		// ~5% missing scores, so missing-rate handling gets exercised
		var scoreCell interface{} = score
		if rng.Float64() < 0.05 {
			scoreCell = nil
		}

		d.AppendRow(
			int64(i+1),
			age,
			income,
			scoreCell,
			demoCities[rng.Intn(len(demoCities))],
			demoPlans[rng.Intn(len(demoPlans))],
			churned,
		)
	}
	return d
}
