package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"synth-pump/internal/dataset"
	"synth-pump/internal/engine"
	"synth-pump/internal/evaluation"
)

var (
	genInput     string
	genTable     string
	genLimit     int
	genRows      int
	genOut       string
	genThreshold int
	genSeed      int64
	genModelOut  string
	genEvaluate  bool
	genReportOut string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fit a generative model on real data and generate synthetic rows",
	Long: `Fit a generative model on a real dataset (CSV file or database table),
then generate schema-conformant synthetic rows from it.

Identifier columns are excluded from training and regenerated as a
contiguous sequence. Numeric columns are rescaled back to the original
mean/std and clipped to the observed range.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		real, source, err := loadInput(genInput, genTable, genLimit)
		if err != nil {
			return err
		}

		rows := genRows
		if rows <= 0 {
			rows = viper.GetInt("settings.default_rows")
		}
		threshold := genThreshold
		if threshold <= 0 {
			threshold = viper.GetInt("settings.categorical_threshold")
		}

		fmt.Printf("🚀 Fitting on %s (%d rows, %d columns)\n", source, real.NumRows(), real.NumCols())
		start := time.Now()

		model := engine.NewBootstrapModel(genSeed)
		session, err := engine.Fit(real, model, threshold, log)
		if err != nil {
			return err
		}

		synth, err := session.Generate(rows)
		if err != nil {
			return err
		}
		if err := dataset.WriteCSV(synth, genOut); err != nil {
			return err
		}
		fmt.Printf("✅ Wrote %d synthetic rows to %s (%.2fs)\n", synth.NumRows(), genOut, time.Since(start).Seconds())

		if genModelOut != "" {
			if err := model.Save(genModelOut); err != nil {
				return err
			}
			fmt.Printf("💾 Saved fitted model to %s\n", genModelOut)
		}

		if genEvaluate {
			report, err := runEvaluation(real, synth, session.Schema, genSeed)
			if err != nil {
				return err
			}
			printReport(report)
			if genReportOut != "" {
				if err := writeReportJSON(report, genReportOut); err != nil {
					return err
				}
				fmt.Printf("💾 Saved evaluation report to %s\n", genReportOut)
			}
		}
		return nil
	},
}

// loadInput resolves the real dataset: a CSV path wins, otherwise a
// table name read through the configured datasource.
func loadInput(input, table string, limit int) (*dataset.Dataset, string, error) {
	if input != "" {
		ds, err := dataset.ReadCSV(input)
		return ds, input, err
	}
	if table == "" {
		return nil, "", fmt.Errorf("either --input or --table is required")
	}

	db, d, _, err := Connect()
	if err != nil {
		return nil, "", err
	}
	defer db.Close()

	ds, err := dataset.LoadTable(db, d, table, limit)
	return ds, "table " + table, err
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genInput, "input", "i", "", "Input CSV file with real data")
	generateCmd.Flags().StringVarP(&genTable, "table", "t", "", "Database table with real data (needs a datasource)")
	generateCmd.Flags().IntVar(&genLimit, "limit", 0, "Max rows to load from the table (0 = all)")
	generateCmd.Flags().IntVarP(&genRows, "rows", "n", 0, "Number of synthetic rows (default from config)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "synthetic.csv", "Output CSV file")
	generateCmd.Flags().IntVar(&genThreshold, "threshold", 0, "Distinct-value threshold for categorical inference (default from config)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", evaluation.DefaultSeed, "Random seed for model and evaluation")
	generateCmd.Flags().StringVar(&genModelOut, "model-out", "", "Save the fitted model to this file")
	generateCmd.Flags().BoolVar(&genEvaluate, "evaluate", false, "Evaluate synthetic fidelity after generating")
	generateCmd.Flags().StringVar(&genReportOut, "report", "", "Save the evaluation report JSON to this file (with --evaluate)")
}
