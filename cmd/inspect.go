package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"synth-pump/internal/dataset"
	"synth-pump/internal/schema"
)

var (
	insInput     string
	insTable     string
	insLimit     int
	insThreshold int
	insJSON      bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Infer and display the schema of a dataset",
	Long: `Infer the schema of a CSV file or database table: column kinds,
numeric ranges, categorical domains, missing rates, and identifier
detection. With a datasource and no --table, lists the available tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// With neither input, fall back to listing the datasource's tables
		if insInput == "" && insTable == "" {
			db, d, schemaName, err := Connect()
			if err != nil {
				return err
			}
			defer db.Close()

			tables, err := dataset.ListTables(db, d, schemaName)
			if err != nil {
				return err
			}
			fmt.Printf("📋 Tables in %s:\n", schemaName)
			for _, t := range tables {
				fmt.Printf("  - %s\n", t)
			}
			return nil
		}

		ds, source, err := loadInput(insInput, insTable, insLimit)
		if err != nil {
			return err
		}

		threshold := insThreshold
		if threshold <= 0 {
			threshold = viper.GetInt("settings.categorical_threshold")
		}
		sch := schema.Infer(ds, threshold)

		if insJSON {
			data, err := json.MarshalIndent(sch, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("🔍 Schema of %s (%d rows, %d columns)\n\n", source, sch.RowCount, sch.ColumnCount)
		fmt.Printf("  %-20s %-12s %-8s %-30s %s\n", "COLUMN", "KIND", "MISSING", "DOMAIN", "MEANING")
		fmt.Println("  " + strings.Repeat("-", 90))
		for i := range sch.Columns {
			col := &sch.Columns[i]
			fmt.Printf("  %-20s %-12s %-8s %-30s %s\n",
				col.Name, col.Kind, fmt.Sprintf("%.1f%%", col.MissingRate*100),
				columnDomain(col), schema.DecodeMeaning(col.Name))
		}
		fmt.Println()
		return nil
	},
}

// columnDomain renders a short human-readable domain summary.
func columnDomain(col *schema.ColumnInfo) string {
	switch {
	case col.Kind == schema.KindCategorical:
		if len(col.Categories) == 0 {
			return "(empty)"
		}
		joined := strings.Join(col.Categories, ", ")
		if len(joined) > 28 {
			joined = joined[:25] + "..."
		}
		return fmt.Sprintf("{%s}", joined)
	case col.MinValue != nil && col.MaxValue != nil:
		return fmt.Sprintf("[%g, %g]", *col.MinValue, *col.MaxValue)
	}
	return ""
}

func init() {
	RootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&insInput, "input", "i", "", "Input CSV file")
	inspectCmd.Flags().StringVarP(&insTable, "table", "t", "", "Database table (needs a datasource)")
	inspectCmd.Flags().IntVar(&insLimit, "limit", 0, "Max rows to load from the table (0 = all)")
	inspectCmd.Flags().IntVar(&insThreshold, "threshold", 0, "Distinct-value threshold for categorical inference (default from config)")
	inspectCmd.Flags().BoolVar(&insJSON, "json", false, "Print the schema as JSON")
}
