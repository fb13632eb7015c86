package dataset

import (
	"database/sql"
	"fmt"
	"time"

	"synth-pump/internal/dialect"
)

// LoadTable pulls up to limit rows of a table into a dataset. A limit
// of 0 loads the whole table. Driver-specific values are normalized to
// the dataset cell types.
func LoadTable(db *sql.DB, d dialect.Dialect, table string, limit int) (*Dataset, error) {
	query := d.SelectQuery(table)
	if limit > 0 {
		query = d.GetLimitRowQuery(query, limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	colNames, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	ds := New(colNames...)
	raw := make([]interface{}, len(colNames))
	ptrs := make([]interface{}, len(colNames))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		cells := make([]interface{}, len(raw))
		for i, v := range raw {
			cells[i] = normalizeSQLValue(v)
		}
		if err := ds.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", table, err)
	}
	return ds, nil
}

// ListTables returns the base table names of the connected schema.
func ListTables(db *sql.DB, d dialect.Dialect, schemaName string) ([]string, error) {
	target := d.GetSchemaName(schemaName)
	rows, err := db.Query(d.GetTablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// normalizeSQLValue maps driver scan values onto the dataset cell types.
// []byte payloads (MySQL text protocol) are re-parsed like CSV fields.
func normalizeSQLValue(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case int64:
		return x
	case float64:
		return x
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case string:
		return x
	case []byte:
		return ParseCell(string(x))
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("%v", v)
}
