package dialect

import "fmt"

type OracleDialect struct{}

func (d *OracleDialect) GetTablesQuery(schema string) string {
	// Oracle doesn't have a "schema" string concept in quite the same way for current user tables.
	// USER_TABLES lists tables owned by the current user.
	// We include a dummy clause to consume the schema argument if passed by standard callers.
	return `SELECT TABLE_NAME FROM USER_TABLES WHERE :1 IS NOT NULL`
}

func (d *OracleDialect) SelectQuery(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", table)
}

func (d *OracleDialect) GetLimitRowQuery(query string, limit int) string {
	return fmt.Sprintf("%s FETCH FIRST %d ROWS ONLY", query, limit)
}

func (d *OracleDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}
