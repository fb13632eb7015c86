package dialect

import (
	"fmt"
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) often prefers @p1, @p2 named parameters over ?
// especially when prepared statements are involved or simple Exec.

func (d *MSSQLDialect) GetTablesQuery(schema string) string {
	// Use @p1 for schema binding
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MSSQLDialect) SelectQuery(table string) string {
	return fmt.Sprintf("SELECT * FROM %s", table)
}

func (d *MSSQLDialect) GetLimitRowQuery(query string, limit int) string {
	// MSSQL has no LIMIT clause; rewrite SELECT into SELECT TOP n.
	return strings.Replace(query, "SELECT", fmt.Sprintf("SELECT TOP %d", limit), 1)
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
