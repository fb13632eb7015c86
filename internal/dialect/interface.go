package dialect

// Dialect abstracts database-specific queries for the read side of the
// pipeline: listing tables and pulling rows for schema inference.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	GetTablesQuery(schema string) string

	// Row Retrieval
	SelectQuery(table string) string
	GetLimitRowQuery(query string, limit int) string

	// Helpers
	GetSchemaName(input string) string
}
