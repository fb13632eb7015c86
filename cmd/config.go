package cmd

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"synth-pump/internal/dialect"
)

type DatasourceConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDatasource returns the currently active datasource configuration.
func GetActiveDatasource() (*DatasourceConfig, error) {
	var configs []DatasourceConfig

	if err := viper.UnmarshalKey("datasources", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse datasources config: %w", err)
	}

	var activeConfig *DatasourceConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active datasource found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active datasources found (only one can be active)")
	}

	return activeConfig, nil
}

// Connect opens the configured datasource. Precedence: CLI flags
// (--dsn/--driver) override the active config entry. The returned
// schema name is what the dialect's introspection queries expect.
func Connect() (*sql.DB, dialect.Dialect, string, error) {
	driver, connStr := driverFlag, dsn

	if cfg, err := GetActiveDatasource(); err == nil {
		if connStr == "" {
			connStr = cfg.DSN
		}
		if driver == "" {
			driver = cfg.Driver
		}
	}
	if connStr == "" {
		return nil, nil, "", fmt.Errorf("no datasource configured (use --dsn or a synth-pump.yaml datasources entry)")
	}

	// Auto-detect driver from DSN shape when not set explicitly
	if driver == "" {
		if strings.Contains(connStr, "postgres") || strings.Contains(connStr, "sslmode") {
			driver = "postgres"
		} else {
			driver = "mysql"
		}
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, "", fmt.Errorf("failed to connect to db: %w", err)
	}

	var schemaName string
	switch driver {
	case "mysql":
		if err := db.QueryRow("SELECT DATABASE()").Scan(&schemaName); err != nil {
			db.Close()
			return nil, nil, "", fmt.Errorf("failed to get database name: %w", err)
		}
		if schemaName == "" {
			db.Close()
			return nil, nil, "", fmt.Errorf("no database selected in DSN")
		}
	case "sqlserver", "mssql":
		schemaName = "dbo"
	case "oracle":
		schemaName = "USER"
	default:
		schemaName = "public"
	}

	return db, dialect.GetDialect(driver), schemaName, nil
}
