// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly configure
// MySQL connections based on the application's configuration. SQLite is supported as a
// lightweight alternative for tests and single-binary deployments.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. The driver
// is selected by Config.Driver; connection pooling and an initial ping are applied
// uniformly.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema, which the health checks
// use to verify that the persistence tables match the expected models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "model_entries")
package database
