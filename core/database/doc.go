// Package database handles database connections for the migration step.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL or SQLite connections based on the application's
// configuration.
//
// # Connect
//
// Connect opens the connection, applies pool settings and pings the server
// within the configured timeout, so an unreachable database fails the launch
// before any migration is attempted.
//
// # Schema Version
//
// GetSchemaVersion reads the version recorded by golang-migrate in the
// schema_migrations table, letting the launcher log which version a
// deployment started from and ended on.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	v, err := database.GetSchemaVersion(db)
package database
