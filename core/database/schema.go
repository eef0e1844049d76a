package database

import (
	"fmt"

	"gorm.io/gorm"
)

// MigrationsTable is the table golang-migrate records the schema version in.
const MigrationsTable = "schema_migrations"

// SchemaVersion is the applied migration state of a database.
type SchemaVersion struct {
	Version uint
	Dirty   bool
	// Applied is false when no migration has ever been recorded.
	Applied bool
}

func (v SchemaVersion) String() string {
	if !v.Applied {
		return "none"
	}
	if v.Dirty {
		return fmt.Sprintf("%d (dirty)", v.Version)
	}
	return fmt.Sprintf("%d", v.Version)
}

type versionRow struct {
	Version int64
	Dirty   bool
}

// GetSchemaVersion reads the recorded schema version. The migrations table
// must exist.
func GetSchemaVersion(db *gorm.DB) (SchemaVersion, error) {
	var row versionRow
	res := db.Raw(fmt.Sprintf("SELECT version, dirty FROM %s LIMIT 1", MigrationsTable)).Scan(&row)
	if res.Error != nil {
		return SchemaVersion{}, fmt.Errorf("failed to read schema version: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return SchemaVersion{}, nil
	}
	if row.Version < 0 {
		// A failed first migration leaves no version but a dirty flag.
		return SchemaVersion{Dirty: row.Dirty}, nil
	}
	return SchemaVersion{Version: uint(row.Version), Dirty: row.Dirty, Applied: true}, nil
}
