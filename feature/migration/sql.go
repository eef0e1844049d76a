package migration

import (
	"context"
	"errors"
	"fmt"
	"os"

	"deploy-launcher/core/database"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SQLRunner applies the up migrations of a directory with golang-migrate.
type SQLRunner struct {
	dir    string
	db     database.Config
	logger *zap.Logger
}

// NewSQLRunner creates a runner for the migrations in dir.
func NewSQLRunner(dir string, db database.Config, logger *zap.Logger) *SQLRunner {
	return &SQLRunner{dir: dir, db: db, logger: logger}
}

// Run connects to the database and migrates it to the latest version.
func (r *SQLRunner) Run(ctx context.Context) error {
	conn, err := database.Connect(r.db)
	if err != nil {
		return err
	}
	defer database.Close(conn)

	return r.migrate(ctx, conn)
}

func (r *SQLRunner) migrate(ctx context.Context, conn *gorm.DB) error {
	if _, err := os.Stat(r.dir); err != nil {
		return fmt.Errorf("failed to open migrations dir: %w", err)
	}
	sourceDriver, err := iofs.New(os.DirFS(r.dir), ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	var dbDriver migratedb.Driver
	switch r.db.Driver {
	case database.DriverSQLite:
		dbDriver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{MigrationsTable: database.MigrationsTable})
	default:
		dbDriver, err = mysql.WithInstance(sqlDB, &mysql.Config{MigrationsTable: database.MigrationsTable})
	}
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, r.db.Driver, dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	before, err := database.GetSchemaVersion(conn)
	if err != nil {
		return err
	}
	if before.Dirty {
		return fmt.Errorf("database schema is dirty at version %d", before.Version)
	}
	r.logger.Info("Applying SQL migrations", zap.String("dir", r.dir), zap.Stringer("from", before))

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-stop:
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("Schema already up to date", zap.Stringer("version", before))
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	after, err := database.GetSchemaVersion(conn)
	if err != nil {
		return err
	}
	r.logger.Info("Schema migrated", zap.Stringer("from", before), zap.Stringer("to", after))
	return nil
}
