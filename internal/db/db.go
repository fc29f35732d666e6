package db

import (
	"database/sql"
	"fmt"

	"prunkit/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite price-history store.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS price_history (
				ticker        TEXT NOT NULL,
				exchange      TEXT NOT NULL,
				date_epoch_ms INTEGER NOT NULL,
				open          REAL,
				close         REAL,
				high          REAL,
				low           REAL,
				traded        REAL,
				volume        REAL,
				PRIMARY KEY (ticker, exchange, date_epoch_ms)
			);

			CREATE TABLE IF NOT EXISTS price_history_meta (
				ticker     TEXT NOT NULL,
				exchange   TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				PRIMARY KEY (ticker, exchange)
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1 (price history)")
	}

	return nil
}
