// Package sqlite stores caret's cursor history in a SQLite database.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/caret/internal/history"
	"github.com/zjrosen/caret/internal/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB owns the database connection and hands out repositories.
type DB struct {
	db *sql.DB
}

// NewDB opens (creating if necessary) the database at path and applies
// pending migrations. The parent directory is created with 0700 permissions.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY between our own goroutines.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

// Cursors returns the cursor history repository.
func (d *DB) Cursors() history.Repository {
	return newCursorRepository(d.db)
}

// Close closes the connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// SchemaVersion returns the highest applied migration.
func (d *DB) SchemaVersion() (uint, error) {
	return userVersion(d.db)
}

// migrate applies every embedded up migration newer than PRAGMA user_version.
// Each migration runs in its own transaction together with the version bump.
func migrate(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	defer func() { _ = src.Close() }()

	current, err := userVersion(db)
	if err != nil {
		return err
	}

	version, err := src.First()
	for err == nil {
		if version > current {
			if err := apply(db, src, version); err != nil {
				return err
			}
			log.Info(log.CatHistory, "Applied migration", "version", version)
		}
		version, err = src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading migrations: %w", err)
	}
	return nil
}

func apply(db *sql.DB, src source.Driver, version uint) error {
	r, _, err := src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("reading migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("reading migration %d: %w", version, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", version, err)
	}
	if _, err := tx.Exec(string(body)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("applying migration %d: %w", version, err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("recording migration %d: %w", version, err)
	}
	return tx.Commit()
}

func userVersion(db *sql.DB) (uint, error) {
	var v uint
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}
