// Package storage provides the durable key-value layer behind the state stores.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/pantrychef/internal/common"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage keeps one JSON document per named store in a SQLite file.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn := dbPath
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive and serialises writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Path returns the database file the storage was opened with.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Load returns the document stored under name. It returns an error wrapping
// common.ErrNotFound when nothing has been saved yet.
func (s *SQLiteStorage) Load(ctx context.Context, name string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM store_blobs WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load store %q: %w", name, err)
	}

	return []byte(data), nil
}

// Save replaces the document stored under name.
func (s *SQLiteStorage) Save(ctx context.Context, name string, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: data", ErrNilParameter)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO store_blobs (name, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at,
			revision = store_blobs.revision + 1`,
		name, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save store %q: %w", name, err)
	}

	return nil
}

// Delete removes the document stored under name. Deleting a missing document is not an error.
func (s *SQLiteStorage) Delete(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM store_blobs WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete store %q: %w", name, err)
	}
	return nil
}

// BlobInfo describes one stored document. Revision counts saves since the
// document was created.
type BlobInfo struct {
	UpdatedAt time.Time
	Name      string
	Size      int
	Revision  int
}

// List returns every stored document, ordered by name.
func (s *SQLiteStorage) List(ctx context.Context) ([]BlobInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, length(data), revision, updated_at FROM store_blobs ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var blobs []BlobInfo
	for rows.Next() {
		var info BlobInfo
		if err := rows.Scan(&info.Name, &info.Size, &info.Revision, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		blobs = append(blobs, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}

	return blobs, nil
}
