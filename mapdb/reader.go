// Package mapdb provides API for storing map files in an SQLite database.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package mapdb

import (
	"database/sql"
	"errors"
	"fmt"
)

// Reader reads map files from a map database.
type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader creates a new Reader for the given database file path.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT data FROM maps WHERE name = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ReadMap returns the map file stored under name.
// If there is no such map, it returns an empty slice with no error.
func (r *Reader) ReadMap(name string) ([]byte, error) {
	var mapData []byte
	if err := r.stmt.QueryRow(name).Scan(&mapData); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return make([]byte, 0), nil
		}
		return nil, err
	}

	return mapData, nil
}

// Entry describes a stored map without its content.
type Entry struct {
	Name    string
	Version int32
	Size    int
}

func (r *Reader) ListMaps() ([]Entry, error) {
	rows, err := r.db.Query("SELECT name, version, length(data) FROM maps ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Name, &entry.Version, &entry.Size); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// VisitMaps calls visitor for every stored map in name order.
func (r *Reader) VisitMaps(visitor func(string, []byte) error) error {
	rows, err := r.db.Query("SELECT name, data FROM maps ORDER BY name")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var mapData []byte

		if err := rows.Scan(&name, &mapData); err != nil {
			return err
		}

		if err := visitor(name, mapData); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return err
	}

	return nil
}
