package mapdb

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/eak1mov/go-twmap/df"
)

// Writer stores map files in a new map database.
type Writer struct {
	db     *sql.DB
	stmt   *sql.Stmt
	logger *slog.Logger
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for writing to a map database file.
// It applies given options and initializes database for writing maps.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE maps (
			name TEXT,
			version INTEGER,
			data BLOB
		);
	`)
	if err != nil {
		return nil, err
	}

	for k, v := range config.Metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	stmt, err := db.Prepare("INSERT INTO maps (name, version, data) VALUES (?, ?, ?)")
	if err != nil {
		return nil, err
	}

	return &Writer{db, stmt, config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.stmt.Close(), w.db.Close())
}

// WriteMap stores mapData under name. The data must parse as a datafile.
func (w *Writer) WriteMap(name string, mapData []byte) error {
	c, err := df.Parse(mapData)
	if err != nil {
		return err
	}

	w.logger.Debug("twmap: store map", "name", name, "size", len(mapData))
	_, err = w.stmt.Exec(name, c.Header.Version, mapData)
	return err
}

func (w *Writer) Finalize() error {
	w.logger.Debug("twmap: creating index")
	_, err := w.db.Exec("CREATE UNIQUE INDEX map_index ON maps (name)")

	w.logger.Debug("twmap: done!")
	return err
}
