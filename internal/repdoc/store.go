package repdoc

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNoDoc reports a paper-vector lookup for a paper the store does not
// hold. The authorship table is filtered against the paper table, so a
// miss during the join means corrupt inputs.
var ErrNoDoc = errors.New("no document for paper")

// Store is the disposable paper-vector lookup table backing the
// per-author join. It exists so the join never holds both full tables
// in memory; the database file lives under the range cache directory
// and is rebuilt on every run.
type Store struct {
	db *sql.DB
}

// OpenStore creates (or resets) the store at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	// Stale cache contents are never reused.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing stale cache: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening join database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	schema := `
		CREATE TABLE IF NOT EXISTS paper_docs (
			paper_id TEXT PRIMARY KEY,
			doc TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put loads the per-paper vector table into the store.
func (s *Store) Put(docs []Doc) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting load transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO paper_docs (paper_id, doc) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		if _, err := stmt.Exec(d.ID, d.Text); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting doc for %s: %w", d.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load: %w", err)
	}
	return nil
}

// Doc returns the vector text for paperID by primary-key lookup.
func (s *Store) Doc(paperID string) (string, error) {
	var doc string
	err := s.db.QueryRow(`SELECT doc FROM paper_docs WHERE paper_id = ?`, paperID).Scan(&doc)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%s: %w", paperID, ErrNoDoc)
	}
	if err != nil {
		return "", fmt.Errorf("looking up doc for %s: %w", paperID, err)
	}
	return doc, nil
}

// Count returns the number of stored documents.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM paper_docs`).Scan(&n)
	return n, err
}
