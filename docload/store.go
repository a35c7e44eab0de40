package docload

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound reports that a store lookup matched no document.
var ErrNotFound = errors.New("document not found")

// Store keeps fetched document bodies in a local sqlite database so earlier
// versions stay available for diffing after restarts.
type Store struct {
	db *sql.DB
}

// StoredDocument is one fetched document body with its fetch metadata.
type StoredDocument struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &Store{db: db}
	if err = s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	version TEXT NOT NULL DEFAULT '',
	body BLOB NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_source ON documents(source, fetched_at);
`)
	if err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	return nil
}

// Put records a fetched body and reports the row id.
func (s *Store) Put(source, version string, body []byte) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO documents (id, source, version, body, fetched_at) VALUES (?, ?, ?, ?, ?)`,
		id, source, version, body, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("store put: %w", err)
	}
	return id, nil
}

// Get reports the most recently fetched document for a source.
func (s *Store) Get(source string) (*StoredDocument, error) {
	row := s.db.QueryRow(
		`SELECT id, source, version, body, fetched_at FROM documents WHERE source = ? ORDER BY fetched_at DESC, id DESC LIMIT 1`,
		source,
	)
	var d StoredDocument
	if err := row.Scan(&d.ID, &d.Source, &d.Version, &d.Body, &d.FetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store get: %w", err)
	}
	return &d, nil
}

// History lists fetches for a source, newest first.
func (s *Store) History(source string, limit int) ([]StoredDocument, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, source, version, body, fetched_at FROM documents WHERE source = ? ORDER BY fetched_at DESC, id DESC LIMIT ?`,
		source, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store history: %w", err)
	}
	defer rows.Close()
	var list []StoredDocument
	for rows.Next() {
		var d StoredDocument
		if err = rows.Scan(&d.ID, &d.Source, &d.Version, &d.Body, &d.FetchedAt); err != nil {
			return nil, fmt.Errorf("store history: %w", err)
		}
		list = append(list, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store history: %w", err)
	}
	return list, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
