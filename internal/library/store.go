package library

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"lectern/internal/sqlite"
)

// Store persists versions and their verses to SQLite. The document
// text is stored verbatim; indexes are rebuilt by re-parsing on load,
// which is deterministic. The verses table exists for cross-version
// text search.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS versions (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	path     TEXT NOT NULL DEFAULT '',
	hash     TEXT NOT NULL,
	added_at TEXT NOT NULL,
	document TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS verses (
	version_id  TEXT NOT NULL REFERENCES versions(id),
	book        TEXT NOT NULL,
	book_key    TEXT NOT NULL,
	chapter     INTEGER NOT NULL,
	verse       INTEGER NOT NULL,
	text        TEXT NOT NULL,
	source_line INTEGER NOT NULL,
	PRIMARY KEY (version_id, book_key, chapter, verse)
);

CREATE INDEX IF NOT EXISTS idx_verses_text ON verses(text);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// VersionRecord is a persisted version's metadata.
type VersionRecord struct {
	ID      string
	Name    string
	Path    string
	Hash    string
	AddedAt time.Time
}

// SearchResult is one verse matched by a text search.
type SearchResult struct {
	Version string `json:"version"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Reference renders the result's position as "Book C:V".
func (r SearchResult) Reference() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// OpenStore opens (creating if needed) the library database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveVersion writes a version and its verses, replacing any prior
// version stored under the same name.
func (s *Store) SaveVersion(v *Version, document string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace any earlier version with the same name. Verses are
	// deleted explicitly: foreign_keys is per-connection and the pool
	// gives no guarantee the pragma is set on this one.
	if _, err := tx.Exec(
		`DELETE FROM verses WHERE version_id IN (SELECT id FROM versions WHERE name = ?)`, v.Name,
	); err != nil {
		return fmt.Errorf("failed to clear prior verses: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM versions WHERE name = ?`, v.Name); err != nil {
		return fmt.Errorf("failed to clear prior version: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO versions (id, name, path, hash, added_at, document) VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.Path, v.Hash, v.AddedAt.Format(time.RFC3339), document,
	); err != nil {
		return fmt.Errorf("failed to insert version: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO verses (version_id, book, book_key, chapter, verse, text, source_line) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare verse insert: %w", err)
	}
	defer stmt.Close()

	for _, book := range v.Index.Books() {
		bookKey := strings.ToLower(book.Name)
		for _, chapter := range book.Chapters() {
			for _, verse := range chapter.Verses() {
				if _, err := stmt.Exec(v.ID, book.Name, bookKey, chapter.Number, verse.Number, verse.Text, verse.SourceLine); err != nil {
					return fmt.Errorf("failed to insert verse: %w", err)
				}
			}
		}
	}

	return tx.Commit()
}

// DeleteVersion removes a version and its verses.
func (s *Store) DeleteVersion(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM verses WHERE version_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete verses: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM versions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete version: %w", err)
	}
	return tx.Commit()
}

// ListVersions returns metadata for all persisted versions, sorted by name.
func (s *Store) ListVersions() ([]VersionRecord, error) {
	rows, err := s.db.Query(`SELECT id, name, path, hash, added_at FROM versions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var records []VersionRecord
	for rows.Next() {
		var rec VersionRecord
		var addedAt string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Path, &rec.Hash, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version row: %w", err)
		}
		rec.AddedAt, _ = time.Parse(time.RFC3339, addedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LoadDocument returns the stored document text for a version ID.
func (s *Store) LoadDocument(id string) (string, error) {
	var doc string
	err := s.db.QueryRow(`SELECT document FROM versions WHERE id = ?`, id).Scan(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to load document for version %s: %w", id, err)
	}
	return doc, nil
}

// SetCurrent persists the current version name. An empty name clears
// the selection.
func (s *Store) SetCurrent(name string) error {
	if name == "" {
		_, err := s.db.Exec(`DELETE FROM meta WHERE key = 'current'`)
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO meta (key, value) VALUES ('current', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, name,
	)
	return err
}

// CurrentName returns the persisted current version name, empty if
// none is set.
func (s *Store) CurrentName() (string, error) {
	var name string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'current'`).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return name, err
}

// SearchVerses finds verses containing the query substring, across all
// versions. Matching is case-insensitive per SQLite LIKE semantics.
func (s *Store) SearchVerses(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT vn.name, vs.book, vs.chapter, vs.verse, vs.text
		 FROM verses vs JOIN versions vn ON vn.id = vs.version_id
		 WHERE vs.text LIKE ?
		 ORDER BY vn.name, vs.book_key, vs.chapter, vs.verse
		 LIMIT ?`,
		"%"+query+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search verses: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Version, &r.Book, &r.Chapter, &r.Verse, &r.Text); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
