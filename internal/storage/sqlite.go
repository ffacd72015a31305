package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/commitlab/pubs/internal/export"
	"github.com/commitlab/pubs/internal/publication"
)

// ErrCacheEmpty is returned when the cache has never been built.
var ErrCacheEmpty = errors.New("publication cache is empty (run 'pubs rebuild')")

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// SourceInfo identifies the source file a cache was built from.
type SourceInfo struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
	Size    int64     `json:"size"`
}

// StatSource describes the file at path for staleness checks.
func StatSource(path string) (SourceInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return SourceInfo{}, fmt.Errorf("stat source: %w", err)
	}
	return SourceInfo{Path: path, ModTime: fi.ModTime().UTC(), Size: fi.Size()}, nil
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		-- Deduplicated publications in source order
		CREATE TABLE IF NOT EXISTS pubs (
			seq INTEGER PRIMARY KEY,
			dedup_key TEXT NOT NULL UNIQUE,
			cite_key TEXT NOT NULL,
			title TEXT NOT NULL,
			item_type TEXT NOT NULL,
			year INTEGER,
			doi TEXT,
			record_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_pubs_cite_key ON pubs(cite_key);
		CREATE INDEX IF NOT EXISTS idx_pubs_doi ON pubs(doi) WHERE doi IS NOT NULL AND doi != '';

		-- Source file the cache was built from
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromRecords clears the cache and stores records, which must
// already be deduplicated, together with the source they came from.
func (d *DB) RebuildFromRecords(records []publication.Record, src SourceInfo) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pubs"); err != nil {
		return 0, fmt.Errorf("clearing pubs table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM meta"); err != nil {
		return 0, fmt.Errorf("clearing meta table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO pubs (seq, dedup_key, cite_key, title, item_type, year, doi, record_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing pubs insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		recordJSON, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("marshaling record %d: %w", i, err)
		}
		_, err = stmt.Exec(
			i, rec.DedupKey(), export.CitationKey(rec), rec.Title,
			publication.NormalizeType(rec.ItemType), nullableYear(rec.Year),
			nullableStringValue(strings.ToLower(rec.DOI)), string(recordJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting record %d (%q): %w", i, rec.Title, err)
		}
	}

	meta := map[string]string{
		"source_path":  src.Path,
		"source_mtime": src.ModTime.UTC().Format(time.RFC3339Nano),
		"source_size":  strconv.FormatInt(src.Size, 10),
		"built_at":     time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return 0, fmt.Errorf("writing meta %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(records), nil
}

// Source returns the source the cache was built from, or ErrCacheEmpty.
func (d *DB) Source() (SourceInfo, error) {
	rows, err := d.db.Query("SELECT key, value FROM meta")
	if err != nil {
		return SourceInfo{}, fmt.Errorf("reading meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return SourceInfo{}, err
		}
		meta[k] = v
	}
	if err := rows.Err(); err != nil {
		return SourceInfo{}, err
	}
	if meta["source_path"] == "" {
		return SourceInfo{}, ErrCacheEmpty
	}

	info := SourceInfo{Path: meta["source_path"]}
	if t, err := time.Parse(time.RFC3339Nano, meta["source_mtime"]); err == nil {
		info.ModTime = t
	}
	if n, err := strconv.ParseInt(meta["source_size"], 10, 64); err == nil {
		info.Size = n
	}
	return info, nil
}

// IsStale reports whether the cache is missing or was built from a
// different version of the file at path.
func (d *DB) IsStale(path string) (bool, error) {
	cached, err := d.Source()
	if errors.Is(err, ErrCacheEmpty) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	current, err := StatSource(path)
	if err != nil {
		return false, err
	}
	return cached.Path != current.Path ||
		!cached.ModTime.Equal(current.ModTime) ||
		cached.Size != current.Size, nil
}

// ListAll returns every cached record in source order.
func (d *DB) ListAll() ([]publication.Record, error) {
	rows, err := d.db.Query("SELECT record_json FROM pubs ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("listing pubs: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FindByCitationKey returns the records exporting under key. Keys are not
// unique, so more than one record may match.
func (d *DB) FindByCitationKey(key string) ([]publication.Record, error) {
	rows, err := d.db.Query("SELECT record_json FROM pubs WHERE cite_key = ? ORDER BY seq", key)
	if err != nil {
		return nil, fmt.Errorf("finding %s: %w", key, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the number of cached records.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM pubs").Scan(&count)
	return count, err
}

// Collision is a value shared by more than one cached record.
type Collision struct {
	Value  string   `json:"value"`
	Titles []string `json:"titles"`
}

// CitationKeyCollisions lists export keys produced by several records.
func (d *DB) CitationKeyCollisions() ([]Collision, error) {
	return d.collisions("cite_key")
}

// DOICollisions lists DOIs (case-insensitive) carried by several records.
func (d *DB) DOICollisions() ([]Collision, error) {
	return d.collisions("doi")
}

// collisions groups titles by a column value; column is never user input.
func (d *DB) collisions(column string) ([]Collision, error) {
	rows, err := d.db.Query(`
		SELECT ` + column + `, title FROM pubs
		WHERE ` + column + ` IN (
			SELECT ` + column + ` FROM pubs
			WHERE ` + column + ` IS NOT NULL AND ` + column + ` != ''
			GROUP BY ` + column + ` HAVING COUNT(*) > 1
		)
		ORDER BY ` + column + `, seq`)
	if err != nil {
		return nil, fmt.Errorf("finding %s collisions: %w", column, err)
	}
	defer rows.Close()

	var out []Collision
	for rows.Next() {
		var value, title string
		if err := rows.Scan(&value, &title); err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && out[n-1].Value == value {
			out[n-1].Titles = append(out[n-1].Titles, title)
			continue
		}
		out = append(out, Collision{Value: value, Titles: []string{title}})
	}
	return out, rows.Err()
}

func scanRecords(rows *sql.Rows) ([]publication.Record, error) {
	var records []publication.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var rec publication.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("parsing cached record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func nullableYear(year int) sql.NullInt64 {
	if year <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(year), Valid: true}
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
