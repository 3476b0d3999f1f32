// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger tracks crawled articles in a SQLite database so repeat
// runs skip URLs that already have artifacts on disk.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/fundwatch/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "crawl.db"
)

// Store manages the crawl ledger SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the ledger database at saveDir/index/crawl.db,
// creating the schema if it does not exist.
func NewStore(saveDir string) (*Store, error) {
	dbDir := filepath.Join(saveDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS articles (
		url TEXT PRIMARY KEY,
		slug TEXT,
		title TEXT,
		artifact_path TEXT,
		fetched_at TEXT
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Seen reports whether articleURL has a ledger entry.
func (s *Store) Seen(articleURL string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT count(*) FROM articles WHERE url = ?`, articleURL).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying ledger: %w", err)
	}
	return count > 0, nil
}

// Record stores the metadata of a saved article. Recording the same URL
// again replaces the previous entry.
func (s *Store) Record(meta types.ArticleMeta) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO articles (url, slug, title, artifact_path, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		meta.SourceURL, meta.Slug, meta.Title, meta.ArtifactPath,
		meta.FetchedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording article: %w", err)
	}
	return nil
}

// All returns every ledger entry, most recently fetched first.
func (s *Store) All() ([]types.ArticleMeta, error) {
	rows, err := s.db.Query(
		`SELECT url, slug, title, artifact_path, fetched_at FROM articles ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}
	defer rows.Close()

	var metas []types.ArticleMeta
	for rows.Next() {
		var meta types.ArticleMeta
		var fetchedAt string
		if err := rows.Scan(&meta.SourceURL, &meta.Slug, &meta.Title, &meta.ArtifactPath, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, fetchedAt); parseErr == nil {
			meta.FetchedAt = t
		}
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}
