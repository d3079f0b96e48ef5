// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records fetched articles in a SQLite database so
// downstream tooling can enumerate what a run produced.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/skozina/litfetch/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "catalog.db"
)

// Store manages the article catalog database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the catalog at dataDir/index/catalog.db,
// creating the schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			id TEXT NOT NULL,
			dataset TEXT NOT NULL,
			path TEXT NOT NULL,
			size INTEGER NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (dataset, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_dataset ON articles(dataset)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts one fetched article. Re-fetching an article replaces its
// previous row, matching the overwrite-on-disk behavior.
func (s *Store) Record(rec types.ArticleRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO articles (id, dataset, path, size, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(dataset, id) DO UPDATE SET
		   path = excluded.path,
		   size = excluded.size,
		   fetched_at = excluded.fetched_at`,
		rec.ID, rec.Dataset, rec.Path, rec.Size, rec.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording article %s: %w", rec.ID, err)
	}
	return nil
}

// RecordBatch upserts all records inside one transaction.
func (s *Store) RecordBatch(recs []types.ArticleRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for _, rec := range recs {
		_, err := tx.Exec(
			`INSERT INTO articles (id, dataset, path, size, fetched_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(dataset, id) DO UPDATE SET
			   path = excluded.path,
			   size = excluded.size,
			   fetched_at = excluded.fetched_at`,
			rec.ID, rec.Dataset, rec.Path, rec.Size, rec.FetchedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("recording article %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

// List returns the articles for a dataset in ID order. An empty dataset
// name lists everything.
func (s *Store) List(dataset string) ([]types.ArticleRecord, error) {
	query := `SELECT id, dataset, path, size, fetched_at FROM articles`
	var args []any
	if dataset != "" {
		query += ` WHERE dataset = ?`
		args = append(args, dataset)
	}
	query += ` ORDER BY dataset, id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var recs []types.ArticleRecord
	for rows.Next() {
		var rec types.ArticleRecord
		var fetchedAt string
		if err := rows.Scan(&rec.ID, &rec.Dataset, &rec.Path, &rec.Size, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, fetchedAt); parseErr == nil {
			rec.FetchedAt = t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DatasetStats summarizes one dataset's catalog contents.
type DatasetStats struct {
	Dataset    string
	Articles   int
	TotalBytes int64
}

// Stats returns per-dataset article counts and byte totals.
func (s *Store) Stats() ([]DatasetStats, error) {
	rows, err := s.db.Query(
		`SELECT dataset, COUNT(*), COALESCE(SUM(size), 0)
		 FROM articles GROUP BY dataset ORDER BY dataset`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog stats: %w", err)
	}
	defer rows.Close()

	var stats []DatasetStats
	for rows.Next() {
		var st DatasetStats
		if err := rows.Scan(&st.Dataset, &st.Articles, &st.TotalBytes); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
