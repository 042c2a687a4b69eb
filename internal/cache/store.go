// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps fetched feeds in a local SQLite database so that
// repeated analyses of the same query do not hit the arXiv API again.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-trends/internal/feed"
	"github.com/pdiddy/arxiv-trends/pkg/types"
)

const dbFile = "feeds.db"

// timeLayout is fixed width so stored timestamps compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store is a feed.Source that serves fresh feeds from disk and delegates
// to an upstream source otherwise, recording what it fetched.
type Store struct {
	db       *sql.DB
	upstream feed.Source
	ttl      time.Duration

	// now is replaced in tests.
	now func() time.Time
}

// Row describes one cached feed.
type Row struct {
	URL        string    `json:"url" yaml:"url"`
	FetchedAt  time.Time `json:"fetched_at" yaml:"fetched_at"`
	EntryCount int       `json:"entry_count" yaml:"entry_count"`
}

// NewStore opens or creates the cache database at cfg.Dir/feeds.db.
func NewStore(cfg types.CacheConfig, upstream feed.Source) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, upstream: upstream, ttl: cfg.TTL, now: time.Now}
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS feeds (
		url TEXT PRIMARY KEY,
		fetched_at TEXT NOT NULL,
		entry_count INTEGER NOT NULL,
		entries TEXT NOT NULL
	)`)
	return err
}

// Fetch implements feed.Source.
func (s *Store) Fetch(ctx context.Context, url string) ([]types.Entry, error) {
	log := zerolog.Ctx(ctx)

	if s.ttl > 0 {
		entries, fetchedAt, err := s.lookup(ctx, url)
		switch {
		case err == nil && s.now().Sub(fetchedAt) < s.ttl:
			log.Debug().Str("url", url).Time("fetched_at", fetchedAt).Msg("cache hit")
			return entries, nil
		case err == nil:
			log.Debug().Str("url", url).Time("fetched_at", fetchedAt).Msg("cache entry stale")
		case errors.Is(err, sql.ErrNoRows):
			log.Debug().Str("url", url).Msg("cache miss")
		default:
			log.Warn().Err(err).Str("url", url).Msg("reading cache")
		}
	}

	entries, err := s.upstream.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := s.put(ctx, url, entries); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("writing cache")
	}
	return entries, nil
}

func (s *Store) lookup(ctx context.Context, url string) ([]types.Entry, time.Time, error) {
	var fetchedAt, payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at, entries FROM feeds WHERE url = ?`, url,
	).Scan(&fetchedAt, &payload)
	if err != nil {
		return nil, time.Time{}, err
	}

	t, err := time.Parse(timeLayout, fetchedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parsing fetched_at %q: %w", fetchedAt, err)
	}
	var entries []types.Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, time.Time{}, fmt.Errorf("decoding cached entries: %w", err)
	}
	return entries, t, nil
}

func (s *Store) put(ctx context.Context, url string, entries []types.Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO feeds (url, fetched_at, entry_count, entries) VALUES (?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			fetched_at=excluded.fetched_at, entry_count=excluded.entry_count, entries=excluded.entries`,
		url, s.now().UTC().Format(timeLayout), len(entries), string(payload),
	)
	if err != nil {
		return fmt.Errorf("upserting feed: %w", err)
	}
	return nil
}

// List returns the cached feeds, most recently fetched first.
func (s *Store) List(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT url, fetched_at, entry_count FROM feeds ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var fetchedAt string
		if err := rows.Scan(&r.URL, &fetchedAt, &r.EntryCount); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		if r.FetchedAt, err = time.Parse(timeLayout, fetchedAt); err != nil {
			return nil, fmt.Errorf("parsing fetched_at %q: %w", fetchedAt, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Purge deletes feeds fetched before cutoff and returns how many were
// removed. A zero cutoff removes everything.
func (s *Store) Purge(ctx context.Context, cutoff time.Time) (int, error) {
	var res sql.Result
	var err error
	if cutoff.IsZero() {
		res, err = s.db.ExecContext(ctx, `DELETE FROM feeds`)
	} else {
		res, err = s.db.ExecContext(ctx,
			`DELETE FROM feeds WHERE fetched_at < ?`, cutoff.UTC().Format(timeLayout))
	}
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}
