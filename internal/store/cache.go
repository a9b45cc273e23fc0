// Package store caches fetched dump documents in SQLite so repeated scans
// do not hammer the regulatory database. Only raw documents are cached;
// parsed results are always recomputed.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Cache is a TTL document cache backed by modernc.org/sqlite.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens (or creates) the cache database at path and applies the schema.
func Open(path string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}

	c := &Cache{db: db, ttl: ttl}
	if err := c.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	region     TEXT NOT NULL,
	url        TEXT NOT NULL,
	body       TEXT NOT NULL,
	fetched_at DATETIME NOT NULL,
	expires_at DATETIME NOT NULL,
	UNIQUE (region, url)
);

CREATE INDEX IF NOT EXISTS idx_documents_expires_at ON documents(expires_at);
`

func (c *Cache) migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached document body for (region, url). Expired rows are
// deleted and reported as a miss.
func (c *Cache) Get(ctx context.Context, region, url string) (string, bool, error) {
	var body string
	var expiresAt time.Time
	err := c.db.QueryRowContext(ctx,
		`SELECT body, expires_at FROM documents WHERE region = ? AND url = ?`,
		region, url,
	).Scan(&body, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "store: get %s/%s", region, url)
	}

	if time.Now().UTC().After(expiresAt) {
		_, err = c.db.ExecContext(ctx,
			`DELETE FROM documents WHERE region = ? AND url = ?`, region, url)
		if err != nil {
			return "", false, eris.Wrapf(err, "store: expire %s/%s", region, url)
		}
		return "", false, nil
	}
	return body, true, nil
}

// Put stores (or replaces) the document body for (region, url).
func (c *Cache) Put(ctx context.Context, region, url, body string) error {
	now := time.Now().UTC()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO documents (id, region, url, body, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (region, url) DO UPDATE SET
			body = excluded.body,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at`,
		uuid.New().String(), region, url, body, now, now.Add(c.ttl),
	)
	return eris.Wrapf(err, "store: put %s/%s", region, url)
}

// Purge removes every expired document and returns the number removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM documents WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, eris.Wrap(err, "store: purge")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "store: purge rows affected")
	}
	return n, nil
}
