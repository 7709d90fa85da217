/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	applog "geareye/internal/log"
	"geareye/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// CacheDirName is the directory below os.UserCacheDir holding the cache.
	CacheDirName  = "geareye"
	CacheFileName = "renders.sqlite"

	// schemaVersion tracks the local SQLite schema of the render cache.
	// Bump this when you perform breaking schema changes and add migrations.
	schemaVersion = 1
)

// Cache is a render cache keyed by configuration hash and output format.
// It is safe for sequential use by one process; the pool is limited to a
// single connection.
type Cache struct {
	db   *sql.DB
	path string
}

// CacheEntry describes one cached artifact without its bytes.
type CacheEntry struct {
	Hash       string
	Format     string
	Size       int64
	CreatedAt  time.Time
	LastAccess time.Time
}

// DefaultCachePath returns <user cache dir>/geareye/renders.sqlite.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("user cache dir: %w", err)
	}
	return filepath.Join(dir, CacheDirName, CacheFileName), nil
}

// OpenCache ensures the cache database exists at path, opens it, enables
// WAL mode and ensures the meta/version and renders tables exist.
func OpenCache(path string) (*Cache, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "cache_open").With(
		slog.String("path", path),
	)
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cache path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		l.Error("create cache dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	// Convert to forward slashes for the SQLite URI.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureCacheSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure cache schema failed", slog.Any("err", err))
		return nil, err
	}
	l.Debug("cache ready")
	return &Cache{db: db, path: path}, nil
}

// Path returns the database file location.
func (c *Cache) Path() string { return c.path }

// Close releases the database handle.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	case curSchema > schemaVersion:
		return fmt.Errorf("cache schema %d is newer than supported %d", curSchema, schemaVersion)
	default:
		// Update app and timestamp only; keep existing schema for migrations
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

func ensureCacheSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS renders (
			hash         TEXT    NOT NULL,
			format       TEXT    NOT NULL,
			size         INTEGER NOT NULL,
			data         BLOB    NOT NULL,
			created_at   INTEGER NOT NULL,
			last_access  INTEGER NOT NULL,
			PRIMARY KEY (hash, format)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_renders_last_access ON renders(last_access);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create renders schema: %w", err)
		}
	}
	return nil
}

// Get returns the cached bytes for (hash, format) and updates last_access.
// ok is false on a miss.
func (c *Cache) Get(ctx context.Context, hash, format string) (data []byte, ok bool, err error) {
	err = c.db.QueryRowContext(ctx, `SELECT data FROM renders WHERE hash=? AND format=?`, hash, format).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query render: %w", err)
	}
	// touch
	_, _ = c.db.ExecContext(ctx, `UPDATE renders SET last_access=? WHERE hash=? AND format=?`, time.Now().UnixNano(), hash, format)
	return data, true, nil
}

// Put upserts a rendered artifact and enforces the size cap via LRU
// eviction.
func (c *Cache) Put(ctx context.Context, hash, format string, data []byte) error {
	if hash == "" || format == "" {
		return errors.New("hash and format are required")
	}
	if data == nil {
		data = []byte{}
	}
	now := time.Now().UnixNano()
	_, err := c.db.ExecContext(ctx, `INSERT INTO renders(hash,format,size,data,created_at,last_access)
		VALUES(?,?,?,?,?,?)
		ON CONFLICT(hash,format) DO UPDATE SET size=excluded.size, data=excluded.data, created_at=excluded.created_at, last_access=excluded.last_access`,
		hash, format, len(data), data, now, now)
	if err != nil {
		return fmt.Errorf("upsert render: %w", err)
	}
	if capBytes := MaxCacheBytesFromEnv(); capBytes > 0 {
		if err := c.EvictToFit(ctx, capBytes); err != nil {
			return err
		}
	}
	return nil
}

// GetOrCreate fetches a render or generates and stores it using gen. hit
// reports whether the bytes came from the cache.
func (c *Cache) GetOrCreate(ctx context.Context, hash, format string, gen func(context.Context) ([]byte, error)) (data []byte, hit bool, err error) {
	if b, ok, err := c.Get(ctx, hash, format); err != nil {
		return nil, false, err
	} else if ok {
		return b, true, nil
	}
	data, err = gen(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := c.Put(ctx, hash, format, data); err != nil {
		return nil, false, err
	}
	return data, false, nil
}

// List returns all entries, most recently used first.
func (c *Cache) List(ctx context.Context) ([]CacheEntry, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT hash, format, size, created_at, last_access FROM renders ORDER BY last_access DESC, hash, format`)
	if err != nil {
		return nil, fmt.Errorf("list renders: %w", err)
	}
	defer rows.Close()
	var out []CacheEntry
	for rows.Next() {
		var e CacheEntry
		var created, access int64
		if err := rows.Scan(&e.Hash, &e.Format, &e.Size, &created, &access); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		e.LastAccess = time.Unix(0, access).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// TotalBytes returns total bytes tracked by renders.size.
func (c *Cache) TotalBytes(ctx context.Context) (int64, error) {
	var total int64
	if err := c.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size),0) FROM renders`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum renders size: %w", err)
	}
	return total, nil
}

// EvictToFit deletes least-recently-used rows until total size <= capBytes.
func (c *Cache) EvictToFit(ctx context.Context, capBytes int64) error {
	total, err := c.TotalBytes(ctx)
	if err != nil {
		return err
	}
	if total <= capBytes {
		return nil
	}
	rows, err := c.db.QueryContext(ctx, `SELECT hash, format, size FROM renders ORDER BY last_access ASC`)
	if err != nil {
		return fmt.Errorf("select victims: %w", err)
	}
	type key struct{ hash, format string }
	var victims []key
	cur := total
	for rows.Next() {
		var k key
		var sz int64
		if err := rows.Scan(&k.hash, &k.format, &sz); err != nil {
			_ = rows.Close()
			return err
		}
		victims = append(victims, k)
		cur -= sz
		if cur <= capBytes {
			break
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	// Important: close the rows cursor before attempting to write
	if err := rows.Close(); err != nil {
		return err
	}
	for _, k := range victims {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM renders WHERE hash=? AND format=?`, k.hash, k.format); err != nil {
			return fmt.Errorf("evict delete: %w", err)
		}
	}
	applog.WithComponent("storage").Debug("cache evicted", slog.Int("rows", len(victims)), slog.Int64("cap", capBytes))
	return nil
}

// Clear removes every cached render and returns the number of rows.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM renders`)
	if err != nil {
		return 0, fmt.Errorf("clear renders: %w", err)
	}
	return res.RowsAffected()
}

// MaxCacheBytesFromEnv reads GEYE_CACHE_MAX_BYTES, defaulting to 64MB if unset.
func MaxCacheBytesFromEnv() int64 {
	v := os.Getenv("GEYE_CACHE_MAX_BYTES")
	if v == "" {
		return 64 * 1024 * 1024
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 64 * 1024 * 1024
	}
	return n
}
