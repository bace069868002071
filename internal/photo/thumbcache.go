/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Fingerprint identifies a photo file's current content, derived from path
// and last-modified time. It changes when the file is replaced in place.
func Fingerprint(path string) (uint64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(path))
	_, _ = h.Write([]byte(fi.ModTime().UTC().Format(time.RFC3339Nano)))
	return h.Sum64(), nil
}

// ThumbCache stores PNG thumbnails in a SQLite file keyed by fingerprint,
// with an in-memory byte map in front of it. Eviction is least recently
// used by last_access, bounded by a byte cap.
type ThumbCache struct {
	db       *sql.DB
	maxBytes int64

	mu  sync.Mutex
	mem map[uint64][]byte
}

// OpenThumbCache opens or creates <dir>/thumbs.sqlite and ensures the
// schema exists.
func OpenThumbCache(dir string) (*ThumbCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create thumb dir: %w", err)
	}
	path := filepath.Join(dir, "thumbs.sqlite")
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS thumbs (
		fingerprint INTEGER PRIMARY KEY,
		blob        BLOB NOT NULL,
		size        INTEGER NOT NULL,
		updated_at  TEXT NOT NULL,
		last_access TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure thumbs table: %w", err)
	}
	_, _ = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_thumbs_access ON thumbs(last_access)`)

	return &ThumbCache{db: db, maxBytes: maxThumbBytesFromEnv(), mem: make(map[uint64][]byte)}, nil
}

// Close releases the underlying database.
func (c *ThumbCache) Close() error { return c.db.Close() }

// Get returns the cached thumbnail for fp and touches its access time.
// A miss returns (nil, nil).
func (c *ThumbCache) Get(ctx context.Context, fp uint64) ([]byte, error) {
	c.mu.Lock()
	if b, ok := c.mem[fp]; ok {
		c.mu.Unlock()
		return b, nil
	}
	c.mu.Unlock()

	var blob []byte
	err := c.db.QueryRowContext(ctx, `SELECT blob FROM thumbs WHERE fingerprint=?`, int64(fp)).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query thumb: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, _ = c.db.ExecContext(ctx, `UPDATE thumbs SET last_access=? WHERE fingerprint=?`, now, int64(fp))

	c.mu.Lock()
	c.mem[fp] = blob
	c.mu.Unlock()
	return blob, nil
}

// Put upserts a thumbnail and evicts least recently used rows past the
// byte cap.
func (c *ThumbCache) Put(ctx context.Context, fp uint64, blob []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := c.db.ExecContext(ctx, `INSERT INTO thumbs(fingerprint,blob,size,updated_at,last_access)
		VALUES(?,?,?,?,?)
		ON CONFLICT(fingerprint) DO UPDATE SET blob=excluded.blob, size=excluded.size, updated_at=excluded.updated_at, last_access=excluded.last_access`,
		int64(fp), blob, len(blob), now, now)
	if err != nil {
		return fmt.Errorf("upsert thumb: %w", err)
	}
	c.mu.Lock()
	c.mem[fp] = blob
	c.mu.Unlock()
	if c.maxBytes > 0 {
		return c.evictToFit(ctx, c.maxBytes)
	}
	return nil
}

// GetOrCreate fetches a thumbnail, generating and storing it on a miss.
func (c *ThumbCache) GetOrCreate(ctx context.Context, fp uint64, gen func() ([]byte, error)) ([]byte, error) {
	if b, err := c.Get(ctx, fp); err != nil {
		return nil, err
	} else if b != nil {
		return b, nil
	}
	if gen == nil {
		return nil, nil
	}
	data, err := gen()
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	if err := c.Put(ctx, fp, data); err != nil {
		return nil, err
	}
	return data, nil
}

// evictToFit deletes least recently used rows until the tracked total size
// fits within capBytes. Evicted entries are dropped from the memory map too.
func (c *ThumbCache) evictToFit(ctx context.Context, capBytes int64) error {
	var total int64
	if err := c.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size),0) FROM thumbs`).Scan(&total); err != nil {
		return fmt.Errorf("sum thumb size: %w", err)
	}
	if total <= capBytes {
		return nil
	}
	rows, err := c.db.QueryContext(ctx, `SELECT fingerprint, size FROM thumbs ORDER BY last_access ASC`)
	if err != nil {
		return fmt.Errorf("select victims: %w", err)
	}
	var victims []int64
	cur := total
	for rows.Next() {
		var fp, sz int64
		if err := rows.Scan(&fp, &sz); err != nil {
			_ = rows.Close()
			return err
		}
		victims = append(victims, fp)
		cur -= sz
		if cur <= capBytes {
			break
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	// The cursor must be closed before the delete below may write.
	if err := rows.Close(); err != nil {
		return err
	}
	for _, fp := range victims {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM thumbs WHERE fingerprint=?`, fp); err != nil {
			return fmt.Errorf("evict thumb: %w", err)
		}
		c.mu.Lock()
		delete(c.mem, uint64(fp))
		c.mu.Unlock()
	}
	return nil
}

// TotalBytes returns the tracked on-disk thumbnail bytes.
func (c *ThumbCache) TotalBytes(ctx context.Context) (int64, error) {
	var total int64
	if err := c.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size),0) FROM thumbs`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// maxThumbBytesFromEnv reads PB_THUMBS_MAX_BYTES, defaulting to 256MB.
func maxThumbBytesFromEnv() int64 {
	v := os.Getenv("PB_THUMBS_MAX_BYTES")
	if v == "" {
		return 256 * 1024 * 1024
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 256 * 1024 * 1024
	}
	return n
}
