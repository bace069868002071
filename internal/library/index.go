/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package library maintains a queryable SQLite index of the photos the
// user has loaded: path, rating, and the EXIF fields worth filtering on.
// The index is a cache; the photo manager remains the source of truth.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	applog "photobook/internal/log"
	"photobook/internal/photo"
)

// IndexFileName is the database file inside the cache directory.
const IndexFileName = "library.sqlite"

const schemaVersion = 1

// Index wraps the library database. Safe for use from one goroutine;
// the connection pool is pinned to a single connection like the other
// embedded databases.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the library index under dir, enables WAL
// mode, and brings the schema up to date.
func OpenIndex(dir string) (*Index, error) {
	l := applog.WithComponent("library")
	if dir == "" {
		return nil, errors.New("index directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	path := filepath.Join(dir, IndexFileName)
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
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	l.Info("library index ready", slog.String("path", path))
	return &Index{db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS photos (
			path       TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			rating     INTEGER NOT NULL DEFAULT 0,
			camera     TEXT NOT NULL DEFAULT '',
			taken_at   TEXT,
			width      INTEGER NOT NULL DEFAULT 0,
			height     INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_photos_rating ON photos(rating);`,
		`CREATE INDEX IF NOT EXISTS idx_photos_taken ON photos(taken_at);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES('schema', ?)
		 ON CONFLICT(key) DO NOTHING`, fmt.Sprint(schemaVersion)); err != nil {
		return fmt.Errorf("seed schema version: %w", err)
	}
	return nil
}

// Close closes the database.
func (ix *Index) Close() error { return ix.db.Close() }

// Upsert records or refreshes one photo.
func (ix *Index) Upsert(ctx context.Context, p photo.Photo) error {
	var taken any
	if !p.Meta.TakenAt.IsZero() {
		taken = p.Meta.TakenAt.UTC().Format(time.RFC3339)
	}
	_, err := ix.db.ExecContext(ctx,
		`INSERT INTO photos(path, name, rating, camera, taken_at, width, height, updated_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			name=excluded.name, rating=excluded.rating, camera=excluded.camera,
			taken_at=excluded.taken_at, width=excluded.width, height=excluded.height,
			updated_at=excluded.updated_at`,
		p.Path, p.Name(), p.Rating, p.Meta.CameraModel, taken,
		p.Meta.Width, p.Meta.Height, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert photo: %w", err)
	}
	return nil
}

// Remove drops one photo from the index. Unknown paths are a no-op.
func (ix *Index) Remove(ctx context.Context, path string) error {
	if _, err := ix.db.ExecContext(ctx, `DELETE FROM photos WHERE path=?`, path); err != nil {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}

// Sync replaces the index content with the given photo set in one
// transaction.
func (ix *Index) Sync(ctx context.Context, photos []photo.Photo) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sync: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM photos`); err != nil {
		return fmt.Errorf("clear photos: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range photos {
		var taken any
		if !p.Meta.TakenAt.IsZero() {
			taken = p.Meta.TakenAt.UTC().Format(time.RFC3339)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO photos(path, name, rating, camera, taken_at, width, height, updated_at)
			 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Path, p.Name(), p.Rating, p.Meta.CameraModel, taken,
			p.Meta.Width, p.Meta.Height, now); err != nil {
			return fmt.Errorf("insert %s: %w", p.Path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sync: %w", err)
	}
	return nil
}

// Count returns the number of indexed photos.
func (ix *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return n, nil
}
