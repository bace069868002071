/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package library

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Query describes a library search. All filters are optional and
// combine with AND. Name and Camera match case-insensitive substrings.
// TakenFrom/TakenTo are inclusive; zero times mean unset. Limit and
// Offset implement pagination with a default limit applied when zero.
type Query struct {
	Name      string
	Camera    string
	MinRating int
	TakenFrom time.Time
	TakenTo   time.Time
	Limit     int
	Offset    int
}

// Result is one match row.
type Result struct {
	Path    string
	Name    string
	Rating  int
	Camera  string
	TakenAt time.Time
	Width   int
	Height  int
}

// Search runs the query against the index, ordered by capture time,
// newest first, with never-dated photos last.
func (ix *Index) Search(ctx context.Context, q Query) ([]Result, error) {
	var args []any
	var sb strings.Builder
	sb.WriteString("SELECT path, name, rating, camera, taken_at, width, height\n")
	sb.WriteString("FROM photos\nWHERE 1=1\n")

	if s := strings.TrimSpace(q.Name); s != "" {
		sb.WriteString(" AND lower(name) LIKE ?\n")
		args = append(args, likeContains(strings.ToLower(s)))
	}
	if s := strings.TrimSpace(q.Camera); s != "" {
		sb.WriteString(" AND lower(camera) LIKE ?\n")
		args = append(args, likeContains(strings.ToLower(s)))
	}
	if q.MinRating > 0 {
		sb.WriteString(" AND rating >= ?\n")
		args = append(args, q.MinRating)
	}
	if !q.TakenFrom.IsZero() {
		sb.WriteString(" AND taken_at >= ?\n")
		args = append(args, q.TakenFrom.UTC().Format(time.RFC3339))
	}
	if !q.TakenTo.IsZero() {
		sb.WriteString(" AND taken_at <= ?\n")
		args = append(args, q.TakenTo.UTC().Format(time.RFC3339))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	sb.WriteString("ORDER BY taken_at IS NULL, taken_at DESC, path\n")
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	rows, err := ix.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var taken sql.NullString
		if err := rows.Scan(&r.Path, &r.Name, &r.Rating, &r.Camera, &taken, &r.Width, &r.Height); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if taken.Valid {
			if t, err := time.Parse(time.RFC3339, taken.String); err == nil {
				r.TakenAt = t
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func likeContains(s string) string { return "%" + s + "%" }
