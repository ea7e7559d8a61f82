// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/concurseiro/simulados/models"
)

// Store is the relational Question Store behind every service.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Tables that deleteByID may touch.
var deletable = map[string]string{
	"examining_board": "examining board",
	"job_position":    "position",
	"exam":            "exam",
	"discipline":      "discipline",
	"exam_paper":      "exam paper",
	"question":        "question",
}

// deleteByID removes one catalog row. Rows still referenced elsewhere are
// rejected as a validation failure.
func (s *Store) deleteByID(ctx context.Context, table string, id int64) error {
	resource, ok := deletable[table]
	if !ok {
		return fmt.Errorf("delete from %s: table not deletable", table)
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Invalid("id", resource+" is still referenced")
		}
		return storeErr("delete "+resource, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete "+resource, err)
	}
	if n == 0 {
		return models.NotFound(resource)
	}
	return nil
}

// placeholders returns "$start, $start+1, ..." for n arguments.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(start+i)
	}
	return strings.Join(parts, ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// encodeAlternatives stores alternatives as a JSON array, leaving <, > and &
// unescaped.
func encodeAlternatives(alternatives []string) (string, error) {
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(alternatives); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func decodeAlternatives(raw string) ([]string, error) {
	var alternatives []string
	if err := json.Unmarshal([]byte(raw), &alternatives); err != nil {
		return nil, fmt.Errorf("corrupt alternatives: %w", err)
	}
	return alternatives, nil
}
