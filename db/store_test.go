// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"strings"
	"testing"
	"time"

	"github.com/concurseiro/simulados/models"
)

func TestInternalCode(t *testing.T) {
	exam := models.Exam{Organization: "TRF", Year: 2024}

	got := InternalCode(exam, time.UnixMilli(1700000012345))
	if got != "TRF-2024-2345" {
		t.Errorf("Expected TRF-2024-2345, got %s", got)
	}
}

func TestPlaceholders(t *testing.T) {
	if got := placeholders(2, 3); got != "$2, $3, $4" {
		t.Errorf("Expected \"$2, $3, $4\", got %q", got)
	}
	if got := placeholders(1, 0); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{":memory:", ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"file:x.db?cache=shared", "file:x.db?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"x.db?_pragma=journal_mode(WAL)", "x.db?_pragma=journal_mode(WAL)"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeAlternativesKeepsMarkup(t *testing.T) {
	got, err := encodeAlternatives([]string{"a & b", "x < y"})
	if err != nil {
		t.Fatal(err)
	}
	if got != `["a & b","x < y"]` {
		t.Errorf("Expected unescaped JSON array, got %s", got)
	}
}

func TestDecodeAlternativesCorrupt(t *testing.T) {
	if _, err := decodeAlternatives("not json"); err == nil || !strings.Contains(err.Error(), "corrupt alternatives") {
		t.Errorf("Expected corrupt alternatives error, got %v", err)
	}
}

func TestOpenUnsupportedType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestSchemaPerDialect(t *testing.T) {
	pg := Schema("postgres")
	if !strings.Contains(pg, "BIGSERIAL PRIMARY KEY") || strings.Contains(pg, "{{") {
		t.Error("Expected postgres schema to use BIGSERIAL ids with no leftover tokens")
	}
	lite := Schema("sqlite")
	if !strings.Contains(lite, "INTEGER PRIMARY KEY AUTOINCREMENT") || strings.Contains(lite, "{{") {
		t.Error("Expected sqlite schema to use AUTOINCREMENT ids with no leftover tokens")
	}
}
