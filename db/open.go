// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/concurseiro/simulados/cliparse"
)

// Open connects to the configured database. It does not ping.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case cliparse.DatabasePostgres:
		return sql.Open("postgres", url)
	case cliparse.DatabaseSQLite, "":
		conn, err := sql.Open("sqlite", sqliteDSN(url))
		if err != nil {
			return nil, err
		}
		// SQLite serializes writers anyway; one connection also keeps
		// in-memory databases from splitting per connection.
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// sqliteDSN switches foreign keys on and sets a busy timeout unless the
// caller already chose pragmas.
func sqliteDSN(url string) string {
	if strings.Contains(url, "_pragma=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
