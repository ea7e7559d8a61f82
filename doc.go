// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the simulados API server.

Simulados is a practice-test service for public-service competitive exams
(concursos): an admin catalog of boards, exams, papers and questions, owner
scoped exercise lists assembled from those questions, and a stateless
scorer for timed practice sessions.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=simulados.db OWNER_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -t postgres -d "postgres://..." -owner-salt "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - OWNER_KEY_SALT (-owner-salt): Secret for owner key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DEFAULT_OWNER_ID (-default-owner): Owner used when no X-Owner-ID is sent (default: 1)
  - -env: .env file loaded before parsing (default: .env)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (lists, sessions, catalog)
  - exercises: List assembly rules and scoring
  - session: Client-side timed session with auto-submit
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, error mapping
  - models: Domain, request and response types, error taxonomy
  - auth: Owner key generation and validation
  - db: Schema, drivers and the relational store
  - cliparse: Configuration parsing

The cmd/simulado terminal client takes timed sessions against the same
database. See package documentation for each component.
*/
package main
