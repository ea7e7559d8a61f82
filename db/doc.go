// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the relational store: connection, schema and queries.

# Connecting

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"postgres" uses github.com/lib/pq; "sqlite" uses modernc.org/sqlite with
foreign keys switched on for every connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - examining_board, job_position, discipline: catalog leaves
  - exam: references examining_board, caches its abbreviation
  - exam_paper: references exam, discipline, job_position
  - question: references exam_paper and discipline
  - exercise_list: owner-scoped list header
  - exercise_list_question: list entries with an explicit ordinal

# Relationships

	examining_board 1──* exam 1──* exam_paper 1──* question
	exercise_list *──* question (via exercise_list_question)

Deleting a list or a question cascades to its exercise_list_question rows.
Every other foreign key restricts deletion.

# Errors

Store methods return errors from the models taxonomy. Missing rows and
foreign-key violations become models.ErrNotFound; anything else the driver
reports is wrapped as models.ErrStore.
*/
package db
