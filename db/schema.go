// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/concurseiro/simulados/cliparse"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	_, err := db.Exec(Schema(dbType))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema renders the DDL for the given database type.
func Schema(dbType string) string {
	r := strings.NewReplacer(
		"{{ID}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{NOW}}", "CURRENT_TIMESTAMP",
	)
	if dbType == cliparse.DatabasePostgres {
		r = strings.NewReplacer(
			"{{ID}}", "BIGSERIAL PRIMARY KEY",
			"{{NOW}}", "NOW()",
		)
	}
	return r.Replace(schema)
}

// Dates are stored as ISO-8601 TEXT so both dialects compare them the same way.
const schema = `
-- Examining boards
CREATE TABLE IF NOT EXISTS examining_board (
    id {{ID}},
    name TEXT NOT NULL,
    abbreviation TEXT NOT NULL,
    official_site TEXT,
    exam_style TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT {{NOW}}
);

-- Positions
CREATE TABLE IF NOT EXISTS job_position (
    id {{ID}},
    title TEXT NOT NULL,
    level TEXT NOT NULL,
    salary REAL,
    requirements TEXT,
    expected_allocation TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT {{NOW}}
);

-- Exams (concursos)
CREATE TABLE IF NOT EXISTS exam (
    id {{ID}},
    organization TEXT NOT NULL,
    year INTEGER NOT NULL,
    notice_number TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    exam_date TEXT NOT NULL DEFAULT '',
    board_id BIGINT NOT NULL REFERENCES examining_board(id),
    board_abbreviation TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT {{NOW}}
);

CREATE INDEX IF NOT EXISTS idx_exam_board_id ON exam(board_id);

-- Disciplines
CREATE TABLE IF NOT EXISTS discipline (
    id {{ID}},
    name TEXT NOT NULL,
    knowledge_area TEXT NOT NULL DEFAULT '',
    required_for TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT {{NOW}}
);

-- Exam papers (provas)
CREATE TABLE IF NOT EXISTS exam_paper (
    id {{ID}},
    title TEXT NOT NULL,
    exam_id BIGINT NOT NULL REFERENCES exam(id),
    discipline_id BIGINT NOT NULL REFERENCES discipline(id),
    position_id BIGINT NOT NULL REFERENCES job_position(id),
    exam_date_time TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    difficulty TEXT NOT NULL DEFAULT 'medium' CHECK (difficulty IN ('easy', 'medium', 'hard')),
    time_limit_minutes INTEGER NOT NULL DEFAULT 0,
    question_count INTEGER NOT NULL DEFAULT 0,
    exam_type TEXT NOT NULL DEFAULT 'objective' CHECK (exam_type IN ('objective', 'essay', 'practical')),
    internal_code TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT {{NOW}}
);

CREATE INDEX IF NOT EXISTS idx_exam_paper_exam_id ON exam_paper(exam_id);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id {{ID}},
    number INTEGER NOT NULL DEFAULT 0,
    exam_paper_id BIGINT NOT NULL REFERENCES exam_paper(id),
    discipline_id BIGINT NOT NULL REFERENCES discipline(id),
    statement TEXT NOT NULL,
    alternatives TEXT NOT NULL,
    correct_alternative_index INTEGER NOT NULL CHECK (correct_alternative_index >= 0),
    explanation TEXT,
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
    -- lowercased statement and alternatives, folded in Go so both dialects match non-ASCII text
    search_text TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT {{NOW}}
);

CREATE INDEX IF NOT EXISTS idx_question_exam_paper_id ON question(exam_paper_id);
CREATE INDEX IF NOT EXISTS idx_question_discipline_id ON question(discipline_id);

-- Exercise lists
CREATE TABLE IF NOT EXISTS exercise_list (
    id {{ID}},
    title TEXT NOT NULL,
    description TEXT,
    owner_id BIGINT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT {{NOW}}
);

CREATE INDEX IF NOT EXISTS idx_exercise_list_owner_id ON exercise_list(owner_id);

-- List entries; ordinal gaps left by removals are never compacted
CREATE TABLE IF NOT EXISTS exercise_list_question (
    list_id BIGINT NOT NULL REFERENCES exercise_list(id) ON DELETE CASCADE,
    question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (list_id, question_id)
);

CREATE INDEX IF NOT EXISTS idx_exercise_list_question_ordinal ON exercise_list_question(list_id, ordinal);
`
