// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/concurseiro/simulados/models"
)

// Examining boards

func (s *Store) CreateBoard(ctx context.Context, b models.ExaminingBoard) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO examining_board (name, abbreviation, official_site, exam_style, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, b.Name, b.Abbreviation, b.OfficialSite, b.ExamStyle, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, storeErr("insert board", err)
	}
	return id, nil
}

func (s *Store) ListBoards(ctx context.Context) ([]models.ExaminingBoard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, abbreviation, official_site, exam_style
		FROM examining_board
		ORDER BY name
	`)
	if err != nil {
		return nil, storeErr("query boards", err)
	}
	defer rows.Close()

	boards := []models.ExaminingBoard{}
	for rows.Next() {
		var b models.ExaminingBoard
		if err := rows.Scan(&b.ID, &b.Name, &b.Abbreviation, &b.OfficialSite, &b.ExamStyle); err != nil {
			return nil, storeErr("scan board", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate boards", err)
	}
	return boards, nil
}

func (s *Store) DeleteBoard(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "examining_board", id)
}

// Positions

func (s *Store) CreatePosition(ctx context.Context, p models.Position) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO job_position (title, level, salary, requirements, expected_allocation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.Title, p.Level, p.Salary, p.Requirements, p.ExpectedAllocation, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, storeErr("insert position", err)
	}
	return id, nil
}

func (s *Store) ListPositions(ctx context.Context) ([]models.Position, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, level, salary, requirements, expected_allocation
		FROM job_position
		ORDER BY title
	`)
	if err != nil {
		return nil, storeErr("query positions", err)
	}
	defer rows.Close()

	positions := []models.Position{}
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.Title, &p.Level, &p.Salary, &p.Requirements, &p.ExpectedAllocation); err != nil {
			return nil, storeErr("scan position", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate positions", err)
	}
	return positions, nil
}

func (s *Store) DeletePosition(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "job_position", id)
}

// Exams

// CreateExam copies the board's abbreviation onto the exam. Later board
// edits are not propagated.
func (s *Store) CreateExam(ctx context.Context, e models.Exam) (int64, error) {
	var abbreviation string
	err := s.db.QueryRowContext(ctx, `SELECT abbreviation FROM examining_board WHERE id = $1`, e.BoardID).Scan(&abbreviation)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.NotFound("examining board")
	}
	if err != nil {
		return 0, storeErr("query board", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO exam (organization, year, notice_number, status, exam_date, board_id, board_abbreviation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, e.Organization, e.Year, e.NoticeNumber, e.Status, e.ExamDate, e.BoardID, abbreviation, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, classify("insert exam", "examining board", err)
	}
	return id, nil
}

func (s *Store) GetExam(ctx context.Context, id int64) (models.Exam, error) {
	var e models.Exam
	err := s.db.QueryRowContext(ctx, `
		SELECT id, organization, year, notice_number, status, exam_date, board_id, board_abbreviation
		FROM exam
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Organization, &e.Year, &e.NoticeNumber, &e.Status, &e.ExamDate, &e.BoardID, &e.BoardAbbreviation)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Exam{}, models.NotFound("exam")
	}
	if err != nil {
		return models.Exam{}, storeErr("query exam", err)
	}
	return e, nil
}

func (s *Store) ListExams(ctx context.Context) ([]models.Exam, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, organization, year, notice_number, status, exam_date, board_id, board_abbreviation
		FROM exam
		ORDER BY year DESC, organization
	`)
	if err != nil {
		return nil, storeErr("query exams", err)
	}
	defer rows.Close()

	exams := []models.Exam{}
	for rows.Next() {
		var e models.Exam
		if err := rows.Scan(&e.ID, &e.Organization, &e.Year, &e.NoticeNumber, &e.Status, &e.ExamDate, &e.BoardID, &e.BoardAbbreviation); err != nil {
			return nil, storeErr("scan exam", err)
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate exams", err)
	}
	return exams, nil
}

func (s *Store) DeleteExam(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "exam", id)
}

// Disciplines

func (s *Store) CreateDiscipline(ctx context.Context, d models.Discipline) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO discipline (name, knowledge_area, required_for, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, d.Name, d.KnowledgeArea, d.RequiredFor, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, storeErr("insert discipline", err)
	}
	return id, nil
}

func (s *Store) ListDisciplines(ctx context.Context) ([]models.Discipline, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, knowledge_area, required_for
		FROM discipline
		ORDER BY name
	`)
	if err != nil {
		return nil, storeErr("query disciplines", err)
	}
	defer rows.Close()

	disciplines := []models.Discipline{}
	for rows.Next() {
		var d models.Discipline
		if err := rows.Scan(&d.ID, &d.Name, &d.KnowledgeArea, &d.RequiredFor); err != nil {
			return nil, storeErr("scan discipline", err)
		}
		disciplines = append(disciplines, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate disciplines", err)
	}
	return disciplines, nil
}

func (s *Store) DeleteDiscipline(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "discipline", id)
}

// Exam papers

const examPaperColumns = `
	id, title, exam_id, discipline_id, position_id, exam_date_time, description,
	difficulty, time_limit_minutes, question_count, exam_type, internal_code
`

// InternalCode builds the default paper code: {organization}-{year}-{last 4
// digits of the unix millisecond clock}.
func InternalCode(exam models.Exam, now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 4 {
		ms = ms[len(ms)-4:]
	}
	return fmt.Sprintf("%s-%d-%s", exam.Organization, exam.Year, ms)
}

// CreateExamPaper inserts a paper, generating its internal code when none
// was supplied.
func (s *Store) CreateExamPaper(ctx context.Context, p models.ExamPaper) (int64, error) {
	exam, err := s.GetExam(ctx, p.ExamID)
	if err != nil {
		return 0, err
	}
	if p.InternalCode == "" {
		p.InternalCode = InternalCode(exam, time.Now())
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO exam_paper (title, exam_id, discipline_id, position_id, exam_date_time, description,
		                        difficulty, time_limit_minutes, question_count, exam_type, internal_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, p.Title, p.ExamID, p.DisciplineID, p.PositionID, p.ExamDateTime, p.Description,
		p.Difficulty, p.TimeLimitMinutes, p.QuestionCount, p.ExamType, p.InternalCode, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, classify("insert exam paper", "discipline or position", err)
	}
	return id, nil
}

func (s *Store) GetExamPaper(ctx context.Context, id int64) (models.ExamPaper, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+examPaperColumns+` FROM exam_paper WHERE id = $1`, id)
	p, err := scanExamPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ExamPaper{}, models.NotFound("exam paper")
	}
	if err != nil {
		return models.ExamPaper{}, storeErr("query exam paper", err)
	}
	return p, nil
}

func (s *Store) ListExamPapers(ctx context.Context) ([]models.ExamPaper, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+examPaperColumns+` FROM exam_paper ORDER BY exam_date_time DESC, id DESC`)
	if err != nil {
		return nil, storeErr("query exam papers", err)
	}
	defer rows.Close()

	papers := []models.ExamPaper{}
	for rows.Next() {
		p, err := scanExamPaper(rows)
		if err != nil {
			return nil, storeErr("scan exam paper", err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate exam papers", err)
	}
	return papers, nil
}

func (s *Store) DeleteExamPaper(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "exam_paper", id)
}

func scanExamPaper(row scanner) (models.ExamPaper, error) {
	var p models.ExamPaper
	err := row.Scan(
		&p.ID, &p.Title, &p.ExamID, &p.DisciplineID, &p.PositionID, &p.ExamDateTime, &p.Description,
		&p.Difficulty, &p.TimeLimitMinutes, &p.QuestionCount, &p.ExamType, &p.InternalCode,
	)
	return p, err
}
