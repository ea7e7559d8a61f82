// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/concurseiro/simulados/models"
)

const questionColumns = `
	id, number, exam_paper_id, discipline_id, statement, alternatives,
	correct_alternative_index, explanation, status
`

// AnswerKeys returns the correct alternative index of every id that exists.
// Missing ids are simply absent from the map.
func (s *Store) AnswerKeys(ctx context.Context, questionIDs []int64) (map[int64]int, error) {
	keys := make(map[int64]int, len(questionIDs))
	if len(questionIDs) == 0 {
		return keys, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, correct_alternative_index
		FROM question
		WHERE id IN (`+placeholders(1, len(questionIDs))+`)
	`, int64Args(questionIDs)...)
	if err != nil {
		return nil, storeErr("query answer keys", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var correct int
		if err := rows.Scan(&id, &correct); err != nil {
			return nil, storeErr("scan answer key", err)
		}
		keys[id] = correct
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate answer keys", err)
	}
	return keys, nil
}

// searchText is what FindQuestions matches against: statement and
// alternatives one per line, lowercased with full Unicode folding.
func searchText(q models.Question) string {
	return strings.ToLower(q.Statement + "\n" + strings.Join(q.Alternatives, "\n"))
}

// CreateQuestion inserts a validated question. An empty status is stored
// as active.
func (s *Store) CreateQuestion(ctx context.Context, q models.Question) (int64, error) {
	alternatives, err := encodeAlternatives(q.Alternatives)
	if err != nil {
		return 0, storeErr("encode alternatives", err)
	}
	if q.Status == "" {
		q.Status = models.QuestionActive
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO question (number, exam_paper_id, discipline_id, statement, alternatives,
		                      correct_alternative_index, explanation, status, search_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, q.Number, q.ExamPaperID, q.DisciplineID, q.Statement, alternatives,
		q.CorrectAlternativeIndex, q.Explanation, q.Status, searchText(q), time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, classify("insert question", "exam paper or discipline", err)
	}
	return id, nil
}

// GetQuestion returns a question including its answer key.
func (s *Store) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM question WHERE id = $1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, models.NotFound("question")
	}
	if err != nil {
		return models.Question{}, storeErr("query question", err)
	}
	return q, nil
}

// GetQuestionView returns a question without its answer key, flattened with
// its paper, exam, board and discipline names.
func (s *Store) GetQuestionView(ctx context.Context, id int64) (models.QuestionView, error) {
	var (
		view         models.QuestionView
		alternatives string
		organization string
		year         int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT q.id, q.number, q.statement, q.alternatives,
		       p.id, p.title, e.organization, e.year, b.name, d.name
		FROM question q
		JOIN exam_paper p ON p.id = q.exam_paper_id
		JOIN exam e ON e.id = p.exam_id
		JOIN examining_board b ON b.id = e.board_id
		JOIN discipline d ON d.id = p.discipline_id
		WHERE q.id = $1
	`, id).Scan(
		&view.ID, &view.Number, &view.Statement, &alternatives,
		&view.ExamPaper.ID, &view.ExamPaper.Title, &organization, &year,
		&view.ExamPaper.Exam.Board, &view.ExamPaper.Discipline.Name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QuestionView{}, models.NotFound("question")
	}
	if err != nil {
		return models.QuestionView{}, storeErr("query question view", err)
	}

	view.Alternatives, err = decodeAlternatives(alternatives)
	if err != nil {
		return models.QuestionView{}, storeErr("decode question", err)
	}
	view.ExamPaper.Exam.Title = models.Exam{Organization: organization, Year: year}.Title()
	return view, nil
}

// FindQuestions filters questions by paper, discipline and a
// case-insensitive search over statement and alternatives, ordered by number.
func (s *Store) FindQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	var (
		where []string
		args  []any
	)
	if filter.ExamPaperID != 0 {
		args = append(args, filter.ExamPaperID)
		where = append(where, "exam_paper_id = $"+strconv.Itoa(len(args)))
	}
	if filter.DisciplineID != 0 {
		args = append(args, filter.DisciplineID)
		where = append(where, "discipline_id = $"+strconv.Itoa(len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(search))+"%")
		where = append(where, "search_text LIKE $"+strconv.Itoa(len(args))+` ESCAPE '\'`)
	}

	query := `SELECT ` + questionColumns + ` FROM question`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY number ASC, id ASC"

	return s.queryQuestions(ctx, "find questions", query, args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// QuestionsForPaper returns the active questions of an exam paper.
func (s *Store) QuestionsForPaper(ctx context.Context, examPaperID int64) ([]models.Question, error) {
	return s.queryQuestions(ctx, "query paper questions", `
		SELECT `+questionColumns+`
		FROM question
		WHERE exam_paper_id = $1 AND status = $2
		ORDER BY number ASC, id ASC
	`, examPaperID, models.QuestionActive)
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "question", id)
}

func (s *Store) queryQuestions(ctx context.Context, op, query string, args ...any) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return questions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row scanner) (models.Question, error) {
	var q models.Question
	var alternatives string
	err := row.Scan(
		&q.ID, &q.Number, &q.ExamPaperID, &q.DisciplineID, &q.Statement, &alternatives,
		&q.CorrectAlternativeIndex, &q.Explanation, &q.Status,
	)
	if err != nil {
		return models.Question{}, err
	}
	q.Alternatives, err = decodeAlternatives(alternatives)
	if err != nil {
		return models.Question{}, err
	}
	return q, nil
}
