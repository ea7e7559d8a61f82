// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/concurseiro/simulados/models"
)

// listQuestionSelect flattens an entry with everything the list views show.
const listQuestionSelect = `
	SELECT lq.list_id, lq.ordinal,
	       q.id, q.number, q.statement, q.alternatives,
	       p.id, p.title, e.organization, e.year, b.name, d.name
	FROM exercise_list_question lq
	JOIN question q ON q.id = lq.question_id
	JOIN exam_paper p ON p.id = q.exam_paper_id
	JOIN exam e ON e.id = p.exam_id
	JOIN examining_board b ON b.id = e.board_id
	JOIN discipline d ON d.id = p.discipline_id
`

// CreateList inserts the list header and its entries in one transaction,
// so a missing question leaves no empty list behind.
func (s *Store) CreateList(ctx context.Context, ownerID int64, title string, description *string, questionIDs []int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeErr("begin create list", err)
	}
	defer tx.Rollback()

	var listID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO exercise_list (title, description, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, title, description, ownerID, time.Now().UTC()).Scan(&listID)
	if err != nil {
		return 0, storeErr("insert list", err)
	}

	if err := appendEntries(ctx, tx, listID, questionIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("commit create list", err)
	}
	return listID, nil
}

// AppendQuestions adds entries after the list's current highest ordinal.
func (s *Store) AppendQuestions(ctx context.Context, listID int64, questionIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin append questions", err)
	}
	defer tx.Rollback()

	if err := appendEntries(ctx, tx, listID, questionIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit append questions", err)
	}
	return nil
}

// appendEntries assigns ordinal previousMax + 1 + index to each id.
func appendEntries(ctx context.Context, tx *sql.Tx, listID int64, questionIDs []int64) error {
	var prevMax int
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(ordinal), 0) FROM exercise_list_question WHERE list_id = $1
	`, listID).Scan(&prevMax)
	if err != nil {
		return storeErr("read max ordinal", err)
	}

	for i, questionID := range questionIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_list_question (list_id, question_id, ordinal)
			VALUES ($1, $2, $3)
		`, listID, questionID, prevMax+1+i)
		if err != nil {
			if isUniqueViolation(err) {
				return models.Invalid("question_ids", fmt.Sprintf("question %d is already in the list", questionID))
			}
			return classify(fmt.Sprintf("add question %d", questionID), "question", err)
		}
	}
	return nil
}

// RemoveQuestion deletes one entry. Remaining ordinals are left as they are.
func (s *Store) RemoveQuestion(ctx context.Context, listID, questionID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM exercise_list_question WHERE list_id = $1 AND question_id = $2
	`, listID, questionID)
	if err != nil {
		return storeErr("remove list entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("remove list entry", err)
	}
	if n == 0 {
		return models.NotFound("list entry")
	}
	return nil
}

// DeleteList removes a list owned by ownerID; entries go with it.
func (s *Store) DeleteList(ctx context.Context, listID, ownerID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM exercise_list WHERE id = $1 AND owner_id = $2
	`, listID, ownerID)
	if err != nil {
		return storeErr("delete list", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete list", err)
	}
	if n == 0 {
		return models.NotFound("exercise list")
	}
	return nil
}

// ListOwner returns the owner of a list.
func (s *Store) ListOwner(ctx context.Context, listID int64) (int64, error) {
	var ownerID int64
	err := s.db.QueryRowContext(ctx, `SELECT owner_id FROM exercise_list WHERE id = $1`, listID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.NotFound("exercise list")
	}
	if err != nil {
		return 0, storeErr("query list owner", err)
	}
	return ownerID, nil
}

// GetList returns one list with its entries in ordinal order.
func (s *Store) GetList(ctx context.Context, listID int64) (models.ExerciseList, error) {
	var list models.ExerciseList
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, owner_id, created_at
		FROM exercise_list
		WHERE id = $1
	`, listID).Scan(&list.ID, &list.Title, &list.Description, &list.OwnerID, &list.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ExerciseList{}, models.NotFound("exercise list")
	}
	if err != nil {
		return models.ExerciseList{}, storeErr("query list", err)
	}

	byList, err := s.queryListQuestions(ctx, listQuestionSelect+`
		WHERE lq.list_id = $1
		ORDER BY lq.ordinal ASC
	`, listID)
	if err != nil {
		return models.ExerciseList{}, err
	}

	list.Questions = byList[list.ID]
	if list.Questions == nil {
		list.Questions = []models.ListQuestion{}
	}
	return list, nil
}

// ListsByOwner returns every list of an owner, newest first.
func (s *Store) ListsByOwner(ctx context.Context, ownerID int64) ([]models.ExerciseList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, owner_id, created_at
		FROM exercise_list
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, storeErr("query lists", err)
	}
	defer rows.Close()

	lists := []models.ExerciseList{}
	for rows.Next() {
		var list models.ExerciseList
		if err := rows.Scan(&list.ID, &list.Title, &list.Description, &list.OwnerID, &list.CreatedAt); err != nil {
			return nil, storeErr("scan list", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate lists", err)
	}
	rows.Close()

	byList, err := s.queryListQuestions(ctx, listQuestionSelect+`
		JOIN exercise_list l ON l.id = lq.list_id
		WHERE l.owner_id = $1
		ORDER BY lq.list_id, lq.ordinal ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}

	for i := range lists {
		lists[i].Questions = byList[lists[i].ID]
		if lists[i].Questions == nil {
			lists[i].Questions = []models.ListQuestion{}
		}
	}
	return lists, nil
}

// queryListQuestions runs a listQuestionSelect query and groups rows by list.
func (s *Store) queryListQuestions(ctx context.Context, query string, args ...any) (map[int64][]models.ListQuestion, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("query list questions", err)
	}
	defer rows.Close()

	byList := make(map[int64][]models.ListQuestion)
	for rows.Next() {
		var (
			listID       int64
			item         models.ListQuestion
			alternatives string
			organization string
			year         int
		)
		err := rows.Scan(
			&listID, &item.Position,
			&item.ID, &item.Number, &item.Statement, &alternatives,
			&item.ExamPaper.ID, &item.ExamPaper.Title, &organization, &year,
			&item.ExamPaper.Exam.Board, &item.ExamPaper.Discipline.Name,
		)
		if err != nil {
			return nil, storeErr("scan list question", err)
		}
		item.Alternatives, err = decodeAlternatives(alternatives)
		if err != nil {
			return nil, storeErr("decode list question", err)
		}
		item.ExamPaper.Exam.Title = models.Exam{Organization: organization, Year: year}.Title()
		byList[listID] = append(byList[listID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate list questions", err)
	}
	return byList, nil
}
