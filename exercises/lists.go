// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package exercises

import (
	"context"
	"fmt"
	"strings"

	"github.com/concurseiro/simulados/models"
)

// ListService assembles and maintains owner-scoped exercise lists.
type ListService struct {
	lists ListRepository
}

func NewListService(lists ListRepository) *ListService {
	return &ListService{lists: lists}
}

// CreateList persists a new list holding questionIDs in the given order.
// Unknown question ids surface as models.ErrNotFound from the store.
func (s *ListService) CreateList(ctx context.Context, ownerID int64, title string, description *string, questionIDs []int64) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, models.Invalid("title", "title is required")
	}
	if err := validateQuestionIDs(questionIDs); err != nil {
		return 0, err
	}

	return s.lists.CreateList(ctx, ownerID, title, normalizeDescription(description), questionIDs)
}

// AddQuestions appends questionIDs after the list's current entries.
func (s *ListService) AddQuestions(ctx context.Context, ownerID, listID int64, questionIDs []int64) error {
	if err := validateQuestionIDs(questionIDs); err != nil {
		return err
	}
	if err := s.checkOwner(ctx, ownerID, listID); err != nil {
		return err
	}
	return s.lists.AppendQuestions(ctx, listID, questionIDs)
}

// RemoveQuestion drops one entry without renumbering the others.
func (s *ListService) RemoveQuestion(ctx context.Context, ownerID, listID, questionID int64) error {
	if questionID <= 0 {
		return models.Invalid("question_id", "question_id is required")
	}
	if err := s.checkOwner(ctx, ownerID, listID); err != nil {
		return err
	}
	return s.lists.RemoveQuestion(ctx, listID, questionID)
}

// DeleteList removes a list and its entries. Lists of other owners are
// reported as not found.
func (s *ListService) DeleteList(ctx context.Context, ownerID, listID int64) error {
	return s.lists.DeleteList(ctx, listID, ownerID)
}

// GetList returns a list with its questions in ordinal order.
func (s *ListService) GetList(ctx context.Context, ownerID, listID int64) (models.ExerciseList, error) {
	list, err := s.lists.GetList(ctx, listID)
	if err != nil {
		return models.ExerciseList{}, err
	}
	if list.OwnerID != ownerID {
		return models.ExerciseList{}, models.NotFound("exercise list")
	}
	return list, nil
}

// ListAll returns every list of ownerID, newest first.
func (s *ListService) ListAll(ctx context.Context, ownerID int64) ([]models.ExerciseList, error) {
	return s.lists.ListsByOwner(ctx, ownerID)
}

func (s *ListService) checkOwner(ctx context.Context, ownerID, listID int64) error {
	owner, err := s.lists.ListOwner(ctx, listID)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return models.NotFound("exercise list")
	}
	return nil
}

func validateQuestionIDs(questionIDs []int64) error {
	if len(questionIDs) == 0 {
		return models.Invalid("question_ids", "at least one question is required")
	}

	seen := make(map[int64]bool, len(questionIDs))
	for _, id := range questionIDs {
		if id <= 0 {
			return models.Invalid("question_ids", fmt.Sprintf("invalid question id %d", id))
		}
		if seen[id] {
			return models.Invalid("question_ids", fmt.Sprintf("question %d appears more than once", id))
		}
		seen[id] = true
	}
	return nil
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
