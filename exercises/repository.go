// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package exercises

import (
	"context"

	"github.com/concurseiro/simulados/models"
)

// ListRepository persists exercise lists and their ordered entries.
// CreateList and AppendQuestions assign ordinals previousMax + 1 + index.
type ListRepository interface {
	CreateList(ctx context.Context, ownerID int64, title string, description *string, questionIDs []int64) (int64, error)
	AppendQuestions(ctx context.Context, listID int64, questionIDs []int64) error
	RemoveQuestion(ctx context.Context, listID, questionID int64) error
	DeleteList(ctx context.Context, listID, ownerID int64) error
	ListOwner(ctx context.Context, listID int64) (int64, error)
	GetList(ctx context.Context, listID int64) (models.ExerciseList, error)
	ListsByOwner(ctx context.Context, ownerID int64) ([]models.ExerciseList, error)
}

// AnswerKeyRepository looks up correct alternative indices. Ids that do not
// resolve are left out of the result.
type AnswerKeyRepository interface {
	AnswerKeys(ctx context.Context, questionIDs []int64) (map[int64]int, error)
}
