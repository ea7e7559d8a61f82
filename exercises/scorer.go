// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package exercises

import (
	"context"
	"fmt"

	"github.com/concurseiro/simulados/models"
)

// Scorer grades answer submissions against the stored answer keys. It keeps
// no state between calls.
type Scorer struct {
	keys AnswerKeyRepository
}

func NewScorer(keys AnswerKeyRepository) *Scorer {
	return &Scorer{keys: keys}
}

// Score counts submissions whose chosen index equals the stored correct
// index. Every submission counts toward the total; ones naming an unknown
// question are never correct.
func (s *Scorer) Score(ctx context.Context, submissions []models.Submission) (models.ScoreResult, error) {
	if len(submissions) == 0 {
		return models.ScoreResult{}, models.Invalid("submissions", "at least one submission is required")
	}

	ids := make([]int64, 0, len(submissions))
	seen := make(map[int64]bool, len(submissions))
	for _, sub := range submissions {
		if !seen[sub.QuestionID] {
			seen[sub.QuestionID] = true
			ids = append(ids, sub.QuestionID)
		}
	}

	keys, err := s.keys.AnswerKeys(ctx, ids)
	if err != nil {
		return models.ScoreResult{}, err
	}
	return Tally(submissions, keys), nil
}

// Tally computes the score of submissions against keys.
func Tally(submissions []models.Submission, keys map[int64]int) models.ScoreResult {
	correct := 0
	for _, sub := range submissions {
		if key, ok := keys[sub.QuestionID]; ok && key == sub.ChosenAlternativeIndex {
			correct++
		}
	}
	return models.ScoreResult{
		CorrectCount: correct,
		Total:        len(submissions),
		Percentage:   Percentage(correct, len(submissions)),
	}
}

// Percentage returns round-half-up(100 * correct / total) in integer math.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

// SubmissionsFromRequest checks that every entry names both a question and
// a chosen alternative.
func SubmissionsFromRequest(entries []models.SubmissionRequest) ([]models.Submission, error) {
	if len(entries) == 0 {
		return nil, models.Invalid("submissions", "at least one submission is required")
	}

	submissions := make([]models.Submission, 0, len(entries))
	for i, entry := range entries {
		field := fmt.Sprintf("submissions[%d]", i)
		if entry.QuestionID == nil {
			return nil, models.Invalid(field, "question_id is required")
		}
		if entry.ChosenAlternativeIndex == nil {
			return nil, models.Invalid(field, "chosen_alternative_index is required")
		}
		submissions = append(submissions, models.Submission{
			QuestionID:             *entry.QuestionID,
			ChosenAlternativeIndex: *entry.ChosenAlternativeIndex,
		})
	}
	return submissions, nil
}
