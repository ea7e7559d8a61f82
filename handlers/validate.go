// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/concurseiro/simulados/models"
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return models.Invalid(field, field+" is required")
	}
	return nil
}

func requiredID(field string, id int64) error {
	if id <= 0 {
		return models.Invalid(field, field+" is required")
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func validateBoard(b *models.ExaminingBoard) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Abbreviation = strings.TrimSpace(b.Abbreviation)
	if err := required("name", b.Name); err != nil {
		return err
	}
	if err := required("abbreviation", b.Abbreviation); err != nil {
		return err
	}
	b.OfficialSite = trimOptional(b.OfficialSite)
	b.ExamStyle = trimOptional(b.ExamStyle)
	return nil
}

func validatePosition(p *models.Position) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Level = strings.TrimSpace(p.Level)
	if err := required("title", p.Title); err != nil {
		return err
	}
	if err := required("level", p.Level); err != nil {
		return err
	}
	if p.Salary != nil && *p.Salary < 0 {
		return models.Invalid("salary", "salary must not be negative")
	}
	p.Requirements = trimOptional(p.Requirements)
	p.ExpectedAllocation = trimOptional(p.ExpectedAllocation)
	return nil
}

func validateExam(e *models.Exam) error {
	e.Organization = strings.TrimSpace(e.Organization)
	if err := required("organization", e.Organization); err != nil {
		return err
	}
	if e.Year < 1900 || e.Year > 9999 {
		return models.Invalid("year", "year must be a four-digit year")
	}
	if e.ExamDate != "" {
		if _, err := time.Parse(time.DateOnly, e.ExamDate); err != nil {
			return models.Invalid("exam_date", "exam_date must be YYYY-MM-DD")
		}
	}
	return requiredID("board_id", e.BoardID)
}

func validateDiscipline(d *models.Discipline) error {
	d.Name = strings.TrimSpace(d.Name)
	d.KnowledgeArea = strings.TrimSpace(d.KnowledgeArea)
	if err := required("name", d.Name); err != nil {
		return err
	}
	d.RequiredFor = trimOptional(d.RequiredFor)
	return nil
}

func validateExamPaper(p *models.ExamPaper) error {
	p.Title = strings.TrimSpace(p.Title)
	if err := required("title", p.Title); err != nil {
		return err
	}
	if err := requiredID("exam_id", p.ExamID); err != nil {
		return err
	}
	if err := requiredID("discipline_id", p.DisciplineID); err != nil {
		return err
	}
	if err := requiredID("position_id", p.PositionID); err != nil {
		return err
	}

	switch p.Difficulty {
	case "":
		p.Difficulty = models.DifficultyMedium
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return models.Invalid("difficulty", "difficulty must be easy, medium or hard")
	}

	switch p.ExamType {
	case "":
		p.ExamType = models.ExamTypeObjective
	case models.ExamTypeObjective, models.ExamTypeEssay, models.ExamTypePractical:
	default:
		return models.Invalid("exam_type", "exam_type must be objective, essay or practical")
	}

	if p.TimeLimitMinutes < 0 {
		return models.Invalid("time_limit_minutes", "time_limit_minutes must not be negative")
	}
	if p.QuestionCount < 0 {
		return models.Invalid("question_count", "question_count must not be negative")
	}
	p.InternalCode = strings.TrimSpace(p.InternalCode)
	return nil
}

func validateQuestion(q *models.Question) error {
	q.Statement = strings.TrimSpace(q.Statement)
	if err := required("statement", q.Statement); err != nil {
		return err
	}
	if q.Number <= 0 {
		return models.Invalid("number", "number must be positive")
	}
	if err := requiredID("exam_paper_id", q.ExamPaperID); err != nil {
		return err
	}
	if err := requiredID("discipline_id", q.DisciplineID); err != nil {
		return err
	}

	n := len(q.Alternatives)
	if n < models.MinAlternatives || n > models.MaxAlternatives {
		return models.Invalid("alternatives",
			fmt.Sprintf("a question needs between %d and %d alternatives", models.MinAlternatives, models.MaxAlternatives))
	}
	for i, alt := range q.Alternatives {
		q.Alternatives[i] = strings.TrimSpace(alt)
		if q.Alternatives[i] == "" {
			return models.Invalid("alternatives", fmt.Sprintf("alternative %d is empty", i))
		}
	}
	if q.CorrectAlternativeIndex < 0 || q.CorrectAlternativeIndex >= n {
		return models.Invalid("correct_alternative_index",
			fmt.Sprintf("correct_alternative_index must be between 0 and %d", n-1))
	}

	switch q.Status {
	case "":
		q.Status = models.QuestionActive
	case models.QuestionActive, models.QuestionInactive:
	default:
		return models.Invalid("status", "status must be active or inactive")
	}
	q.Explanation = trimOptional(q.Explanation)
	return nil
}
