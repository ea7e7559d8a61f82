// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain types and the error
taxonomy shared by every layer of the API.

# Catalog Types

Administrative records, created and edited through the catalog endpoints:

  - ExaminingBoard: organization that authors an exam's questions
  - Position: job position an exam paper targets
  - Exam: a competitive exam run by an organization (board abbreviation
    cached at creation)
  - Discipline: subject area
  - ExamPaper: one test instance tied to an exam, position and discipline
  - Question: multiple-choice question with its answer key

# Practice Types

  - ExerciseList: owner-scoped ordered collection of questions
  - ListQuestion: question flattened with paper/exam/discipline/board names
  - Submission: one (question, chosen alternative) pair
  - ScoreResult: correct_count, total, percentage

# Errors

Every layer returns errors from this taxonomy, wrapped with fmt.Errorf:

	ErrValidation  // *ValidationError unwraps to it; HTTP 400
	ErrNotFound    // HTTP 404
	ErrStore       // HTTP 500, detail logged server-side only

# Constants

Difficulty: easy, medium, hard. Exam type: objective, essay, practical.
Question status: active, inactive.
*/
package models
