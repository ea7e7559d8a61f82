// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the practice-test API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - ListHandler: Exercise list assembly and reads
  - SessionHandler: Scoring and exam paper sessions
  - CatalogHandler: Boards, positions, exams, disciplines, papers, questions

Handlers are created via constructor functions that accept *db.Store and Config:

	listHandler := handlers.NewListHandler(store, cfg)

# Exercise Lists

	POST   /lists                 → Create (returns list_id)
	GET    /lists                 → ListAll (newest first)
	GET    /lists/{id}            → Get
	GET    /lists/{id}/questions  → GetQuestions
	DELETE /lists/{id}            → Delete
	POST   /lists/{id}/questions  → AddQuestions
	DELETE /lists/{id}/questions  → RemoveQuestion

List operations act for the owner named by X-Owner-ID, proven with
X-Owner-Key. Without the header the configured default owner is used.
Lists of other owners are reported as not found.

# Sessions

	POST /sessions/score      → Score
	GET  /provas/{id}/session → ExamPaperSession

Scoring is stateless: every submission counts toward the total and
submissions naming unknown questions are never correct.

# Errors

Every handler reports service errors through middleware.ServiceError:
400 for validation failures, 404 for missing rows, 500 for store failures.
*/
package handlers
