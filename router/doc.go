// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the practice-test API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health:

	GET /health

Exercise lists (owner scoped via X-Owner-ID / X-Owner-Key):

	POST   /lists                - Create list
	GET    /lists                - Owner's lists, newest first
	GET    /lists/{id}           - List with its questions
	DELETE /lists/{id}           - Delete list
	GET    /lists/{id}/questions - Questions only
	POST   /lists/{id}/questions - Append questions
	DELETE /lists/{id}/questions - Remove one question

Sessions:

	POST /sessions/score      - Grade a batch of answers
	GET  /provas/{id}/session - Paper questions and time limit

Catalog (create, list, delete):

	/bancas, /cargos, /concursos, /disciplinas, /provas, /questoes

Questions can be filtered with GET /questoes?prova_id=&disciplina_id=&busca=.

All API routes are wrapped with middleware.WithLogging.
*/
package router
