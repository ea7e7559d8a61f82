// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/concurseiro/simulados/cliparse"
	"github.com/concurseiro/simulados/db"
	"github.com/concurseiro/simulados/handlers"
	"github.com/concurseiro/simulados/middleware"
)

func NewRouter(store *db.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	listHandler := handlers.NewListHandler(store, cfg)
	sessionHandler := handlers.NewSessionHandler(store, cfg)
	catalogHandler := handlers.NewCatalogHandler(store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.DB().PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Exercise lists (owner scoped)
	mux.HandleFunc("POST /lists", middleware.WithLogging(listHandler.Create))
	mux.HandleFunc("GET /lists", middleware.WithLogging(listHandler.ListAll))
	mux.HandleFunc("GET /lists/{id}", middleware.WithLogging(listHandler.Get))
	mux.HandleFunc("DELETE /lists/{id}", middleware.WithLogging(listHandler.Delete))
	mux.HandleFunc("GET /lists/{id}/questions", middleware.WithLogging(listHandler.GetQuestions))
	mux.HandleFunc("POST /lists/{id}/questions", middleware.WithLogging(listHandler.AddQuestions))
	mux.HandleFunc("DELETE /lists/{id}/questions", middleware.WithLogging(listHandler.RemoveQuestion))

	// Sessions
	mux.HandleFunc("POST /sessions/score", middleware.WithLogging(sessionHandler.Score))
	mux.HandleFunc("GET /provas/{id}/session", middleware.WithLogging(sessionHandler.ExamPaperSession))

	// Catalog
	mux.HandleFunc("POST /bancas", middleware.WithLogging(catalogHandler.CreateBoard))
	mux.HandleFunc("GET /bancas", middleware.WithLogging(catalogHandler.ListBoards))
	mux.HandleFunc("DELETE /bancas/{id}", middleware.WithLogging(catalogHandler.DeleteBoard))

	mux.HandleFunc("POST /cargos", middleware.WithLogging(catalogHandler.CreatePosition))
	mux.HandleFunc("GET /cargos", middleware.WithLogging(catalogHandler.ListPositions))
	mux.HandleFunc("DELETE /cargos/{id}", middleware.WithLogging(catalogHandler.DeletePosition))

	mux.HandleFunc("POST /concursos", middleware.WithLogging(catalogHandler.CreateExam))
	mux.HandleFunc("GET /concursos", middleware.WithLogging(catalogHandler.ListExams))
	mux.HandleFunc("DELETE /concursos/{id}", middleware.WithLogging(catalogHandler.DeleteExam))

	mux.HandleFunc("POST /disciplinas", middleware.WithLogging(catalogHandler.CreateDiscipline))
	mux.HandleFunc("GET /disciplinas", middleware.WithLogging(catalogHandler.ListDisciplines))
	mux.HandleFunc("DELETE /disciplinas/{id}", middleware.WithLogging(catalogHandler.DeleteDiscipline))

	mux.HandleFunc("POST /provas", middleware.WithLogging(catalogHandler.CreateExamPaper))
	mux.HandleFunc("GET /provas", middleware.WithLogging(catalogHandler.ListExamPapers))
	mux.HandleFunc("GET /provas/{id}", middleware.WithLogging(catalogHandler.GetExamPaper))
	mux.HandleFunc("DELETE /provas/{id}", middleware.WithLogging(catalogHandler.DeleteExamPaper))

	mux.HandleFunc("POST /questoes", middleware.WithLogging(catalogHandler.CreateQuestion))
	mux.HandleFunc("GET /questoes", middleware.WithLogging(catalogHandler.FindQuestions))
	mux.HandleFunc("GET /questoes/{id}", middleware.WithLogging(catalogHandler.GetQuestion))
	mux.HandleFunc("DELETE /questoes/{id}", middleware.WithLogging(catalogHandler.DeleteQuestion))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("simulados API v1"))
	})

	return mux
}
