// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/concurseiro/simulados/db"
	"github.com/concurseiro/simulados/middleware"
	"github.com/concurseiro/simulados/models"
)

// CatalogHandler serves the administrative catalog: boards, positions,
// exams, disciplines, exam papers and questions.
type CatalogHandler struct {
	store *db.Store
}

func NewCatalogHandler(store *db.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

func createResource[T any](w http.ResponseWriter, r *http.Request, resource string,
	validate func(*T) error, insert func(context.Context, T) (int64, error)) {
	var item T
	if err := middleware.ParseJSONBody(r, &item); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate(&item); err != nil {
		middleware.ServiceError(w, err)
		return
	}

	id, err := insert(r.Context(), item)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	slog.Info(resource+" created", "id", id)

	middleware.JSONResponse(w, http.StatusOK, models.CreatedResponse{ID: id})
}

func listResource[T any](w http.ResponseWriter, r *http.Request, list func(context.Context) ([]T, error)) {
	items, err := list(r.Context())
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, items)
}

func deleteResource(w http.ResponseWriter, r *http.Request, resource string, remove func(context.Context, int64) error) {
	id, err := pathID(r)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}
	if err := remove(r.Context(), id); err != nil {
		middleware.ServiceError(w, err)
		return
	}

	slog.Info(resource+" deleted", "id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// CreateBoard handles POST /bancas
func (h *CatalogHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	createResource(w, r, "examining board", validateBoard, h.store.CreateBoard)
}

// ListBoards handles GET /bancas
func (h *CatalogHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	listResource(w, r, h.store.ListBoards)
}

// DeleteBoard handles DELETE /bancas/{id}
func (h *CatalogHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	deleteResource(w, r, "examining board", h.store.DeleteBoard)
}

// CreatePosition handles POST /cargos
func (h *CatalogHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	createResource(w, r, "position", validatePosition, h.store.CreatePosition)
}

// ListPositions handles GET /cargos
func (h *CatalogHandler) ListPositions(w http.ResponseWriter, r *http.Request) {
	listResource(w, r, h.store.ListPositions)
}

// DeletePosition handles DELETE /cargos/{id}
func (h *CatalogHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	deleteResource(w, r, "position", h.store.DeletePosition)
}

// CreateExam handles POST /concursos
func (h *CatalogHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	createResource(w, r, "exam", validateExam, h.store.CreateExam)
}

// ListExams handles GET /concursos
func (h *CatalogHandler) ListExams(w http.ResponseWriter, r *http.Request) {
	listResource(w, r, h.store.ListExams)
}

// DeleteExam handles DELETE /concursos/{id}
func (h *CatalogHandler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	deleteResource(w, r, "exam", h.store.DeleteExam)
}

// CreateDiscipline handles POST /disciplinas
func (h *CatalogHandler) CreateDiscipline(w http.ResponseWriter, r *http.Request) {
	createResource(w, r, "discipline", validateDiscipline, h.store.CreateDiscipline)
}

// ListDisciplines handles GET /disciplinas
func (h *CatalogHandler) ListDisciplines(w http.ResponseWriter, r *http.Request) {
	listResource(w, r, h.store.ListDisciplines)
}

// DeleteDiscipline handles DELETE /disciplinas/{id}
func (h *CatalogHandler) DeleteDiscipline(w http.ResponseWriter, r *http.Request) {
	deleteResource(w, r, "discipline", h.store.DeleteDiscipline)
}

// CreateExamPaper handles POST /provas
func (h *CatalogHandler) CreateExamPaper(w http.ResponseWriter, r *http.Request) {
	createResource(w, r, "exam paper", validateExamPaper, h.store.CreateExamPaper)
}

// ListExamPapers handles GET /provas
func (h *CatalogHandler) ListExamPapers(w http.ResponseWriter, r *http.Request) {
	listResource(w, r, h.store.ListExamPapers)
}

// GetExamPaper handles GET /provas/{id}
func (h *CatalogHandler) GetExamPaper(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}
	paper, err := h.store.GetExamPaper(r.Context(), id)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, paper)
}

// DeleteExamPaper handles DELETE /provas/{id}
func (h *CatalogHandler) DeleteExamPaper(w http.ResponseWriter, r *http.Request) {
	deleteResource(w, r, "exam paper", h.store.DeleteExamPaper)
}

// CreateQuestion handles POST /questoes
func (h *CatalogHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	createResource(w, r, "question", validateQuestion, h.store.CreateQuestion)
}

// FindQuestions handles GET /questoes?prova_id=&disciplina_id=&busca=
// Answer keys are included; this is the admin listing.
func (h *CatalogHandler) FindQuestions(w http.ResponseWriter, r *http.Request) {
	paperID, err := queryID(r, "prova_id")
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}
	disciplineID, err := queryID(r, "disciplina_id")
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	questions, err := h.store.FindQuestions(r.Context(), models.QuestionFilter{
		ExamPaperID:  paperID,
		DisciplineID: disciplineID,
		Search:       r.URL.Query().Get("busca"),
	})
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, questions)
}

// GetQuestion handles GET /questoes/{id}
func (h *CatalogHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}
	view, err := h.store.GetQuestionView(r.Context(), id)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view)
}

// DeleteQuestion handles DELETE /questoes/{id}
func (h *CatalogHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	deleteResource(w, r, "question", h.store.DeleteQuestion)
}
