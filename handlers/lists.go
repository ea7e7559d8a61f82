// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/concurseiro/simulados/cliparse"
	"github.com/concurseiro/simulados/db"
	"github.com/concurseiro/simulados/exercises"
	"github.com/concurseiro/simulados/middleware"
	"github.com/concurseiro/simulados/models"
)

type ListHandler struct {
	lists *exercises.ListService
	cfg   cliparse.Config
}

func NewListHandler(store *db.Store, cfg cliparse.Config) *ListHandler {
	return &ListHandler{lists: exercises.NewListService(store), cfg: cfg}
}

// Create handles POST /lists
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := resolveOwner(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.CreateListRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	listID, err := h.lists.CreateList(r.Context(), ownerID, req.Title, req.Description, req.QuestionIDs)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	slog.Info("exercise list created", "list_id", listID, "owner_id", ownerID, "questions", len(req.QuestionIDs))

	middleware.JSONResponse(w, http.StatusOK, models.CreateListResponse{ListID: listID})
}

// ListAll handles GET /lists
func (h *ListHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := resolveOwner(w, r, h.cfg)
	if !ok {
		return
	}

	lists, err := h.lists.ListAll(r.Context(), ownerID)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, lists)
}

// Get handles GET /lists/{id}
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	list, ok := h.load(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}

// GetQuestions handles GET /lists/{id}/questions
func (h *ListHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	list, ok := h.load(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list.Questions)
}

func (h *ListHandler) load(w http.ResponseWriter, r *http.Request) (models.ExerciseList, bool) {
	ownerID, ok := resolveOwner(w, r, h.cfg)
	if !ok {
		return models.ExerciseList{}, false
	}
	listID, err := pathID(r)
	if err != nil {
		middleware.ServiceError(w, err)
		return models.ExerciseList{}, false
	}

	list, err := h.lists.GetList(r.Context(), ownerID, listID)
	if err != nil {
		middleware.ServiceError(w, err)
		return models.ExerciseList{}, false
	}
	return list, true
}

// Delete handles DELETE /lists/{id}
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := resolveOwner(w, r, h.cfg)
	if !ok {
		return
	}
	listID, err := pathID(r)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	if err := h.lists.DeleteList(r.Context(), ownerID, listID); err != nil {
		middleware.ServiceError(w, err)
		return
	}

	slog.Info("exercise list deleted", "list_id", listID, "owner_id", ownerID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// AddQuestions handles POST /lists/{id}/questions
func (h *ListHandler) AddQuestions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := resolveOwner(w, r, h.cfg)
	if !ok {
		return
	}
	listID, err := pathID(r)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	var req models.AddQuestionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.lists.AddQuestions(r.Context(), ownerID, listID, req.QuestionIDs); err != nil {
		middleware.ServiceError(w, err)
		return
	}

	slog.Info("questions added to list", "list_id", listID, "count", len(req.QuestionIDs))

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// RemoveQuestion handles DELETE /lists/{id}/questions
func (h *ListHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := resolveOwner(w, r, h.cfg)
	if !ok {
		return
	}
	listID, err := pathID(r)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	var req models.RemoveQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.lists.RemoveQuestion(r.Context(), ownerID, listID, req.QuestionID); err != nil {
		middleware.ServiceError(w, err)
		return
	}

	slog.Info("question removed from list", "list_id", listID, "question_id", req.QuestionID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
