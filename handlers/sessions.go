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

type SessionHandler struct {
	store  *db.Store
	scorer *exercises.Scorer
	cfg    cliparse.Config
}

func NewSessionHandler(store *db.Store, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: store, scorer: exercises.NewScorer(store), cfg: cfg}
}

// Score handles POST /sessions/score
func (h *SessionHandler) Score(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := resolveOwner(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.ScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	submissions, err := exercises.SubmissionsFromRequest(req.Submissions)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	result, err := h.scorer.Score(r.Context(), submissions)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	slog.Info("session scored",
		"owner_id", ownerID,
		"total", result.Total,
		"correct", result.CorrectCount,
		"percentage", result.Percentage,
	)

	middleware.JSONResponse(w, http.StatusOK, result)
}

// ExamPaperSession handles GET /provas/{id}/session
func (h *SessionHandler) ExamPaperSession(w http.ResponseWriter, r *http.Request) {
	paperID, err := pathID(r)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	paper, err := h.store.GetExamPaper(r.Context(), paperID)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	questions, err := h.store.QuestionsForPaper(r.Context(), paperID)
	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

	public := make([]models.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, q.Public())
	}

	limit := paper.TimeLimitMinutes * 60
	if limit <= 0 {
		limit = models.DefaultSessionSeconds
	}

	middleware.JSONResponse(w, http.StatusOK, models.ExamPaperSession{
		ExamPaper:        paper,
		TimeLimitSeconds: limit,
		Questions:        public,
	})
}
