// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/concurseiro/simulados/auth"
	"github.com/concurseiro/simulados/models"
	"github.com/concurseiro/simulados/testutil"
)

func sub(questionID int64, index int) models.SubmissionRequest {
	return models.SubmissionRequest{QuestionID: &questionID, ChosenAlternativeIndex: &index}
}

func TestScore(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(store, cfg)

	catalog := testutil.SeedCatalog(t, store)
	q1 := testutil.CreateTestQuestion(t, store, catalog, 1, 0)
	q2 := testutil.CreateTestQuestion(t, store, catalog, 2, 3)
	q3 := testutil.CreateTestQuestion(t, store, catalog, 3, 1)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expected       models.ScoreResult
	}{
		{
			name:           "single correct",
			body:           models.ScoreRequest{Submissions: []models.SubmissionRequest{sub(q1, 0)}},
			expectedStatus: http.StatusOK,
			expected:       models.ScoreResult{CorrectCount: 1, Total: 1, Percentage: 100},
		},
		{
			name:           "single wrong",
			body:           models.ScoreRequest{Submissions: []models.SubmissionRequest{sub(q1, 1)}},
			expectedStatus: http.StatusOK,
			expected:       models.ScoreResult{CorrectCount: 0, Total: 1, Percentage: 0},
		},
		{
			name: "one of three",
			body: models.ScoreRequest{Submissions: []models.SubmissionRequest{
				sub(q1, 0), sub(q2, 0), sub(q3, 0),
			}},
			expectedStatus: http.StatusOK,
			expected:       models.ScoreResult{CorrectCount: 1, Total: 3, Percentage: 33},
		},
		{
			name: "unknown question is never correct",
			body: models.ScoreRequest{Submissions: []models.SubmissionRequest{
				sub(q2, 3), sub(77777, 0),
			}},
			expectedStatus: http.StatusOK,
			expected:       models.ScoreResult{CorrectCount: 1, Total: 2, Percentage: 50},
		},
		{
			name:           "empty submissions",
			body:           models.ScoreRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing chosen index",
			body:           map[string]interface{}{"submissions": []map[string]interface{}{{"question_id": q1}}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "submissions not a list",
			body:           map[string]interface{}{"submissions": "all of them"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sessions/score", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Score(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var result models.ScoreResult
				testutil.AssertJSON(t, w, &result)
				if result != tt.expected {
					t.Errorf("Expected %+v, got %+v", tt.expected, result)
				}
			}
		})
	}
}

func TestScoreOwnerHeaders(t *testing.T) {
	store := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(store, cfg)

	catalog := testutil.SeedCatalog(t, store)
	q1 := testutil.CreateTestQuestion(t, store, catalog, 1, 0)
	body := models.ScoreRequest{Submissions: []models.SubmissionRequest{sub(q1, 0)}}

	tests := []struct {
		name           string
		headers        map[string]string
		expectedStatus int
	}{
		{"default owner", nil, http.StatusOK},
		{"signed owner", testutil.OwnerHeaders(cfg, 5), http.StatusOK},
		{"forged key", map[string]string{auth.HeaderOwnerID: "5", auth.HeaderOwnerKey: "forged"}, http.StatusUnauthorized},
		{"malformed owner", map[string]string{auth.HeaderOwnerID: "abc"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sessions/score", body, tt.headers)
			w := httptest.NewRecorder()

			handler.Score(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewSessionHandler(store, testutil.GetTestConfig())

	catalog := testutil.SeedCatalog(t, store)
	q1 := testutil.CreateTestQuestion(t, store, catalog, 1, 2)
	q2 := testutil.CreateTestQuestion(t, store, catalog, 2, 2)

	body := models.ScoreRequest{Submissions: []models.SubmissionRequest{sub(q1, 2), sub(q2, 1)}}

	var results [2]models.ScoreResult
	for i := range results {
		req := testutil.MakeRequest("POST", "/sessions/score", body, nil)
		w := httptest.NewRecorder()
		handler.Score(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertJSON(t, w, &results[i])
	}

	if results[0] != results[1] {
		t.Errorf("Expected identical results, got %+v and %+v", results[0], results[1])
	}
}

func TestExamPaperSession(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewSessionHandler(store, testutil.GetTestConfig())

	catalog := testutil.SeedCatalog(t, store)
	testutil.CreateTestQuestion(t, store, catalog, 2, 0)
	testutil.CreateTestQuestion(t, store, catalog, 1, 0)
	_, err := store.CreateQuestion(context.Background(), models.Question{
		Number:                  3,
		ExamPaperID:             catalog.ExamPaperID,
		DisciplineID:            catalog.DisciplineID,
		Statement:               "Anulada",
		Alternatives:            []string{"A", "B"},
		CorrectAlternativeIndex: 0,
		Status:                  models.QuestionInactive,
	})
	if err != nil {
		t.Fatalf("Failed to create inactive question: %v", err)
	}

	id := strconv.FormatInt(catalog.ExamPaperID, 10)
	req := testutil.MakeRequest("GET", "/provas/"+id+"/session", nil, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()

	handler.ExamPaperSession(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var session models.ExamPaperSession
	testutil.AssertJSON(t, w, &session)

	if session.TimeLimitSeconds != 30*60 {
		t.Errorf("Expected 1800s limit, got %d", session.TimeLimitSeconds)
	}
	if len(session.Questions) != 2 {
		t.Fatalf("Expected 2 active questions, got %d", len(session.Questions))
	}
	if session.Questions[0].Number != 1 || session.Questions[1].Number != 2 {
		t.Errorf("Expected questions ordered by number, got %d, %d", session.Questions[0].Number, session.Questions[1].Number)
	}

	t.Run("missing paper", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/provas/999/session", nil, nil)
		req.SetPathValue("id", "999")
		w := httptest.NewRecorder()

		handler.ExamPaperSession(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestExamPaperSessionDefaultLimit(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewSessionHandler(store, testutil.GetTestConfig())

	catalog := testutil.SeedCatalog(t, store)
	paperID, err := store.CreateExamPaper(context.Background(), models.ExamPaper{
		Title:        "Sem limite",
		ExamID:       catalog.ExamID,
		DisciplineID: catalog.DisciplineID,
		PositionID:   catalog.PositionID,
		Difficulty:   models.DifficultyEasy,
		ExamType:     models.ExamTypeObjective,
	})
	if err != nil {
		t.Fatalf("Failed to create paper: %v", err)
	}

	id := strconv.FormatInt(paperID, 10)
	req := testutil.MakeRequest("GET", "/provas/"+id+"/session", nil, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()

	handler.ExamPaperSession(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var session models.ExamPaperSession
	testutil.AssertJSON(t, w, &session)
	if session.TimeLimitSeconds != models.DefaultSessionSeconds {
		t.Errorf("Expected default limit %d, got %d", models.DefaultSessionSeconds, session.TimeLimitSeconds)
	}
	if len(session.Questions) != 0 {
		t.Errorf("Expected no questions, got %d", len(session.Questions))
	}
}
