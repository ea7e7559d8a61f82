// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/concurseiro/simulados/models"
	"github.com/concurseiro/simulados/testutil"
)

func createdID(t *testing.T, w *httptest.ResponseRecorder) int64 {
	t.Helper()
	var resp models.CreatedResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ID <= 0 {
		t.Fatalf("Expected positive id, got %d", resp.ID)
	}
	return resp.ID
}

func TestCreateBoard(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewCatalogHandler(store)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"valid", models.ExaminingBoard{Name: "Cebraspe", Abbreviation: "CESPE"}, http.StatusOK},
		{"missing name", models.ExaminingBoard{Abbreviation: "X"}, http.StatusBadRequest},
		{"missing abbreviation", models.ExaminingBoard{Name: "Vunesp"}, http.StatusBadRequest},
		{"invalid JSON", "nope", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/bancas", tt.body, nil)
			w := httptest.NewRecorder()
			handler.CreateBoard(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	req := testutil.MakeRequest("GET", "/bancas", nil, nil)
	w := httptest.NewRecorder()
	handler.ListBoards(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var boards []models.ExaminingBoard
	testutil.AssertJSON(t, w, &boards)
	if len(boards) != 1 || boards[0].Abbreviation != "CESPE" {
		t.Errorf("Expected one CESPE board, got %+v", boards)
	}
}

func TestCreateExamCopiesBoardAbbreviation(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewCatalogHandler(store)

	boardID, err := store.CreateBoard(context.Background(), models.ExaminingBoard{Name: "Fundação Carlos Chagas", Abbreviation: "FCC"})
	if err != nil {
		t.Fatalf("Failed to create board: %v", err)
	}

	req := testutil.MakeRequest("POST", "/concursos", models.Exam{
		Organization: "TJSP",
		Year:         2023,
		ExamDate:     "2023-08-20",
		BoardID:      boardID,
	}, nil)
	w := httptest.NewRecorder()
	handler.CreateExam(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	examID := createdID(t, w)

	exam, err := store.GetExam(context.Background(), examID)
	if err != nil {
		t.Fatalf("Failed to load exam: %v", err)
	}
	if exam.BoardAbbreviation != "FCC" {
		t.Errorf("Expected cached abbreviation 'FCC', got '%s'", exam.BoardAbbreviation)
	}

	t.Run("missing board", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/concursos", models.Exam{Organization: "TJSP", Year: 2023, BoardID: 999}, nil)
		w := httptest.NewRecorder()
		handler.CreateExam(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("bad date", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/concursos", models.Exam{Organization: "TJSP", Year: 2023, ExamDate: "20/08/2023", BoardID: boardID}, nil)
		w := httptest.NewRecorder()
		handler.CreateExam(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("bad year", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/concursos", models.Exam{Organization: "TJSP", Year: 23, BoardID: boardID}, nil)
		w := httptest.NewRecorder()
		handler.CreateExam(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestCreateExamPaper(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewCatalogHandler(store)
	catalog := testutil.SeedCatalog(t, store)

	t.Run("defaults and generated code", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/provas", models.ExamPaper{
			Title:        "Prova Discursiva",
			ExamID:       catalog.ExamID,
			DisciplineID: catalog.DisciplineID,
			PositionID:   catalog.PositionID,
		}, nil)
		w := httptest.NewRecorder()
		handler.CreateExamPaper(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		id := createdID(t, w)

		paper, err := store.GetExamPaper(context.Background(), id)
		if err != nil {
			t.Fatalf("Failed to load paper: %v", err)
		}
		if paper.Difficulty != models.DifficultyMedium {
			t.Errorf("Expected default difficulty medium, got %s", paper.Difficulty)
		}
		if paper.ExamType != models.ExamTypeObjective {
			t.Errorf("Expected default exam type objective, got %s", paper.ExamType)
		}
		if !strings.HasPrefix(paper.InternalCode, "TRF-2024-") || len(paper.InternalCode) != len("TRF-2024-")+4 {
			t.Errorf("Unexpected internal code '%s'", paper.InternalCode)
		}
	})

	tests := []struct {
		name           string
		paper          models.ExamPaper
		expectedStatus int
	}{
		{
			name:           "invalid difficulty",
			paper:          models.ExamPaper{Title: "P", ExamID: catalog.ExamID, DisciplineID: catalog.DisciplineID, PositionID: catalog.PositionID, Difficulty: "brutal"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid exam type",
			paper:          models.ExamPaper{Title: "P", ExamID: catalog.ExamID, DisciplineID: catalog.DisciplineID, PositionID: catalog.PositionID, ExamType: "oral"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative time limit",
			paper:          models.ExamPaper{Title: "P", ExamID: catalog.ExamID, DisciplineID: catalog.DisciplineID, PositionID: catalog.PositionID, TimeLimitMinutes: -5},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing exam",
			paper:          models.ExamPaper{Title: "P", ExamID: 999, DisciplineID: catalog.DisciplineID, PositionID: catalog.PositionID},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing discipline",
			paper:          models.ExamPaper{Title: "P", ExamID: catalog.ExamID, DisciplineID: 999, PositionID: catalog.PositionID},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "explicit code kept",
			paper:          models.ExamPaper{Title: "P", ExamID: catalog.ExamID, DisciplineID: catalog.DisciplineID, PositionID: catalog.PositionID, InternalCode: "TRF-OBJ-1"},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/provas", tt.paper, nil)
			w := httptest.NewRecorder()
			handler.CreateExamPaper(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestCreateQuestion(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewCatalogHandler(store)
	catalog := testutil.SeedCatalog(t, store)

	base := func() models.Question {
		return models.Question{
			Number:                  1,
			ExamPaperID:             catalog.ExamPaperID,
			DisciplineID:            catalog.DisciplineID,
			Statement:               "Assinale a alternativa correta.",
			Alternatives:            []string{"A", "B", "C"},
			CorrectAlternativeIndex: 2,
		}
	}

	tests := []struct {
		name           string
		mutate         func(q *models.Question)
		expectedStatus int
	}{
		{"valid", func(q *models.Question) {}, http.StatusOK},
		{"two alternatives", func(q *models.Question) { q.Alternatives = []string{"Certo", "Errado"}; q.CorrectAlternativeIndex = 1 }, http.StatusOK},
		{"one alternative", func(q *models.Question) { q.Alternatives = []string{"A"}; q.CorrectAlternativeIndex = 0 }, http.StatusBadRequest},
		{"six alternatives", func(q *models.Question) { q.Alternatives = []string{"A", "B", "C", "D", "E", "F"} }, http.StatusBadRequest},
		{"blank alternative", func(q *models.Question) { q.Alternatives[1] = "  " }, http.StatusBadRequest},
		{"index out of range", func(q *models.Question) { q.CorrectAlternativeIndex = 3 }, http.StatusBadRequest},
		{"negative index", func(q *models.Question) { q.CorrectAlternativeIndex = -1 }, http.StatusBadRequest},
		{"bad status", func(q *models.Question) { q.Status = "draft" }, http.StatusBadRequest},
		{"missing statement", func(q *models.Question) { q.Statement = "" }, http.StatusBadRequest},
		{"missing paper", func(q *models.Question) { q.ExamPaperID = 999 }, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base()
			tt.mutate(&q)

			req := testutil.MakeRequest("POST", "/questoes", q, nil)
			w := httptest.NewRecorder()
			handler.CreateQuestion(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestFindQuestions(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewCatalogHandler(store)
	catalog := testutil.SeedCatalog(t, store)

	otherDiscipline, err := store.CreateDiscipline(context.Background(), models.Discipline{Name: "Direito Constitucional"})
	if err != nil {
		t.Fatalf("Failed to create discipline: %v", err)
	}

	testutil.CreateTestQuestion(t, store, catalog, 2, 0)
	testutil.CreateTestQuestion(t, store, catalog, 1, 0)
	_, err = store.CreateQuestion(context.Background(), models.Question{
		Number:                  3,
		ExamPaperID:             catalog.ExamPaperID,
		DisciplineID:            otherDiscipline,
		Statement:               "Sobre o controle de CONSTITUCIONALIDADE, assinale:",
		Alternatives:            []string{"difuso", "concentrado"},
		CorrectAlternativeIndex: 0,
	})
	if err != nil {
		t.Fatalf("Failed to create question: %v", err)
	}

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{"all", "", http.StatusOK, 3},
		{"by paper", "?prova_id=" + strconv.FormatInt(catalog.ExamPaperID, 10), http.StatusOK, 3},
		{"by discipline", "?disciplina_id=" + strconv.FormatInt(otherDiscipline, 10), http.StatusOK, 1},
		{"search statement case-insensitive", "?busca=constitucionalidade", http.StatusOK, 1},
		{"search alternatives", "?busca=concentrado", http.StatusOK, 1},
		{"search accented uppercase", "?busca=QUEST%C3%83O", http.StatusOK, 2},
		{"no match", "?busca=inexistente", http.StatusOK, 0},
		{"bad paper id", "?prova_id=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/questoes"+tt.query, nil, nil)
			w := httptest.NewRecorder()
			handler.FindQuestions(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusOK {
				return
			}
			var questions []models.Question
			testutil.AssertJSON(t, w, &questions)
			if len(questions) != tt.expectedCount {
				t.Errorf("Expected %d questions, got %d", tt.expectedCount, len(questions))
			}
			for i := 1; i < len(questions); i++ {
				if questions[i-1].Number > questions[i].Number {
					t.Errorf("Questions not ordered by number")
				}
			}
		})
	}
}

func TestGetQuestion(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewCatalogHandler(store)
	catalog := testutil.SeedCatalog(t, store)
	qID := testutil.CreateTestQuestion(t, store, catalog, 4, 1)

	id := strconv.FormatInt(qID, 10)
	req := testutil.MakeRequest("GET", "/questoes/"+id, nil, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	handler.GetQuestion(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.QuestionView
	testutil.AssertJSON(t, w, &view)
	if view.ID != qID || view.Number != 4 {
		t.Errorf("Unexpected question %+v", view)
	}
	if view.ExamPaper.Title != "Prova Objetiva" || view.ExamPaper.Exam.Title != "TRF 2024" {
		t.Errorf("Unexpected paper reference %+v", view.ExamPaper)
	}

	req = testutil.MakeRequest("GET", "/questoes/999", nil, nil)
	req.SetPathValue("id", "999")
	w = httptest.NewRecorder()
	handler.GetQuestion(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteCatalogRows(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewCatalogHandler(store)
	catalog := testutil.SeedCatalog(t, store)
	qID := testutil.CreateTestQuestion(t, store, catalog, 1, 0)
	listID := testutil.CreateTestList(t, store, 1, "Lista", qID)

	del := func(fn http.HandlerFunc, id int64) *httptest.ResponseRecorder {
		raw := strconv.FormatInt(id, 10)
		req := testutil.MakeRequest("DELETE", "/"+raw, nil, nil)
		req.SetPathValue("id", raw)
		w := httptest.NewRecorder()
		fn(w, req)
		return w
	}

	// Referenced rows cannot be deleted
	testutil.AssertStatus(t, del(handler.DeleteBoard, catalog.BoardID), http.StatusBadRequest)
	testutil.AssertStatus(t, del(handler.DeleteExamPaper, catalog.ExamPaperID), http.StatusBadRequest)

	// Deleting a question drops it from lists
	testutil.AssertStatus(t, del(handler.DeleteQuestion, qID), http.StatusOK)
	list, err := store.GetList(context.Background(), listID)
	if err != nil {
		t.Fatalf("Failed to load list: %v", err)
	}
	if len(list.Questions) != 0 {
		t.Errorf("Expected deleted question to leave the list, got %d entries", len(list.Questions))
	}

	// Now the chain can be removed bottom-up
	testutil.AssertStatus(t, del(handler.DeleteExamPaper, catalog.ExamPaperID), http.StatusOK)
	testutil.AssertStatus(t, del(handler.DeleteExam, catalog.ExamID), http.StatusOK)
	testutil.AssertStatus(t, del(handler.DeleteBoard, catalog.BoardID), http.StatusOK)
	testutil.AssertStatus(t, del(handler.DeleteDiscipline, catalog.DisciplineID), http.StatusOK)
	testutil.AssertStatus(t, del(handler.DeletePosition, catalog.PositionID), http.StatusOK)

	testutil.AssertStatus(t, del(handler.DeleteBoard, catalog.BoardID), http.StatusNotFound)
}
