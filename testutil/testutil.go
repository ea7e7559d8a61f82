// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/concurseiro/simulados/auth"
	"github.com/concurseiro/simulados/cliparse"
	"github.com/concurseiro/simulados/db"
	"github.com/concurseiro/simulados/models"
)

// TestDBURL is an in-memory SQLite database, private to each SetupTestDB call
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *db.Store {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db.NewStore(conn)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   cliparse.DatabaseSQLite,
		OwnerKeySalt:   "test-owner-salt",
		DefaultOwnerID: 1,
	}
}

// OwnerHeaders returns the headers that authenticate a request as ownerID
func OwnerHeaders(cfg cliparse.Config, ownerID int64) map[string]string {
	return map[string]string{
		auth.HeaderOwnerID:  strconv.FormatInt(ownerID, 10),
		auth.HeaderOwnerKey: auth.GenerateOwnerKey(ownerID, cfg.OwnerKeySalt),
	}
}

// Catalog is a minimal set of related catalog rows for tests
type Catalog struct {
	BoardID      int64
	PositionID   int64
	ExamID       int64
	DisciplineID int64
	ExamPaperID  int64
}

// SeedCatalog creates one board, position, exam, discipline and exam paper
func SeedCatalog(t *testing.T, store *db.Store) Catalog {
	t.Helper()
	ctx := context.Background()

	var c Catalog
	var err error

	c.BoardID, err = store.CreateBoard(ctx, models.ExaminingBoard{Name: "Fundação Getulio Vargas", Abbreviation: "FGV"})
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}

	c.PositionID, err = store.CreatePosition(ctx, models.Position{Title: "Analista Judiciário", Level: "superior"})
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	c.ExamID, err = store.CreateExam(ctx, models.Exam{
		Organization: "TRF",
		Year:         2024,
		NoticeNumber: "01/2024",
		Status:       "concluded",
		ExamDate:     "2024-03-10",
		BoardID:      c.BoardID,
	})
	if err != nil {
		t.Fatalf("Failed to create test exam: %v", err)
	}

	c.DisciplineID, err = store.CreateDiscipline(ctx, models.Discipline{Name: "Português", KnowledgeArea: "Linguagens"})
	if err != nil {
		t.Fatalf("Failed to create test discipline: %v", err)
	}

	c.ExamPaperID, err = store.CreateExamPaper(ctx, models.ExamPaper{
		Title:            "Prova Objetiva",
		ExamID:           c.ExamID,
		DisciplineID:     c.DisciplineID,
		PositionID:       c.PositionID,
		ExamDateTime:     "2024-03-10T09:00:00",
		Difficulty:       models.DifficultyMedium,
		TimeLimitMinutes: 30,
		QuestionCount:    10,
		ExamType:         models.ExamTypeObjective,
	})
	if err != nil {
		t.Fatalf("Failed to create test exam paper: %v", err)
	}

	return c
}

// CreateTestQuestion adds an active question to the catalog's exam paper.
// The question has four alternatives and correctIndex as its answer key.
func CreateTestQuestion(t *testing.T, store *db.Store, c Catalog, number, correctIndex int) int64 {
	t.Helper()

	id, err := store.CreateQuestion(context.Background(), models.Question{
		Number:                  number,
		ExamPaperID:             c.ExamPaperID,
		DisciplineID:            c.DisciplineID,
		Statement:               "Questão " + strconv.Itoa(number),
		Alternatives:            []string{"A", "B", "C", "D"},
		CorrectAlternativeIndex: correctIndex,
		Status:                  models.QuestionActive,
	})
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return id
}

// CreateTestList creates an exercise list for ownerID holding questionIDs
func CreateTestList(t *testing.T, store *db.Store, ownerID int64, title string, questionIDs ...int64) int64 {
	t.Helper()

	id, err := store.CreateList(context.Background(), ownerID, title, nil, questionIDs)
	if err != nil {
		t.Fatalf("Failed to create test list: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
