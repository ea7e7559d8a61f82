package models

import (
	"strconv"
	"time"
)

// Exam paper difficulty constants
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Exam paper type constants
const (
	ExamTypeObjective = "objective"
	ExamTypeEssay     = "essay"
	ExamTypePractical = "practical"
)

// Question status constants
const (
	QuestionActive   = "active"
	QuestionInactive = "inactive"
)

// Alternatives per question
const (
	MinAlternatives = 2
	MaxAlternatives = 5
)

// DefaultSessionSeconds is the countdown length when a paper has no time limit.
const DefaultSessionSeconds = 3600

// Catalog types

type ExaminingBoard struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	OfficialSite *string `json:"official_site,omitempty"`
	ExamStyle    *string `json:"exam_style,omitempty"`
}

type Position struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Level              string   `json:"level"`
	Salary             *float64 `json:"salary,omitempty"`
	Requirements       *string  `json:"requirements,omitempty"`
	ExpectedAllocation *string  `json:"expected_allocation,omitempty"`
}

type Exam struct {
	ID                int64  `json:"id"`
	Organization      string `json:"organization"`
	Year              int    `json:"year"`
	NoticeNumber      string `json:"notice_number"`
	Status            string `json:"status"`
	ExamDate          string `json:"exam_date"` // YYYY-MM-DD
	BoardID           int64  `json:"board_id"`
	BoardAbbreviation string `json:"board_abbreviation"` // copied at creation, never re-synced
}

// Title is the display title used by list views: "{organization} {year}".
func (e Exam) Title() string {
	return e.Organization + " " + strconv.Itoa(e.Year)
}

type Discipline struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	KnowledgeArea string  `json:"knowledge_area"`
	RequiredFor   *string `json:"required_for,omitempty"`
}

type ExamPaper struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	ExamID           int64  `json:"exam_id"`
	DisciplineID     int64  `json:"discipline_id"`
	PositionID       int64  `json:"position_id"`
	ExamDateTime     string `json:"exam_date_time"`
	Description      string `json:"description"`
	Difficulty       string `json:"difficulty"`
	TimeLimitMinutes int    `json:"time_limit_minutes"`
	QuestionCount    int    `json:"question_count"`
	ExamType         string `json:"exam_type"`
	InternalCode     string `json:"internal_code"`
}

type Question struct {
	ID                      int64    `json:"id"`
	Number                  int      `json:"number"`
	ExamPaperID             int64    `json:"exam_paper_id"`
	DisciplineID            int64    `json:"discipline_id"`
	Statement               string   `json:"statement"`
	Alternatives            []string `json:"alternatives"`
	CorrectAlternativeIndex int      `json:"correct_alternative_index"`
	Explanation             *string  `json:"explanation,omitempty"`
	Status                  string   `json:"status"`
}

// Public returns the question without its answer key.
func (q Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:           q.ID,
		Number:       q.Number,
		Statement:    q.Statement,
		Alternatives: q.Alternatives,
	}
}

// Read views

// PublicQuestion never carries the correct alternative.
type PublicQuestion struct {
	ID           int64    `json:"id"`
	Number       int      `json:"number"`
	Statement    string   `json:"statement"`
	Alternatives []string `json:"alternatives"`
}

type ExamRef struct {
	Title string `json:"title"`
	Board string `json:"board"`
}

type DisciplineRef struct {
	Name string `json:"name"`
}

type ExamPaperRef struct {
	ID         int64         `json:"id"`
	Title      string        `json:"title"`
	Exam       ExamRef       `json:"exam"`
	Discipline DisciplineRef `json:"discipline"`
}

// QuestionView is a question flattened with the names of everything it
// hangs off, for presentation.
type QuestionView struct {
	PublicQuestion
	ExamPaper ExamPaperRef `json:"exam_paper"`
}

type ListQuestion struct {
	QuestionView
	Position int `json:"position"`
}

type ExerciseList struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	OwnerID     int64          `json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	Questions   []ListQuestion `json:"questions"`
}

// QuestionIDs returns the list's question ids in ordinal order.
func (l ExerciseList) QuestionIDs() []int64 {
	ids := make([]int64, 0, len(l.Questions))
	for _, q := range l.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

type Submission struct {
	QuestionID             int64 `json:"question_id"`
	ChosenAlternativeIndex int   `json:"chosen_alternative_index"`
}

type ScoreResult struct {
	CorrectCount int `json:"correct_count"`
	Total        int `json:"total"`
	Percentage   int `json:"percentage"`
}

type ExamPaperSession struct {
	ExamPaper        ExamPaper        `json:"exam_paper"`
	TimeLimitSeconds int              `json:"time_limit_seconds"`
	Questions        []PublicQuestion `json:"questions"`
}

// QuestionFilter narrows question searches. Zero values mean "any".
type QuestionFilter struct {
	ExamPaperID  int64
	DisciplineID int64
	Search       string
}

// Request types

type CreateListRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	QuestionIDs []int64 `json:"question_ids"`
}

type AddQuestionsRequest struct {
	QuestionIDs []int64 `json:"question_ids"`
}

type RemoveQuestionRequest struct {
	QuestionID int64 `json:"question_id"`
}

// Pointers let the scorer tell a missing field from a zero index.
type SubmissionRequest struct {
	QuestionID             *int64 `json:"question_id"`
	ChosenAlternativeIndex *int   `json:"chosen_alternative_index"`
}

type ScoreRequest struct {
	Submissions []SubmissionRequest `json:"submissions"`
}

// Response types

type CreateListResponse struct {
	ListID int64 `json:"list_id"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
