// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/concurseiro/simulados/models"
)

func testQuestions() []models.PublicQuestion {
	return []models.PublicQuestion{
		{ID: 1, Number: 1, Statement: "Q1", Alternatives: []string{"a", "b", "c"}},
		{ID: 2, Number: 2, Statement: "Q2", Alternatives: []string{"a", "b"}},
		{ID: 3, Number: 3, Statement: "Q3", Alternatives: []string{"a", "b", "c", "d"}},
	}
}

type recorder struct {
	mu    sync.Mutex
	calls [][]models.Submission
}

func (r *recorder) submit(_ context.Context, subs []models.Submission) (models.ScoreResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, subs)
	return models.ScoreResult{CorrectCount: len(subs), Total: len(subs), Percentage: 100}, nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestAnswerValidation(t *testing.T) {
	s := New(testQuestions(), time.Minute, (&recorder{}).submit)

	if err := s.Answer(99, 0); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("expected ErrUnknownQuestion, got %v", err)
	}
	if err := s.Answer(2, 2); !errors.Is(err, ErrInvalidAlternative) {
		t.Errorf("expected ErrInvalidAlternative, got %v", err)
	}
	if err := s.Answer(2, -1); !errors.Is(err, ErrInvalidAlternative) {
		t.Errorf("expected ErrInvalidAlternative, got %v", err)
	}
	if err := s.Answer(2, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSubmissionsFollowQuestionOrder(t *testing.T) {
	s := New(testQuestions(), time.Minute, (&recorder{}).submit)

	s.Answer(3, 3)
	s.Answer(1, 0)
	s.Answer(1, 2) // replaces the earlier answer

	subs := s.Submissions()
	want := []models.Submission{
		{QuestionID: 1, ChosenAlternativeIndex: 2},
		{QuestionID: 3, ChosenAlternativeIndex: 3},
	}
	if len(subs) != len(want) {
		t.Fatalf("expected %d submissions, got %d", len(want), len(subs))
	}
	for i := range want {
		if subs[i] != want[i] {
			t.Errorf("submission %d = %+v, want %+v", i, subs[i], want[i])
		}
	}
}

func TestCountdownAutoSubmitsPartialAnswers(t *testing.T) {
	rec := &recorder{}
	s := New(testQuestions(), 3*time.Second, rec.submit)
	s.Answer(2, 1)

	var ticks []time.Duration
	s.OnTick(func(remaining time.Duration) { ticks = append(ticks, remaining) })

	tickCh := make(chan time.Time, 3)
	for i := 0; i < 3; i++ {
		tickCh <- time.Now()
	}

	out, err := s.Run(context.Background(), tickCh)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.Reason != ReasonTimeout {
		t.Errorf("expected timeout, got %s", out.Reason)
	}
	if out.Answered != 1 || out.Score.Total != 1 {
		t.Errorf("expected one submitted answer, got %+v", out)
	}
	if rec.count() != 1 {
		t.Fatalf("expected one submit, got %d", rec.count())
	}
	if got := rec.calls[0]; len(got) != 1 || got[0].QuestionID != 2 {
		t.Errorf("unexpected submissions: %+v", got)
	}

	wantTicks := []time.Duration{2 * time.Second, time.Second, 0}
	if len(ticks) != len(wantTicks) {
		t.Fatalf("expected %d ticks, got %v", len(wantTicks), ticks)
	}
	for i := range wantTicks {
		if ticks[i] != wantTicks[i] {
			t.Errorf("tick %d: remaining %v, want %v", i, ticks[i], wantTicks[i])
		}
	}
	if s.Remaining() != 0 {
		t.Errorf("expected no time remaining, got %v", s.Remaining())
	}
}

func TestFinishStopsCountdown(t *testing.T) {
	rec := &recorder{}
	s := New(testQuestions(), 10*time.Second, rec.submit)
	s.Answer(1, 0)

	var tickCount atomic.Int32
	ticked := make(chan struct{}, 1)
	s.OnTick(func(time.Duration) {
		tickCount.Add(1)
		ticked <- struct{}{}
	})

	tickCh := make(chan time.Time)
	result := make(chan Outcome, 1)
	go func() {
		out, _ := s.Run(context.Background(), tickCh)
		result <- out
	}()

	tickCh <- time.Now()
	<-ticked
	out := s.Finish(context.Background())
	if out.Reason != ReasonFinished {
		t.Errorf("expected finished, got %s", out.Reason)
	}

	select {
	case runOut := <-result:
		if runOut.Reason != ReasonFinished {
			t.Errorf("Run reported %s, want finished", runOut.Reason)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Finish")
	}

	if tickCount.Load() != 1 {
		t.Errorf("expected exactly one tick, got %d", tickCount.Load())
	}
	if s.Remaining() != 9*time.Second {
		t.Errorf("expected 9s remaining, got %v", s.Remaining())
	}
	if err := s.Answer(2, 0); !errors.Is(err, ErrFinalized) {
		t.Errorf("expected ErrFinalized after finish, got %v", err)
	}
}

func TestFinalizeOnlyOnce(t *testing.T) {
	rec := &recorder{}
	s := New(testQuestions(), time.Second, rec.submit)
	s.Answer(1, 1)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Finish(context.Background())
		}()
	}

	tickCh := make(chan time.Time, 1)
	tickCh <- time.Now()
	s.Run(context.Background(), tickCh)
	wg.Wait()

	if rec.count() != 1 {
		t.Errorf("expected one submit, got %d", rec.count())
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done should be closed")
	}
}

func TestTimeoutWithNoAnswersSkipsSubmit(t *testing.T) {
	rec := &recorder{}
	s := New(testQuestions(), 0, rec.submit)

	out, err := s.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.Reason != ReasonTimeout {
		t.Errorf("expected timeout, got %s", out.Reason)
	}
	if out.Answered != 0 || out.Score != (models.ScoreResult{}) {
		t.Errorf("expected empty outcome, got %+v", out)
	}
	if rec.count() != 0 {
		t.Errorf("submit should not be called without answers")
	}
}

func TestRunCancelled(t *testing.T) {
	rec := &recorder{}
	s := New(testQuestions(), time.Minute, rec.submit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Run(ctx, make(chan time.Time)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if rec.count() != 0 {
		t.Errorf("cancelled session should not submit")
	}
}

func TestSubmitErrorIsReported(t *testing.T) {
	failure := errors.New("store down")
	s := New(testQuestions(), time.Minute, func(context.Context, []models.Submission) (models.ScoreResult, error) {
		return models.ScoreResult{}, failure
	})
	s.Answer(1, 0)

	out := s.Finish(context.Background())
	if !errors.Is(out.Err, failure) {
		t.Errorf("expected submit error in outcome, got %v", out.Err)
	}
	if s.Outcome().Err != out.Err {
		t.Errorf("Outcome() should return the stored outcome")
	}
}
