// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/concurseiro/simulados/models"
)

var (
	ErrFinalized          = errors.New("session already finalized")
	ErrUnknownQuestion    = errors.New("question is not part of this session")
	ErrInvalidAlternative = errors.New("alternative index out of range")
)

// Reason records which path finalized a session.
type Reason string

const (
	ReasonFinished Reason = "finished"
	ReasonTimeout  Reason = "timeout"
)

// SubmitFunc grades the recorded answers. exercises.Scorer.Score satisfies it.
type SubmitFunc func(ctx context.Context, submissions []models.Submission) (models.ScoreResult, error)

// Outcome is the result of finalizing a session.
type Outcome struct {
	Reason   Reason
	Score    models.ScoreResult
	Answered int
	Err      error
}

// Session holds the answer buffer and countdown for one timed attempt.
// Answers stay local until the session is finalized, either by Finish or
// by the countdown reaching zero; whichever happens first submits, and
// the other becomes a no-op.
type Session struct {
	questions []models.PublicQuestion
	index     map[int64]int
	submit    SubmitFunc

	mu        sync.Mutex
	answers   map[int64]int
	remaining int
	finalized bool
	onTick    func(remaining time.Duration)

	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

// New creates a session over questions with the given time limit, rounded
// down to whole seconds.
func New(questions []models.PublicQuestion, limit time.Duration, submit SubmitFunc) *Session {
	index := make(map[int64]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}
	return &Session{
		questions: questions,
		index:     index,
		submit:    submit,
		answers:   make(map[int64]int),
		remaining: int(limit / time.Second),
		done:      make(chan struct{}),
	}
}

func (s *Session) Questions() []models.PublicQuestion {
	return s.questions
}

// Answer records (or replaces) the chosen alternative for a question.
func (s *Session) Answer(questionID int64, alternative int) error {
	i, ok := s.index[questionID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	if alternative < 0 || alternative >= len(s.questions[i].Alternatives) {
		return fmt.Errorf("%w: %d", ErrInvalidAlternative, alternative)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return ErrFinalized
	}
	s.answers[questionID] = alternative
	return nil
}

// Submissions returns the recorded answers in question order. Unanswered
// questions are absent.
func (s *Session) Submissions() []models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissionsLocked()
}

func (s *Session) submissionsLocked() []models.Submission {
	subs := make([]models.Submission, 0, len(s.answers))
	for _, q := range s.questions {
		if idx, ok := s.answers[q.ID]; ok {
			subs = append(subs, models.Submission{QuestionID: q.ID, ChosenAlternativeIndex: idx})
		}
	}
	return subs
}

func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(s.remaining) * time.Second
}

// OnTick registers fn to be called after every countdown tick with the
// time left. It is not called once the session is finalized.
func (s *Session) OnTick(fn func(remaining time.Duration)) {
	s.mu.Lock()
	s.onTick = fn
	s.mu.Unlock()
}

// Done is closed when the session has been finalized.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Outcome returns the final outcome. It is only meaningful after Done is
// closed.
func (s *Session) Outcome() Outcome {
	<-s.done
	return s.outcome
}

// Start runs the countdown on a one-second ticker until the session is
// finalized or ctx is cancelled.
func (s *Session) Start(ctx context.Context) (Outcome, error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	return s.Run(ctx, ticker.C)
}

// Run drives the countdown from ticks, decrementing one second per tick.
// When the counter reaches zero the recorded answers are submitted. Run
// returns ctx.Err() if ctx is cancelled before the session is finalized.
func (s *Session) Run(ctx context.Context, ticks <-chan time.Time) (Outcome, error) {
	if s.tick(0) {
		return s.finalize(ctx, ReasonTimeout), nil
	}
	for {
		select {
		case <-s.done:
			return s.outcome, nil
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case <-ticks:
			if s.tick(1) {
				return s.finalize(ctx, ReasonTimeout), nil
			}
		}
	}
}

// tick subtracts seconds from the counter and reports whether it expired.
func (s *Session) tick(seconds int) bool {
	s.mu.Lock()
	if s.finalized {
		s.mu.Unlock()
		return false
	}
	s.remaining -= seconds
	if s.remaining < 0 {
		s.remaining = 0
	}
	remaining := time.Duration(s.remaining) * time.Second
	fn := s.onTick
	s.mu.Unlock()

	if seconds > 0 && fn != nil {
		fn(remaining)
	}
	return remaining == 0
}

// Finish submits the recorded answers. Calling it after the session was
// finalized returns the existing outcome.
func (s *Session) Finish(ctx context.Context) Outcome {
	return s.finalize(ctx, ReasonFinished)
}

func (s *Session) finalize(ctx context.Context, reason Reason) Outcome {
	s.once.Do(func() {
		s.mu.Lock()
		s.finalized = true
		subs := s.submissionsLocked()
		s.mu.Unlock()

		out := Outcome{Reason: reason, Answered: len(subs)}
		if len(subs) > 0 {
			out.Score, out.Err = s.submit(ctx, subs)
		}
		s.outcome = out
		close(s.done)
	})
	<-s.done
	return s.outcome
}
