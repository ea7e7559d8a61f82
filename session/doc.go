// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session runs a timed practice attempt on the client side.

A Session buffers answers locally and counts down one second per tick:

	s := session.New(questions, 30*time.Minute, scorer.Score)
	go s.Start(ctx)
	s.Answer(questionID, 2)
	out := s.Finish(ctx)

When the counter reaches zero the recorded answers are submitted
automatically. Finalization happens at most once; answering after it
returns ErrFinalized.
*/
package session
