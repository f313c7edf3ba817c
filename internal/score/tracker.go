// Package score tracks the per-session score, the persisted best score, and
// the one-shot submission of finished sessions to the arcade web service.
package score

import (
	"github.com/charmbracelet/log"
)

// Report is the payload of a finished session submitted to a Sink.
type Report struct {
	UserID int
	GameID int
	Score  int
}

// Sink receives final scores. Implementations decide the transport;
// the tracker only cares that submission is attempted at most once.
type Sink interface {
	Submit(r Report) error
}

// BestStore persists the best score across sessions.
type BestStore interface {
	// Load returns the stored best score, or 0 if none is recorded.
	Load() (int, error)
	// Save replaces the stored best score.
	Save(best int) error
}

// Tracker accumulates the score of one game session.
//
// The session score only grows: negative deltas are ignored. FinishOnce is
// latched, so calling it on every tick after game over still persists and
// submits exactly once. Reset rearms the latch for the next session.
type Tracker struct {
	score     int
	best      int
	store     BestStore
	submitted bool
	logger    *log.Logger
}

// NewTracker creates a tracker, loading the previous best from store.
// A failed load counts as no recorded best. store may be nil, in which case
// no best score is kept across sessions.
func NewTracker(store BestStore, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	t := &Tracker{store: store, logger: logger}
	if store != nil {
		best, err := store.Load()
		if err != nil {
			logger.Debug("no stored best score", "err", err)
			best = 0
		}
		t.best = best
	}
	return t
}

// Add increases the session score. Negative deltas are ignored.
func (t *Tracker) Add(points int) {
	if points <= 0 {
		return
	}
	t.score += points
}

// Score returns the current session score.
func (t *Tracker) Score() int {
	return t.score
}

// Best returns the best score seen so far, including the current session
// once FinishOnce has run.
func (t *Tracker) Best() int {
	return t.best
}

// Submitted reports whether this session has already been finished.
func (t *Tracker) Submitted() bool {
	return t.submitted
}

// FinishOnce completes the session: if the session score beats the stored
// best it is persisted, and the final score is handed to sink in the
// background. Only the first call per session does anything; it reports
// whether it was that first call.
//
// sink may be nil (no remote submission configured). Persistence and
// submission failures are logged and never propagate to the caller.
func (t *Tracker) FinishOnce(sink Sink, id Identity) bool {
	if t.submitted {
		return false
	}
	t.submitted = true

	if t.score > t.best {
		t.best = t.score
		if t.store != nil {
			if err := t.store.Save(t.best); err != nil {
				t.logger.Warn("failed to persist best score", "err", err)
			}
		}
	}

	if sink == nil {
		return true
	}

	report := Report{UserID: id.UserID, GameID: id.GameID, Score: t.score}
	logger := t.logger
	go func() {
		if err := sink.Submit(report); err != nil {
			logger.Warn("score submission failed", "err", err)
		}
	}()
	return true
}

// Reset clears the session score and rearms the submission latch.
// The best score carries over.
func (t *Tracker) Reset() {
	t.score = 0
	t.submitted = false
}
