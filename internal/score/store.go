// Package score persists the best score and the per-round history. The
// engine treats persistence as best-effort: a store that cannot be read
// behaves as if no best score exists, and write failures are logged and
// swallowed, never surfaced to the player.
package score

import "time"

// Round is one finished round of play.
type Round struct {
	ID       string        // round UUID
	Score    int           // items consumed
	Duration time.Duration // wall time from start to death
	PlayedAt time.Time
}

// Store is the persistence boundary the engine talks to.
type Store interface {
	// Best returns the persisted best score, or 0 when absent or on any
	// access error.
	Best() int

	// SetBest persists a new best score. Best-effort; errors are handled
	// inside the implementation.
	SetBest(best int)

	// RecordRound appends a finished round to the history. Best-effort.
	RecordRound(r Round)

	// Close releases any underlying resources.
	Close() error
}

// Memory is an in-process Store used by tests and as a fallback when the
// database cannot be opened.
type Memory struct {
	best   int
	rounds []Round
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Best returns the stored best score.
func (m *Memory) Best() int {
	return m.best
}

// SetBest stores a new best score.
func (m *Memory) SetBest(best int) {
	m.best = best
}

// RecordRound appends the round to the in-memory history.
func (m *Memory) RecordRound(r Round) {
	m.rounds = append(m.rounds, r)
}

// Rounds returns the recorded history, oldest first.
func (m *Memory) Rounds() []Round {
	return m.rounds
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
