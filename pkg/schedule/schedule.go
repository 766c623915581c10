// Package schedule computes the fixed review calendar of a word and answers
// which words are due on a given day.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/japaniel/polski/pkg/db"
)

// Offsets are the days after creation on which a word is reviewed.
var Offsets = [...]int{1, 3, 5, 8, 13, 19, 25, 35}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CreateIterations returns one review day per offset, in offset order.
func CreateIterations(created time.Time) []time.Time {
	start := Day(created)
	out := make([]time.Time, 0, len(Offsets))
	for _, off := range Offsets {
		out = append(out, start.AddDate(0, 0, off))
	}
	return out
}

// DueLister is the storage query the Scheduler relies on.
type DueLister interface {
	DueWords(ctx context.Context, day time.Time) ([]db.Word, error)
}

// Scheduler answers due-word queries against a store.
type Scheduler struct {
	store DueLister
	now   func() time.Time
}

// New creates a Scheduler. A nil now defaults to time.Now.
func New(store DueLister, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{store: store, now: now}
}

// Today is the current day in the process time zone.
func (s *Scheduler) Today() time.Time {
	return Day(s.now())
}

// Iterations schedules a word created now.
func (s *Scheduler) Iterations() []time.Time {
	return CreateIterations(s.now())
}

// DueWords returns the distinct words with an iteration on day.
func (s *Scheduler) DueWords(ctx context.Context, day time.Time) ([]db.Word, error) {
	words, err := s.store.DueWords(ctx, Day(day))
	if err != nil {
		return nil, fmt.Errorf("due words for %s: %w", day.Format("2006-01-02"), err)
	}
	seen := make(map[int64]struct{}, len(words))
	out := words[:0]
	for _, w := range words {
		if _, ok := seen[w.ID]; ok {
			continue
		}
		seen[w.ID] = struct{}{}
		out = append(out, w)
	}
	return out, nil
}

// DueToday returns the words due for review today.
func (s *Scheduler) DueToday(ctx context.Context) ([]db.Word, error) {
	return s.DueWords(ctx, s.Today())
}
