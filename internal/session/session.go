// Package session owns the current state snapshot. Mutations compute a new
// snapshot, swap it in and write it to the persister in full. A failed
// write is logged and otherwise ignored.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"dailywords/internal/state"
	"dailywords/internal/store"
	"dailywords/internal/tasks"
)

// Persister stores the serialized snapshot under a single key.
// Load returns store.ErrNotFound when nothing has been saved yet.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
}

// Options configures a Session. Zero values fall back to time.Local,
// time.Now and slog.Default().
type Options struct {
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
}

type Session struct {
	mu        sync.RWMutex
	current   state.State
	persister Persister
	loc       *time.Location
	now       func() time.Time
	logger    *slog.Logger
}

// Open loads the stored snapshot, seeding the default list when nothing is
// stored, and backfills schedules for lists that have none.
func Open(ctx context.Context, p Persister, opts Options) (*Session, error) {
	s := &Session{
		persister: p,
		loc:       opts.Location,
		now:       opts.Now,
		logger:    opts.Logger,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	changed := false
	payload, err := p.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.logger.Info("no stored state, seeding default list")
		s.current = state.Seed(s.now().UTC())
		changed = true
	case err != nil:
		return nil, fmt.Errorf("load state: %w", err)
	default:
		s.current, err = state.Decode(payload)
		if err != nil {
			return nil, err
		}
	}

	var backfilled int
	s.current, backfilled = state.EnsureSchedules(s.current, s.loc)
	if backfilled > 0 {
		s.logger.Info("backfilled review schedules", "lists", backfilled)
		changed = true
	}
	if changed {
		s.persist(ctx)
	}

	s.logger.Info("state loaded",
		"lists", len(s.current.WordLists),
		"tasks", len(s.current.ReviewTasks))
	return s, nil
}

// CreateList validates and stores a new list together with its schedule.
func (s *Session) CreateList(ctx context.Context, in tasks.ListInput) (tasks.WordList, []tasks.ReviewTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, list, scheduled, err := state.CreateList(s.current, in, s.now().UTC(), s.loc)
	if err != nil {
		return tasks.WordList{}, nil, err
	}
	s.current = next
	s.persist(ctx)

	s.logger.Info("list created",
		"list_id", list.ID,
		"words", len(list.Words),
		"first_review", scheduled[0].ScheduledDate.String())
	return list, scheduled, nil
}

// CompleteTask marks a task completed. It reports whether anything changed;
// unknown or already completed ids are a no-op.
func (s *Session) CompleteTask(ctx context.Context, taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := state.FindTask(s.current, taskID)
	if !ok || t.Status == tasks.Completed {
		s.logger.Debug("complete task ignored", "task_id", taskID, "known", ok)
		return false
	}
	s.current = state.CompleteTask(s.current, taskID)
	s.persist(ctx)

	s.logger.Info("task completed", "task_id", taskID, "list_id", t.ListID, "stage", t.Stage)
	return true
}

// persist writes the current snapshot. Callers hold the lock so writes
// reach the store in mutation order.
func (s *Session) persist(ctx context.Context) {
	payload, err := state.Encode(s.current)
	if err == nil {
		err = s.persister.Save(ctx, payload)
	}
	if err != nil {
		s.logger.Error("persist state failed", "error", err)
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Today returns the current calendar date in the session's time zone.
func (s *Session) Today() civil.Date {
	return civil.DateOf(s.now().In(s.loc))
}

// Lists returns every stored list in creation order.
func (s *Session) Lists() []tasks.WordList {
	return s.Snapshot().WordLists
}

// List returns a single list.
func (s *Session) List(id string) (tasks.WordList, bool) {
	return state.FindList(s.Snapshot(), id)
}

// TasksForToday returns today's pending workload including the backlog.
func (s *Session) TasksForToday() []tasks.ReviewTask {
	return state.TasksForToday(s.Snapshot(), s.Today())
}

// DayStats summarizes date relative to today.
func (s *Session) DayStats(date civil.Date) state.Stats {
	return state.DayStats(s.Snapshot(), date, s.Today())
}

// TasksOnOrBeforeToday returns the tasks shown for day.
func (s *Session) TasksOnOrBeforeToday(day civil.Date) []tasks.ReviewTask {
	return state.TasksOnOrBeforeToday(s.Snapshot(), day, s.Today())
}

// FirstPendingTaskForList returns the task to resume a list with.
func (s *Session) FirstPendingTaskForList(listID string) (tasks.ReviewTask, bool) {
	return state.FirstPendingTaskForList(s.Snapshot(), listID)
}

// Overview summarizes today's workload.
func (s *Session) Overview() state.Overview {
	return state.TodayOverview(s.Snapshot(), s.Today())
}

// MonthGrid returns the calendar cells of a month.
func (s *Session) MonthGrid(year int, month time.Month) []state.DayCell {
	return state.MonthGrid(s.Snapshot(), year, month, s.Today())
}

// ListProgress reports a list's schedule progress.
func (s *Session) ListProgress(listID string) (state.Progress, bool) {
	return state.ListProgress(s.Snapshot(), listID, s.Today())
}
