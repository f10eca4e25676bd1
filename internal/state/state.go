// Package state holds word lists and their review tasks as immutable
// snapshots. Every operation takes a State and returns a new one; the
// input is never modified, so callers can swap snapshots wholesale.
package state

import (
	"slices"
	"time"

	"cloud.google.com/go/civil"

	"dailywords/internal/tasks"
)

// State is the complete persisted record.
type State struct {
	WordLists   []tasks.WordList   `json:"wordLists"`
	ReviewTasks []tasks.ReviewTask `json:"reviewTasks"`
}

// CreateList validates the input, builds the list and schedules its tasks
// anchored at the date of now in loc. On a validation error s is returned as is.
func CreateList(s State, in tasks.ListInput, now time.Time, loc *time.Location) (State, tasks.WordList, []tasks.ReviewTask, error) {
	list, err := tasks.NewWordList(in, now)
	if err != nil {
		return s, tasks.WordList{}, nil, err
	}
	scheduled := tasks.ScheduleList(list, civil.DateOf(now.In(loc)))
	return s.with(list, scheduled), list, scheduled, nil
}

// CompleteTask marks the task completed. Unknown ids and already completed
// tasks leave the state unchanged.
func CompleteTask(s State, taskID string) State {
	i := slices.IndexFunc(s.ReviewTasks, func(t tasks.ReviewTask) bool { return t.ID == taskID })
	if i < 0 || s.ReviewTasks[i].Status == tasks.Completed {
		return s
	}
	next := State{
		WordLists:   s.WordLists,
		ReviewTasks: slices.Clone(s.ReviewTasks),
	}
	next.ReviewTasks[i] = next.ReviewTasks[i].MarkCompleted()
	return next
}

// FindList returns the list with the given id.
func FindList(s State, id string) (tasks.WordList, bool) {
	for _, l := range s.WordLists {
		if l.ID == id {
			return l, true
		}
	}
	return tasks.WordList{}, false
}

// FindTask returns the task with the given id.
func FindTask(s State, id string) (tasks.ReviewTask, bool) {
	for _, t := range s.ReviewTasks {
		if t.ID == id {
			return t, true
		}
	}
	return tasks.ReviewTask{}, false
}

// TasksForList returns the list's tasks ordered by stage.
func TasksForList(s State, listID string) []tasks.ReviewTask {
	var out []tasks.ReviewTask
	for _, t := range s.ReviewTasks {
		if t.ListID == listID {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b tasks.ReviewTask) int { return a.Stage - b.Stage })
	return out
}

func (s State) with(list tasks.WordList, scheduled []tasks.ReviewTask) State {
	lists := make([]tasks.WordList, 0, len(s.WordLists)+1)
	lists = append(append(lists, s.WordLists...), list)
	all := make([]tasks.ReviewTask, 0, len(s.ReviewTasks)+len(scheduled))
	all = append(append(all, s.ReviewTasks...), scheduled...)
	return State{WordLists: lists, ReviewTasks: all}
}
