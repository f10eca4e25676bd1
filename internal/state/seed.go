package state

import (
	"time"

	"cloud.google.com/go/civil"

	"dailywords/internal/tasks"
)

// SeedListID identifies the built-in list shipped with an empty store.
const SeedListID = "default-1"

// Seed returns the initial record used when nothing has been stored yet.
// Its list has no tasks; EnsureSchedules gives it a schedule.
func Seed(now time.Time) State {
	return State{
		WordLists: []tasks.WordList{{
			ID:          SeedListID,
			Title:       "Common Phrases",
			Description: "Essential everyday English phrases.",
			CreatedAt:   now,
			Words: []tasks.Word{
				{
					ID:         "w1",
					Word:       "Serendipity",
					Definition: "The occurrence of events by chance in a happy or beneficial way.",
					Example:    "Meeting my old friend was pure serendipity.",
				},
				{
					ID:         "w2",
					Word:       "Ephemeral",
					Definition: "Lasting for a very short time.",
					Example:    "The beauty of sunset is ephemeral.",
				},
			},
		}},
		ReviewTasks: []tasks.ReviewTask{},
	}
}

// EnsureSchedules backfills tasks for lists that have none, anchored at the
// date each list was created in loc. It returns the new state and how many
// lists were scheduled.
func EnsureSchedules(s State, loc *time.Location) (State, int) {
	scheduled := make(map[string]bool, len(s.WordLists))
	for _, t := range s.ReviewTasks {
		scheduled[t.ListID] = true
	}

	var added []tasks.ReviewTask
	n := 0
	for _, l := range s.WordLists {
		if scheduled[l.ID] {
			continue
		}
		added = append(added, tasks.ScheduleList(l, civil.DateOf(l.CreatedAt.In(loc)))...)
		n++
	}
	if n == 0 {
		return s, 0
	}

	all := make([]tasks.ReviewTask, 0, len(s.ReviewTasks)+len(added))
	all = append(append(all, s.ReviewTasks...), added...)
	return State{WordLists: s.WordLists, ReviewTasks: all}, n
}
