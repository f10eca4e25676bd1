package state

import (
	"cloud.google.com/go/civil"

	"dailywords/internal/tasks"
)

// Stats is the workload summary of a single calendar day.
type Stats struct {
	PendingReview int `json:"pendingReview"`
	NewStudy      int `json:"newStudy"`
	Completed     int `json:"completed"`
}

// Overview summarizes what is left to do today.
type Overview struct {
	Study          int `json:"study"`
	Review         int `json:"review"`
	CompletedToday int `json:"completedToday"`
}

// Progress describes how far a list has moved through its schedule.
type Progress struct {
	ListID          string            `json:"listId"`
	TotalStages     int               `json:"totalStages"`
	CompletedStages int               `json:"completedStages"`
	Overdue         int               `json:"overdue"`
	Next            *tasks.ReviewTask `json:"next,omitempty"`
}

// Done reports whether every scheduled task of the list is completed.
func (p Progress) Done() bool {
	return p.TotalStages > 0 && p.CompletedStages == p.TotalStages
}

// TasksForToday returns every pending task scheduled on or before today.
// Overdue tasks are never dropped; they stay here until completed.
func TasksForToday(s State, today civil.Date) []tasks.ReviewTask {
	var out []tasks.ReviewTask
	for _, t := range s.ReviewTasks {
		if t.DueBy(today) {
			out = append(out, t)
		}
	}
	return out
}

// DayStats counts the tasks of date. The backlog of all overdue pending
// tasks is added to PendingReview only when date is today; a past day
// keeps its completed count but no longer shows its pending tasks.
func DayStats(s State, date, today civil.Date) Stats {
	var st Stats
	isToday := date == today
	isPast := date.Before(today)
	for _, t := range s.ReviewTasks {
		if t.ScheduledDate == date {
			switch {
			case t.Status == tasks.Completed:
				st.Completed++
			case isPast:
				// rolled up into today
			case t.Type == tasks.Study:
				st.NewStudy++
			default:
				st.PendingReview++
			}
			continue
		}
		if isToday && t.IsOverdue(today) {
			st.PendingReview++
		}
	}
	return st
}

// TasksOnOrBeforeToday returns the tasks scheduled on day and, when day is
// today, every overdue pending task as well.
func TasksOnOrBeforeToday(s State, day, today civil.Date) []tasks.ReviewTask {
	isToday := day == today
	var out []tasks.ReviewTask
	for _, t := range s.ReviewTasks {
		if t.ScheduledDate == day || (isToday && t.IsOverdue(today)) {
			out = append(out, t)
		}
	}
	return out
}

// FirstPendingTaskForList returns the lowest-stage pending task of the list.
func FirstPendingTaskForList(s State, listID string) (tasks.ReviewTask, bool) {
	var (
		first tasks.ReviewTask
		found bool
	)
	for _, t := range s.ReviewTasks {
		if t.ListID != listID || !t.IsPending() {
			continue
		}
		if !found || t.Stage < first.Stage {
			first, found = t, true
		}
	}
	return first, found
}

// TodayOverview splits today's workload by type and counts what was
// completed among the tasks scheduled for today.
func TodayOverview(s State, today civil.Date) Overview {
	var o Overview
	for _, t := range TasksForToday(s, today) {
		if t.Type == tasks.Study {
			o.Study++
		} else {
			o.Review++
		}
	}
	for _, t := range s.ReviewTasks {
		if t.ScheduledDate == today && t.Status == tasks.Completed {
			o.CompletedToday++
		}
	}
	return o
}

// ListProgress reports the schedule progress of a list. The second result
// is false when no such list exists.
func ListProgress(s State, listID string, today civil.Date) (Progress, bool) {
	if _, ok := FindList(s, listID); !ok {
		return Progress{}, false
	}
	p := Progress{ListID: listID}
	for _, t := range TasksForList(s, listID) {
		p.TotalStages++
		switch {
		case t.Status == tasks.Completed:
			p.CompletedStages++
		case p.Next == nil:
			next := t
			p.Next = &next
		}
		if t.IsOverdue(today) {
			p.Overdue++
		}
	}
	return p, true
}
