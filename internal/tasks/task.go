package tasks

import (
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// ReviewTask is one scheduled study or review obligation for a word list.
type ReviewTask struct {
	ID            string     `json:"id"`
	ListID        string     `json:"listId"`
	ScheduledDate civil.Date `json:"scheduledDate"`
	Status        Status     `json:"status"`
	Type          Type       `json:"type"`
	Stage         int        `json:"stage"` // zero-based index into Intervals
}

var taskNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dailywords/review-task"))

// ScheduleList generates the full lifetime of tasks for a list, one per stage,
// anchored at the given date. The result depends only on list.ID and anchor.
func ScheduleList(list WordList, anchor civil.Date) []ReviewTask {
	out := make([]ReviewTask, 0, TotalStages())
	for stage, days := range Intervals {
		out = append(out, ReviewTask{
			ID:            TaskID(list.ID, stage),
			ListID:        list.ID,
			ScheduledDate: anchor.AddDays(days),
			Status:        Pending,
			Type:          TypeForStage(stage),
			Stage:         stage,
		})
	}
	return out
}

// TaskID derives the id of a list's task at the given stage.
func TaskID(listID string, stage int) string {
	return uuid.NewSHA1(taskNamespace, []byte(listID+"#"+strconv.Itoa(stage))).String()
}

// IsPending reports whether the task still has to be done.
func (t ReviewTask) IsPending() bool {
	return t.Status == Pending
}

// IsOverdue reports whether the task is pending and scheduled before today.
func (t ReviewTask) IsOverdue(today civil.Date) bool {
	return t.IsPending() && t.ScheduledDate.Before(today)
}

// DueBy reports whether the task is pending and scheduled on or before day.
func (t ReviewTask) DueBy(day civil.Date) bool {
	return t.IsPending() && !t.ScheduledDate.After(day)
}

// MarkCompleted returns a copy of the task in the Completed state.
// Completing an already completed task returns it unchanged.
func (t ReviewTask) MarkCompleted() ReviewTask {
	t.Status = Completed
	return t
}
