package tasks

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = civil.Date{Year: 2024, Month: time.January, Day: 1}

func twoWordList(t *testing.T) WordList {
	t.Helper()
	list, err := NewWordList(ListInput{
		Title: "L",
		Words: []WordInput{
			{Word: "serendipity", Definition: "happy chance"},
			{Word: "ephemeral", Definition: "short-lived"},
		},
	}, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	return list
}

func TestScheduleList(t *testing.T) {
	list := twoWordList(t)
	got := ScheduleList(list, anchor)
	require.Len(t, got, 7)

	want := []struct {
		date string
		typ  Type
	}{
		{"2024-01-01", Study},
		{"2024-01-02", Review},
		{"2024-01-03", Review},
		{"2024-01-05", Review},
		{"2024-01-08", Review},
		{"2024-01-16", Review},
		{"2024-01-31", Review},
	}
	ids := make(map[string]bool)
	for i, task := range got {
		assert.Equal(t, i, task.Stage)
		assert.Equal(t, want[i].date, task.ScheduledDate.String(), "stage %d", i)
		assert.Equal(t, want[i].typ, task.Type, "stage %d", i)
		assert.Equal(t, Pending, task.Status)
		assert.Equal(t, list.ID, task.ListID)
		assert.Equal(t, anchor.AddDays(Intervals[i]), task.ScheduledDate)
		ids[task.ID] = true
	}
	assert.Len(t, ids, 7, "task ids must be unique")
}

func TestScheduleListIsDeterministic(t *testing.T) {
	list := twoWordList(t)
	assert.Equal(t, ScheduleList(list, anchor), ScheduleList(list, anchor))

	other := list
	other.ID = "another-list"
	a := ScheduleList(list, anchor)
	b := ScheduleList(other, anchor)
	for i := range a {
		assert.NotEqual(t, a[i].ID, b[i].ID)
	}
}

func TestScheduleListCrossesMonthAndYear(t *testing.T) {
	list := twoWordList(t)
	got := ScheduleList(list, civil.Date{Year: 2023, Month: time.December, Day: 20})
	assert.Equal(t, "2024-01-04", got[5].ScheduledDate.String())
	assert.Equal(t, "2024-01-19", got[6].ScheduledDate.String())
}

func TestTaskPredicates(t *testing.T) {
	today := civil.Date{Year: 2024, Month: time.January, Day: 10}
	task := ReviewTask{Status: Pending, ScheduledDate: civil.Date{Year: 2024, Month: time.January, Day: 3}}

	assert.True(t, task.IsOverdue(today))
	assert.True(t, task.DueBy(today))
	assert.False(t, task.DueBy(task.ScheduledDate.AddDays(-1)))

	done := task.MarkCompleted()
	assert.Equal(t, Completed, done.Status)
	assert.Equal(t, Pending, task.Status, "MarkCompleted must not mutate the receiver")
	assert.False(t, done.IsOverdue(today))
	assert.Equal(t, done, done.MarkCompleted())
}

func TestTypeForStage(t *testing.T) {
	assert.Equal(t, Study, TypeForStage(0))
	for stage := 1; stage < TotalStages(); stage++ {
		assert.Equal(t, Review, TypeForStage(stage))
	}
	assert.Equal(t, 7, TotalStages())
}

func TestEnumText(t *testing.T) {
	var s Status
	require.NoError(t, s.UnmarshalText([]byte("completed")))
	assert.Equal(t, Completed, s)
	assert.Error(t, s.UnmarshalText([]byte("done")))

	var typ Type
	require.NoError(t, typ.UnmarshalText([]byte("study")))
	assert.Equal(t, Study, typ)
	assert.Error(t, typ.UnmarshalText([]byte("")))

	_, err := Status("bogus").MarshalText()
	assert.Error(t, err)
}
