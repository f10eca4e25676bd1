package state

import (
	"encoding/json"
	"fmt"

	"dailywords/internal/tasks"
)

// Encode serializes the whole state as one JSON record.
func Encode(s State) ([]byte, error) {
	return json.Marshal(s.normalized())
}

// Decode parses a record produced by Encode. Unknown status or type values,
// malformed dates and out-of-range stages are rejected.
func Decode(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	for _, t := range s.ReviewTasks {
		if t.Stage < 0 || t.Stage >= tasks.TotalStages() {
			return State{}, fmt.Errorf("decode state: task %s: stage %d out of range", t.ID, t.Stage)
		}
		if !t.Status.Valid() || !t.Type.Valid() {
			return State{}, fmt.Errorf("decode state: task %s: missing status or type", t.ID)
		}
	}
	return s.normalized(), nil
}

func (s State) normalized() State {
	if s.WordLists == nil {
		s.WordLists = []tasks.WordList{}
	}
	if s.ReviewTasks == nil {
		s.ReviewTasks = []tasks.ReviewTask{}
	}
	return s
}
