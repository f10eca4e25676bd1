package tasks

// Intervals defines the spaced-repetition schedule in days from the anchor date.
// Index meaning:
// 0: same day (study), 1: +1d, 2: +2d, 3: +4d, 4: +7d, 5: +15d, 6: +30d
var Intervals = []int{0, 1, 2, 4, 7, 15, 30}

// TotalStages returns how many tasks a list is scheduled with.
func TotalStages() int {
	return len(Intervals)
}

// TypeForStage returns Study for the first stage and Review for the rest.
func TypeForStage(stage int) Type {
	if stage == 0 {
		return Study
	}
	return Review
}
