package state

import (
	"time"

	"cloud.google.com/go/civil"
)

// GridCells is the number of days shown for a month: six full weeks.
const GridCells = 42

// DayCell is one day of a month grid.
type DayCell struct {
	Date    civil.Date `json:"date"`
	InMonth bool       `json:"inMonth"`
	IsToday bool       `json:"isToday"`
	Stats   Stats      `json:"stats"`
}

// MonthGrid returns six weeks of day cells starting on the Sunday on or
// before the first of the month, each with its DayStats.
func MonthGrid(s State, year int, month time.Month, today civil.Date) []DayCell {
	first := civil.Date{Year: year, Month: month, Day: 1}
	start := first.AddDays(-int(first.In(time.UTC).Weekday()))

	cells := make([]DayCell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := start.AddDays(i)
		cells = append(cells, DayCell{
			Date:    d,
			InMonth: d.Year == year && d.Month == month,
			IsToday: d == today,
			Stats:   DayStats(s, d, today),
		})
	}
	return cells
}
