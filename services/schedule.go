package services

import (
	"fmt"
	"sort"

	"salonmarket-backend/models"
)

// ValidateSchedule checks a weekly schedule before it replaces the stored one: weekdays in
// range, open before close, and no overlap between intervals of the same weekday.
func ValidateSchedule(entries []models.WorkingHours) error {
	byDay := make(map[int][]models.WorkingHours)
	for _, e := range entries {
		if e.Weekday < 0 || e.Weekday > 6 {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, e.Weekday)
		}
		if e.OpenTime < 0 || e.CloseTime > models.EndOfDay || e.OpenTime >= e.CloseTime {
			return fmt.Errorf("%w: %s-%s is not a valid opening interval", ErrInvalidInput, e.OpenTime, e.CloseTime)
		}
		byDay[e.Weekday] = append(byDay[e.Weekday], e)
	}

	for day, list := range byDay {
		sort.Slice(list, func(i, j int) bool { return list[i].OpenTime < list[j].OpenTime })
		for i := 1; i < len(list); i++ {
			if list[i].OpenTime < list[i-1].CloseTime {
				return fmt.Errorf("%w: overlapping intervals on weekday %d", ErrInvalidInput, day)
			}
		}
	}
	return nil
}
