package services

import (
	"fmt"
	"sort"
	"time"

	"salonmarket-backend/models"
)

// DefaultSlotStep is the spacing between candidate slot starts when none is configured.
const DefaultSlotStep = 15 * time.Minute

// MaxDurationMinutes is the longest slot that can fit in a single day.
const MaxDurationMinutes = int(models.EndOfDay)

// Slot is a free interval [Start, End) on the requested day.
type Slot struct {
	Start models.ClockTime `json:"start"`
	End   models.ClockTime `json:"end"`
}

type interval struct {
	start, end models.ClockTime
}

// SlotCalculator computes free slots from a weekly schedule and the day's bookings.
type SlotCalculator struct {
	step int // minutes
}

func NewSlotCalculator(step time.Duration) *SlotCalculator {
	if step < time.Minute {
		step = DefaultSlotStep
	}
	return &SlotCalculator{step: int(step / time.Minute)}
}

func (c *SlotCalculator) Step() time.Duration {
	return time.Duration(c.step) * time.Minute
}

// ComputeSlots returns every slot of durationMinutes that fits in the salon's open hours on
// date without touching a booking. Candidate starts advance by the configured step from the
// beginning of each free stretch. Bookings on other dates or not confirmed are ignored.
// A closed day yields an empty slice.
func (c *SlotCalculator) ComputeSlots(schedule []models.WorkingHours, bookings []models.Booking, date time.Time, durationMinutes int) ([]Slot, error) {
	if err := ValidateDuration(durationMinutes); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var open []interval
	for _, wh := range schedule {
		if wh.Day() == date.Weekday() && wh.OpenTime < wh.CloseTime {
			open = append(open, interval{start: wh.OpenTime, end: wh.CloseTime})
		}
	}
	if len(open) == 0 {
		return []Slot{}, nil
	}
	sort.Slice(open, func(i, j int) bool { return open[i].start < open[j].start })

	busy := busyIntervals(bookings, date)

	slots := []Slot{}
	for _, o := range open {
		for _, free := range subtract(o, busy) {
			for t := free.start; t.Add(durationMinutes) <= free.end; t = t.Add(c.step) {
				slots = append(slots, Slot{Start: t, End: t.Add(durationMinutes)})
			}
		}
	}
	return slots, nil
}

// ValidateDuration rejects slot lengths that are not positive or exceed a day.
func ValidateDuration(durationMinutes int) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, durationMinutes)
	}
	if durationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: duration cannot exceed %d minutes, got %d", ErrInvalidInput, MaxDurationMinutes, durationMinutes)
	}
	return nil
}

// Fits reports whether [start, start+duration) lies inside one open interval of the day and
// overlaps no booking. It is the check run before a booking is stored.
// A duration rejected by ValidateDuration is never in hours.
func Fits(schedule []models.WorkingHours, bookings []models.Booking, date time.Time, start models.ClockTime, durationMinutes int) (inHours bool, free bool) {
	if ValidateDuration(durationMinutes) != nil {
		return false, false
	}
	end := start.Add(durationMinutes)
	for _, wh := range schedule {
		if wh.Day() == date.Weekday() && wh.OpenTime <= start && end <= wh.CloseTime {
			inHours = true
			break
		}
	}
	for _, b := range bookings {
		if occupies(b, date) && b.Overlaps(start, end) {
			return inHours, false
		}
	}
	return inHours, true
}

// occupies reports whether b takes time on date.
func occupies(b models.Booking, date time.Time) bool {
	if b.Status == models.BookingCancelled || b.StartTime >= b.EndTime {
		return false
	}
	y, m, d := date.Date()
	by, bm, bd := time.Time(b.Date).Date()
	return by == y && bm == m && bd == d
}

func busyIntervals(bookings []models.Booking, date time.Time) []interval {
	var busy []interval
	for _, b := range bookings {
		if occupies(b, date) {
			busy = append(busy, interval{start: b.StartTime, end: b.EndTime})
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].start < busy[j].start })
	return busy
}

// subtract removes the sorted busy intervals from o and returns what is left, in order.
func subtract(o interval, busy []interval) []interval {
	var free []interval
	cursor := o.start
	for _, b := range busy {
		if b.end <= cursor || b.start >= o.end {
			continue
		}
		if b.start > cursor {
			free = append(free, interval{start: cursor, end: b.start})
		}
		if b.end > cursor {
			cursor = b.end
		}
		if cursor >= o.end {
			break
		}
	}
	if cursor < o.end {
		free = append(free, interval{start: cursor, end: o.end})
	}
	return free
}
