package finance

import "time"

// addMonths shifts t by n calendar months, keeping the day of month when it
// exists in the target month and clamping to the last day otherwise
// (Jan 31 + 1 month = Feb 28/29, not Mar 2).
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	shifted := first.AddDate(0, n, 0)
	if last := daysInMonth(shifted.Year(), shifted.Month()); day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// sameMonth reports whether a and b fall in the same calendar month.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// afterMonth reports whether a falls in a later calendar month than b.
func afterMonth(a, b time.Time) bool {
	if a.Year() != b.Year() {
		return a.Year() > b.Year()
	}
	return a.Month() > b.Month()
}

// wholeMonthsBetween returns the number of whole calendar months from
// earlier to later (negative when later precedes earlier).
func wholeMonthsBetween(later, earlier time.Time) int {
	months := (later.Year()-earlier.Year())*12 + int(later.Month()) - int(earlier.Month())
	if months > 0 && later.Day() < earlier.Day() {
		months--
	} else if months < 0 && later.Day() > earlier.Day() {
		months++
	}
	return months
}
