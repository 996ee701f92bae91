package leave

import "time"

// Truncate strips the clock from t, keeping its calendar date.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CountLeaveDays counts Monday to Friday dates in [start, end], inclusive.
func CountLeaveDays(start, end time.Time) int {
	start, end = Truncate(start), Truncate(end)
	if end.Before(start) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}

// Overlaps reports whether two inclusive date ranges share a day. It is the
// half-open test on [start, end+1d).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	aEndExcl := Truncate(aEnd).AddDate(0, 0, 1)
	bEndExcl := Truncate(bEnd).AddDate(0, 0, 1)
	return Truncate(aStart).Before(bEndExcl) && Truncate(bStart).Before(aEndExcl)
}
