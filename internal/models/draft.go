package models

import (
	"fmt"
	"time"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
)

// Draft holds in-progress appointment data during composition. It is not a
// record: it has no id and nothing about it is persisted until confirmation.
type Draft struct {
	Date    string // YYYY-MM-DD
	Hour    int    // 1-12
	Minute  int
	Period  string // "AM" or "PM"
	Subject string
	Email   string
	Phone   string
}

// HasTime reports whether the time-of-day step has been completed.
func (d Draft) HasTime() bool {
	return d.Period != ""
}

// Resolve combines the separately collected date, hour, minute and period
// into the single absolute instant that drives all scheduling.
func (d Draft) Resolve(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(constants.DateFormat, d.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", d.Date, err)
	}
	if d.Hour < 1 || d.Hour > 12 {
		return time.Time{}, fmt.Errorf("invalid hour %d", d.Hour)
	}
	if d.Minute < 0 || d.Minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute %d", d.Minute)
	}

	hour := d.Hour % 12
	switch d.Period {
	case "AM":
	case "PM":
		hour += 12
	default:
		return time.Time{}, fmt.Errorf("invalid period %q", d.Period)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, d.Minute, 0, 0, loc), nil
}

// FormatTime renders the draft's time-of-day (e.g. "3:00 PM").
func (d Draft) FormatTime() string {
	if !d.HasTime() {
		return ""
	}
	return fmt.Sprintf("%d:%02d %s", d.Hour, d.Minute, d.Period)
}
