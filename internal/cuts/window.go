package cuts

import (
	"time"

	"github.com/dcastellanos/paneltrack-backend/pkg/db/models"
)

// windowDays is the inclusive length of a weekly cut window.
const windowDays = 7

// WeekStart returns the Friday opening the week containing t: t itself when
// t falls on a Friday, otherwise the most recent prior Friday.
func WeekStart(t time.Time) time.Time {
	day := models.DateOnly(t)
	offset := (int(day.Weekday()) - int(time.Friday) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the Thursday closing the window opened at start.
func WeekEnd(start time.Time) time.Time {
	return models.DateOnly(start).AddDate(0, 0, windowDays-1)
}

// PrevWeek and NextWeek shift a window start by one week.
func PrevWeek(start time.Time) time.Time {
	return models.DateOnly(start).AddDate(0, 0, -windowDays)
}

func NextWeek(start time.Time) time.Time {
	return models.DateOnly(start).AddDate(0, 0, windowDays)
}
