// Package maintenance computes due dates and urgency ordering for
// maintenance tasks.  Everything here is a pure function of its inputs
// plus an injected clock value; no I/O, no persistence.
package maintenance

import (
    "time"

    "github.com/iliyamo/home-inventory/internal/model"
)

// ComputeDueDate returns the next due date for a task with the given
// frequency and completion history, or nil when no future occurrence
// exists.
//
// A one-time task is due at its creation instant until it is completed,
// after which it never recurs.  Recurring tasks are due one calendar
// interval after the last completion, or after creation if they have
// never been completed.  Month and year arithmetic clamps to the last
// valid day of the target month, so Jan 31 + 1 month is Feb 29 in a
// leap year rather than overflowing into March.
func ComputeDueDate(frequency string, lastCompleted *time.Time, createdAt time.Time) *time.Time {
    if frequency == model.FrequencyOneTime {
        if lastCompleted != nil {
            return nil
        }
        d := createdAt
        return &d
    }

    base := createdAt
    if lastCompleted != nil {
        base = *lastCompleted
    }

    var due time.Time
    switch frequency {
    case model.FrequencyWeekly:
        due = base.AddDate(0, 0, 7)
    case model.FrequencyMonthly:
        due = addCalendarMonths(base, 1)
    case model.FrequencyYearly:
        due = addCalendarMonths(base, 12)
    default:
        // unreachable with validated input
        return nil
    }
    return &due
}

// IsOverdue reports whether due is non-nil and strictly before now.
// A task without a due date (a completed one-time task) is never
// overdue.
func IsOverdue(due *time.Time, now time.Time) bool {
    return due != nil && due.Before(now)
}

// Enrich attaches the computed due date and overdue flag to a stored
// task.
func Enrich(task model.MaintenanceTask, now time.Time) model.EnrichedTask {
    due := ComputeDueDate(task.Frequency, task.LastCompleted, task.CreatedAt)
    return model.EnrichedTask{
        MaintenanceTask: task,
        DueDate:         due,
        IsOverdue:       IsOverdue(due, now),
    }
}

// addCalendarMonths advances t by the given number of months, clamping
// the day to the length of the target month.  time.AddDate normalizes
// overflow (Jan 31 + 1 month = Mar 2/3), which is not the calendar
// behaviour wanted here.
func addCalendarMonths(t time.Time, months int) time.Time {
    y, m, d := t.Date()
    first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
    if last := daysInMonth(first.Year(), first.Month()); d > last {
        d = last
    }
    return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month; day zero
// of the following month is its last day.
func daysInMonth(year int, month time.Month) int {
    return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
